//go:build integration

// Package testutil starts the MongoDB container shared by the integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const (
	// MongoImageEnv overrides the MongoDB image, e.g. to match production.
	MongoImageEnv = "MONGO_TEST_IMAGE"
	// DefaultMongoImage is used when MongoImageEnv is unset.
	DefaultMongoImage = "mongo:7.0"

	dbNamePrefix = "fc_"
	maxDBName    = 63
)

// MongoDBContainer wraps a MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// MongoImage returns the image integration tests run against.
func MongoImage() string {
	if image := strings.TrimSpace(os.Getenv(MongoImageEnv)); image != "" {
		return image
	}
	return DefaultMongoImage
}

// SetupMongoDB starts a dedicated MongoDB container. Prefer the shared one
// from SetupTestMainWithMongoDB unless the test stops or breaks the server.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := MongoImage()
	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start %s container: %w", image, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the MongoDB container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}

var (
	sharedMu        sync.RWMutex
	sharedContainer *MongoDBContainer
	dbSeq           atomic.Int64
)

// SetupTestMainWithMongoDB runs m against one MongoDB container for the
// whole package and returns the exit code:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	container, err := SetupMongoDB(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "integration tests need docker: %v\n", err)
		return 1
	}

	sharedMu.Lock()
	sharedContainer = container
	sharedMu.Unlock()

	code := m.Run()

	sharedMu.Lock()
	sharedContainer = nil
	sharedMu.Unlock()
	if err := container.Cleanup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// SharedURI returns the URI of the package's shared container.
// It panics outside SetupTestMainWithMongoDB.
func SharedURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if sharedContainer == nil {
		panic("testutil: shared MongoDB container not running; call SetupTestMainWithMongoDB from TestMain")
	}
	return sharedContainer.URI
}

// DBName returns a database name unique to t, so tests sharing a container
// never see each other's workspaces, confirmations or audit entries.
func DBName(t testing.TB) string {
	return SanitizeDBName(t.Name(), dbSeq.Add(1))
}

// SanitizeDBName turns a test name into a valid MongoDB database name:
// characters MongoDB rejects become underscores and the result fits 63 bytes.
func SanitizeDBName(testName string, seq int64) string {
	suffix := fmt.Sprintf("_%d_%d", os.Getpid(), seq)

	var b strings.Builder
	b.WriteString(dbNamePrefix)
	for _, r := range strings.ToLower(testName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	if limit := maxDBName - len(suffix); len(name) > limit {
		name = name[:limit]
	}
	return name + suffix
}
