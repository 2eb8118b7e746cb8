// Package repository stores the console's audit log and confirmation
// history in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	LogsCollection          = "audit_logs"
	ConfirmationsCollection = "confirmations"
)

// logsTTLIndex is the name MongoDB gives the timestamp index.
const logsTTLIndex = "timestamp_1"

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression negotiates zstd, snappy or zlib with the server.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings for a single console instance.
// Audit writes are batched, so the pool stays small.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        5 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          15 * time.Second,
		EnableCompression:      true,
	}
}

func (c MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetConnectTimeout(c.ConnectTimeout).
		SetServerSelectionTimeout(c.ServerSelectionTimeout).
		SetSocketTimeout(c.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if c.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return opts
}

// MongoDB holds the client and the console's collections.
type MongoDB struct {
	Client        *mongo.Client
	Database      *mongo.Database
	Logs          *mongo.Collection
	Confirmations *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and makes sure the query indexes exist.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:        client,
		Database:      db,
		Logs:          db.Collection(LogsCollection),
		Confirmations: db.Collection(ConfirmationsCollection),
	}
	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

// queryIndexes backs the history and audit trail queries. The timestamp TTL
// index on the logs is managed by SetLogsTTL.
func (m *MongoDB) queryIndexes() map[*mongo.Collection][]mongo.IndexModel {
	return map[*mongo.Collection][]mongo.IndexModel{
		m.Confirmations: {
			{Keys: bson.D{{Key: "batch_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		m.Logs: {
			{Keys: bson.D{{Key: "request_id", Value: 1}}},
			{Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "batch_id", Value: 1}}},
		},
	}
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	for coll, models := range m.queryIndexes() {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// SetLogsTTL sets how long audit entries are kept. An existing TTL index is
// changed in place; a retention of zero or less keeps entries forever.
func (m *MongoDB) SetLogsTTL(ctx context.Context, retention time.Duration) error {
	if retention <= 0 {
		_, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndex)
		if isIndexNotFound(err) {
			return nil
		}
		return err
	}

	seconds := int32(retention / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	err := m.Database.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: LogsCollection},
		{Key: "index", Value: bson.D{
			{Key: "name", Value: logsTTLIndex},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
	if err == nil || !isIndexNotFound(err) {
		return err
	}

	_, err = m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(seconds),
	})
	return err
}

// LogsTTL reports the retention of the audit log, or zero when entries
// never expire.
func (m *MongoDB) LogsTTL(ctx context.Context) (time.Duration, error) {
	specs, err := m.Logs.Indexes().ListSpecifications(ctx)
	if err != nil {
		return 0, err
	}
	for _, s := range specs {
		if s.Name == logsTTLIndex && s.ExpireAfterSeconds != nil {
			return time.Duration(*s.ExpireAfterSeconds) * time.Second, nil
		}
	}
	return 0, nil
}

// isIndexNotFound matches the server error for a missing index or a
// collection that has not been created yet.
func isIndexNotFound(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Name == "IndexNotFound" || cmdErr.Name == "NamespaceNotFound" || cmdErr.Code == 27 || cmdErr.Code == 26
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary with a short deadline.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
