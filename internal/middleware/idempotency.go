package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the replay cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a confirmed response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute
)

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool

	cache *replayCache
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     IdempotencyKeyTTL,
		Enabled: true,
	}
}

// Idempotency makes retried confirmations safe. A POST carrying an
// Idempotency-Key is answered from the replay cache when the same workspace
// already sent the same key, path and body. A retry that arrives while the
// first request is still running gets 409 instead of confirming twice.
// Only 2xx responses are stored, so a rejected confirmation can be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}
	cache := cfg.cache
	if cache == nil {
		cache = newReplayCache(cfg.TTL)
	}
	log := logger.For("idempotency")

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey, err := replayKey(key, c.Request)
		if err != nil {
			c.Next()
			return
		}

		entry, found, busy := cache.begin(cacheKey)
		switch {
		case found:
			log.Debug().
				Str("request_id", GetRequestID(c)).
				Str("workspace_id", GetWorkspaceID(c)).
				Str("path", c.Request.URL.Path).
				Msg("replaying stored response")
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		case busy:
			message := i18n.Localize(c, i18n.ErrKeyRequestInFlight)
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewError(dto.ErrCodeConflict, message).WithRequestID(GetRequestID(c)))
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		keep := false
		defer func() {
			cache.finish(cacheKey, replayEntry{
				status:      rec.Status(),
				contentType: rec.Header().Get("Content-Type"),
				body:        rec.body.Bytes(),
			}, keep)
		}()

		c.Next()

		status := rec.Status()
		keep = status >= http.StatusOK && status < http.StatusMultipleChoices
	}
}

// replayKey hashes the idempotency key with the workspace, path and body.
// The body is restored for the handler.
func replayKey(idempotencyKey string, req *http.Request) (string, error) {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, req.Header.Get(WorkspaceIDHeader), req.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// recordingWriter copies the response body while it is written.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
