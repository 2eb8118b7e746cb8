package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request and, when
// loggingService is set, persists the request to the audit log. Probe,
// metrics and swagger traffic is only written to the console.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		entry := &model.LogEntry{
			Timestamp:   start,
			Level:       getLogLevel(status),
			Message:     "HTTP request",
			ActionType:  model.ActionRequest,
			RequestID:   GetRequestID(c),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			StatusCode:  status,
			Duration:    latency.Milliseconds(),
			IP:          c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			WorkspaceID: GetWorkspaceID(c),
			BatchID:     c.Param("batchId"),
			OrderID:     c.Param("orderId"),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		l := logger.For("http")
		event := l.WithLevel(zerologLevel(status)).
			Str("request_id", entry.RequestID).
			Str("workspace_id", entry.WorkspaceID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP)
		if entry.BatchID != "" {
			event = event.Str("batch_id", entry.BatchID)
		}
		if entry.OrderID != "" {
			event = event.Str("order_id", entry.OrderID)
		}
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg("HTTP request")

		if loggingService == nil || !auditedPath(entry.Path) {
			return
		}
		if al := GetAsyncLogger(); al != nil {
			al.Log(entry)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = loggingService.CreateLog(ctx, entry)
		}()
	}
}

// auditedPath reports whether requests to path belong in the audit log.
func auditedPath(path string) bool {
	switch path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return !strings.HasPrefix(path, "/swagger/")
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}

func zerologLevel(statusCode int) zerolog.Level {
	level, err := zerolog.ParseLevel(getLogLevel(statusCode))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
