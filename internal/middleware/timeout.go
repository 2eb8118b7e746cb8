package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/logger"
)

// DefaultRequestTimeout bounds a request when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

// TimeoutConfig holds configuration for the timeout middleware.
type TimeoutConfig struct {
	Timeout time.Duration
}

// Timeout bounds the request context by cfg.Timeout. Handlers pass the
// context on to the fulfillment API, so a slow upstream call is cancelled.
// A request that ran out of time without answering gets 504.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		log := logger.For("timeout")
		log.Warn().
			Str("request_id", GetRequestID(c)).
			Str("workspace_id", GetWorkspaceID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Dur("timeout", cfg.Timeout).
			Bool("answered", c.Writer.Written()).
			Msg("Request deadline exceeded")

		if c.Writer.Written() {
			return
		}
		message := i18n.Localize(c, i18n.ErrKeyTimeout)
		c.AbortWithStatusJSON(http.StatusGatewayTimeout,
			dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c)))
	}
}

// TimeoutWithDuration is Timeout with only a duration set.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	return Timeout(TimeoutConfig{Timeout: timeout})
}
