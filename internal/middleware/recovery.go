package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/logger"
)

// Recovery turns a panicking handler into a localized 500 response.
// The workspace is left as the panic found it; the operator can retry the action.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			requestID := GetRequestID(c)
			l := logger.For("recovery")
			l.Error().
				Str("request_id", requestID).
				Str("workspace_id", GetWorkspaceID(c)).
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			message := i18n.Localize(c, i18n.ErrKeyInternalError)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}()
		c.Next()
	}
}
