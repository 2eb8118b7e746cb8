package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/service"
)

// ResolvedError is the HTTP rendition of a console error.
type ResolvedError struct {
	Status int
	Code   string
	// Message is already translated. Upstream messages are passed through as sent.
	Message string
	Details map[string]string
}

// ResolveError maps err to a status, an error code and a message in locale.
//
//   - ValidationError: 422, or 409 for already_scanned.
//   - TransportError: 502, or 503 when the circuit is open. 4xx answers keep the upstream message.
//   - ErrStaleBatch: 409.
//   - anything else: 500.
func ResolveError(err error, locale string) ResolvedError {
	t := i18n.GetTranslator()

	if ve, ok := errs.AsValidation(err); ok {
		status := http.StatusUnprocessableEntity
		if ve.Code == errs.CodeAlreadyScanned {
			status = http.StatusConflict
		}
		details := map[string]string{}
		if ve.OrderID != "" {
			details["order_id"] = ve.OrderID
		}
		if len(ve.Details) > 0 {
			details["orders"] = strings.Join(ve.Details, ",")
		}
		if len(details) == 0 {
			details = nil
		}
		return ResolvedError{
			Status:  status,
			Code:    ve.Code,
			Message: t.Translate(i18n.ValidationKey(ve.Code), locale),
			Details: details,
		}
	}

	if te, ok := errs.AsTransport(err); ok {
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			return ResolvedError{
				Status:  http.StatusServiceUnavailable,
				Code:    dto.ErrCodeUpstreamUnavailable,
				Message: t.Translate(i18n.ErrKeyUpstreamUnavailable, locale),
			}
		}
		message := te.Message
		if message == "" {
			message = t.Translate(i18n.ErrKeyUpstream, locale)
		}
		var details map[string]string
		if te.StatusCode != 0 {
			details = map[string]string{"upstream_status": http.StatusText(te.StatusCode)}
		}
		return ResolvedError{
			Status:  http.StatusBadGateway,
			Code:    dto.ErrCodeUpstream,
			Message: message,
			Details: details,
		}
	}

	if errors.Is(err, service.ErrStaleBatch) {
		return ResolvedError{
			Status:  http.StatusConflict,
			Code:    dto.ErrCodeStaleBatch,
			Message: t.Translate(i18n.ErrKeyStaleBatch, locale),
		}
	}

	return ResolvedError{
		Status:  http.StatusInternalServerError,
		Code:    dto.ErrCodeInternal,
		Message: t.Translate(i18n.ErrKeyInternalError, locale),
	}
}

// ErrorHandler returns a middleware that handles gin context errors.
// Errors left unanswered by the handler are rendered through ResolveError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID := GetRequestID(c)

			resolved := ResolveError(err.Err, i18n.GetLocale(c))
			log := logger.Logger()
			event := log.Error()
			if resolved.Status < http.StatusInternalServerError {
				event = log.Warn()
			}
			event.
				Str("request_id", requestID).
				Str("workspace_id", GetWorkspaceID(c)).
				Str("error", err.Error()).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Int("status", resolved.Status).
				Msg("Request error")

			if !c.Writer.Written() {
				errorResp := dto.NewError(resolved.Code, resolved.Message).
					WithRequestID(requestID).
					WithDetails(resolved.Details)
				c.AbortWithStatusJSON(resolved.Status, errorResp)
			}
		}
	}
}
