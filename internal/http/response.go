package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/middleware"
)

// ResponseBuilder writes the console's success and error envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in dto.SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with the translation of messageKey in the request locale.
// err, when set, is attached to the context for the request logger.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, dto.ErrCodeFromStatus(statusCode), messageKey, nil, err)
}

// FromError renders a console error through middleware.ResolveError: validation
// failures, upstream failures and stale loads each get their own status and code.
func (b *ResponseBuilder) FromError(err error) {
	resolved := middleware.ResolveError(err, i18n.GetLocale(b.c))
	resp := dto.NewError(resolved.Code, resolved.Message).
		WithRequestID(middleware.GetRequestID(b.c)).
		WithDetails(resolved.Details)

	_ = b.c.Error(err)
	b.c.AbortWithStatusJSON(resolved.Status, resp)
}

// BindJSON decodes and validates the request body into v. On failure it
// answers 400 and returns false; details name each rejected field and rule.
func (b *ResponseBuilder) BindJSON(v interface{}) bool {
	if err := b.c.ShouldBindJSON(v); err != nil {
		b.abort(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody, fieldDetails(err), err)
		return false
	}
	return true
}

// BindQuery is BindJSON for query strings.
func (b *ResponseBuilder) BindQuery(v interface{}) bool {
	if err := b.c.ShouldBindQuery(v); err != nil {
		b.abort(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest, fieldDetails(err), err)
		return false
	}
	return true
}

// PathIndex parses a non-negative integer path parameter. On failure it
// answers 400 and returns false.
func (b *ResponseBuilder) PathIndex(name string) (int, bool) {
	n, err := strconv.Atoi(b.c.Param(name))
	if err != nil || n < 0 {
		if err == nil {
			err = errors.New(name + " must not be negative")
		}
		b.abort(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest,
			map[string]string{name: "integer"}, err)
		return 0, false
	}
	return n, true
}

func (b *ResponseBuilder) abort(status int, code, messageKey string, details map[string]string, err error) {
	message := i18n.Localize(b.c, messageKey)
	resp := dto.NewError(code, message).
		WithRequestID(middleware.GetRequestID(b.c)).
		WithDetails(details)
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(status, resp)
}

// fieldDetails maps each failed field to the rule it broke, e.g. {"generalCost": "cost"}.
func fieldDetails(err error) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
