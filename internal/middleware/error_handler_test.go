package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
		expectedDetail map[string]string
	}{
		{
			name:           "validation error",
			err:            errs.NewOrderValidationError(errs.CodeAllocationIncomplete, "ORD-1", "not fully allocated"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   errs.CodeAllocationIncomplete,
			expectedDetail: map[string]string{"order_id": "ORD-1"},
		},
		{
			name: "validation error with incomplete orders",
			err: errs.NewValidationError(errs.CodeAllocationIncomplete, "batch incomplete").
				WithDetails("ORD-1", "ORD-2"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   errs.CodeAllocationIncomplete,
			expectedDetail: map[string]string{"orders": "ORD-1,ORD-2"},
		},
		{
			name:           "already scanned is a conflict",
			err:            errs.NewOrderValidationError(errs.CodeAlreadyScanned, "ORD-2", ""),
			expectedStatus: http.StatusConflict,
			expectedCode:   errs.CodeAlreadyScanned,
			expectedMsg:    "This order has already been scanned",
			expectedDetail: map[string]string{"order_id": "ORD-2"},
		},
		{
			name:           "upstream message is passed through",
			err:            errs.NewTransportError(http.StatusBadRequest, "Batch is locked"),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeUpstream,
			expectedMsg:    "Batch is locked",
			expectedDetail: map[string]string{"upstream_status": "Bad Request"},
		},
		{
			name:           "upstream without message",
			err:            errs.NewTransportErrorWithCause(errors.New("connection refused")),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeUpstream,
			expectedMsg:    "The fulfillment service could not complete the request",
		},
		{
			name:           "open circuit",
			err:            errs.NewTransportErrorWithCause(circuitbreaker.ErrCircuitOpen),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeUpstreamUnavailable,
			expectedMsg:    "The fulfillment service is unavailable, please try again later",
		},
		{
			name:           "stale batch",
			err:            fmt.Errorf("load: %w", service.ErrStaleBatch),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeStaleBatch,
			expectedMsg:    "Another batch was selected while this one was loading",
		},
		{
			name:           "anything else",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
			expectedMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := ResolveError(tt.err, "en")

			assert.Equal(t, tt.expectedStatus, resolved.Status)
			assert.Equal(t, tt.expectedCode, resolved.Code)
			assert.NotEmpty(t, resolved.Message)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, resolved.Message)
			}
			assert.Equal(t, tt.expectedDetail, resolved.Details)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupHandler   func(*gin.Engine)
		expectedStatus int
		expectedBody   string
		mustContain    []string
	}{
		{
			name: "handles gin context errors",
			path: "/error",
			setupHandler: func(router *gin.Engine) {
				router.GET("/error", func(c *gin.Context) {
					_ = c.Error(errors.New("test error"))
				})
			},
			expectedStatus: http.StatusInternalServerError,
			mustContain:    []string{"internal_error", "An unexpected error occurred"},
		},
		{
			name: "renders validation errors",
			path: "/scan",
			setupHandler: func(router *gin.Engine) {
				router.GET("/scan", func(c *gin.Context) {
					_ = c.Error(errs.NewOrderValidationError(errs.CodeOrderNotFound, "ORD-9", ""))
				})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			mustContain:    []string{errs.CodeOrderNotFound, "ORD-9"},
		},
		{
			name: "does not overwrite a written response",
			path: "/written",
			setupHandler: func(router *gin.Engine) {
				router.GET("/written", func(c *gin.Context) {
					c.String(http.StatusTeapot, "short and stout")
					_ = c.Error(errors.New("late error"))
				})
			},
			expectedStatus: http.StatusTeapot,
			expectedBody:   "short and stout",
		},
		{
			name: "does nothing when no errors",
			path: "/ok",
			setupHandler: func(router *gin.Engine) {
				router.GET("/ok", func(c *gin.Context) {
					c.String(http.StatusOK, "ok")
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			tt.setupHandler(router)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
			for _, substr := range tt.mustContain {
				assert.Contains(t, w.Body.String(), substr)
			}
		})
	}
}

func TestErrorHandler_IncludesRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/stale", func(c *gin.Context) {
		_ = c.Error(service.ErrStaleBatch)
	})

	req := httptest.NewRequest(http.MethodGet, "/stale", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrCodeStaleBatch, body.Error)
	assert.Equal(t, "req-123", body.RequestID)
}
