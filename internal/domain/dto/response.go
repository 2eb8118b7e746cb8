package dto

import (
	"net/http"
	"time"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeStaleBatch indicates the batch selection changed during a load.
	ErrCodeStaleBatch = "stale_batch"
	// ErrCodeUpstream indicates the fulfillment API rejected or failed a request.
	ErrCodeUpstream = "upstream_error"
	// ErrCodeUpstreamUnavailable indicates the fulfillment API circuit is open.
	ErrCodeUpstreamUnavailable = "upstream_unavailable"
	// ErrCodeServiceUnavailable indicates an optional backend is not configured.
	ErrCodeServiceUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the body of every non-2xx answer.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"already_scanned"`
	Message string `json:"message,omitempty" example:"This order has already been scanned"`
	// Details names the offending fields or orders, e.g. {"order_id": "ORD-123"}.
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates an ErrorResponse stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails sets the details. An empty map leaves them unset.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	if len(details) > 0 {
		e.Details = details
	}
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusBadGateway:
		return ErrCodeUpstream
	case http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	default:
		return ErrCodeInternal
	}
}

// PackageConfirmation is returned after packages were confirmed.
//
// @Description Package confirmation outcome
type PackageConfirmation struct {
	Message string             `json:"message" example:"Packages confirmed"`
	Result  ConfirmationResult `json:"result,omitempty" swaggertype:"object"`
} // @name PackageConfirmation

// PackageRemoval reports whether a package was removed.
//
// @Description Remove-last-package outcome
type PackageRemoval struct {
	Removed bool `json:"removed" example:"true"`
} // @name PackageRemoval
