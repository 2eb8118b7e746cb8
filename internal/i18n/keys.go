package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyStaleBatch indicates a batch load was superseded by a newer selection.
	ErrKeyStaleBatch = "error.stale_batch"
	// ErrKeyUpstream indicates the fulfillment API rejected or failed a request.
	ErrKeyUpstream = "error.upstream"
	// ErrKeyUpstreamUnavailable indicates the fulfillment API circuit is open.
	ErrKeyUpstreamUnavailable = "error.upstream_unavailable"
	// ErrKeyHistoryDisabled indicates confirmation history needs MongoDB.
	ErrKeyHistoryDisabled = "error.history_disabled"
	// ErrKeyRequestInFlight indicates a request with the same Idempotency-Key is still running.
	ErrKeyRequestInFlight = "error.request_in_flight"
	// ErrKeyAuditDisabled indicates the audit trail needs MongoDB.
	ErrKeyAuditDisabled = "error.audit_disabled"
)

// Success message translation keys.
const (
	SuccessKeyPackagesConfirmed = "success.packages_confirmed"
	SuccessKeyShippingConfirmed = "success.shipping_confirmed"
)

// ValidationKey returns the translation key of a validation error code.
func ValidationKey(code string) string {
	return "error.validation." + code
}
