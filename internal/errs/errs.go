// Package errs defines the error taxonomy shared by the allocation and shipping engines.
//
// Two classes exist:
//   - ValidationError: a local precondition failed. Always detected before any
//     network call and never accompanied by a state change.
//   - TransportError: the upstream fulfillment API could not be reached or
//     answered with a non-success status. Local state is left untouched.
//
// Both wrap a sentinel so callers can classify with errors.Is.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is the sentinel wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrTransport is the sentinel wrapped by every TransportError.
	ErrTransport = errors.New("transport failed")
)

// Validation codes. They double as i18n message suffixes.
const (
	CodeAllocationIncomplete    = "allocation_incomplete"
	CodeOrderNotFound           = "order_not_found"
	CodeAlreadyScanned          = "already_scanned"
	CodeOrderNotScanned         = "order_not_scanned"
	CodeTrackingNotReady        = "tracking_not_ready"
	CodeTrackingIndexOutOfRange = "tracking_index_out_of_range"
	CodePackageNotFound         = "package_not_found"
	CodePackageNotAllowed       = "package_not_allowed"
	CodeSKUNotFound             = "sku_not_found"
	CodeQuantityOutOfRange      = "quantity_out_of_range"
	CodeInvalidCost             = "invalid_cost"
	CodeInvalidCourier          = "invalid_courier"
	CodeInvalidService          = "invalid_service"
	CodeServiceRequired         = "service_required"
	CodeBatchNotLoaded          = "batch_not_loaded"
)

// ValidationError reports a failed local precondition.
type ValidationError struct {
	Code    string
	OrderID string
	Message string
	// Details carries extra context, e.g. the incomplete order ids of a batch.
	Details []string
}

// NewValidationError creates a ValidationError for the given code.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NewOrderValidationError creates a ValidationError bound to one order.
func NewOrderValidationError(code, orderID, message string) *ValidationError {
	return &ValidationError{Code: code, OrderID: orderID, Message: message}
}

// WithDetails returns a copy of the error carrying the given details.
func (e *ValidationError) WithDetails(details ...string) *ValidationError {
	cp := *e
	cp.Details = append([]string(nil), details...)
	return &cp
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	b.WriteString(": ")
	b.WriteString(e.Code)
	if e.OrderID != "" {
		b.WriteString(" (order ")
		b.WriteString(e.OrderID)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Details, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// genericTransportMessage is shown when the server gave no message of its own.
const genericTransportMessage = "the fulfillment service could not complete the request"

// TransportError reports an upstream failure.
type TransportError struct {
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	// Message is the human-readable message returned by the server, if any.
	Message string
	Cause   error
}

// NewTransportError creates a TransportError from a server response.
func NewTransportError(statusCode int, message string) *TransportError {
	return &TransportError{StatusCode: statusCode, Message: message}
}

// NewTransportErrorWithCause creates a TransportError for a failure with no usable response.
func NewTransportErrorWithCause(cause error) *TransportError {
	return &TransportError{Cause: cause}
}

// UserMessage returns the server-provided message when available, otherwise a generic one.
func (e *TransportError) UserMessage() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return genericTransportMessage
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("%s: status %d: %s (cause: %v)", ErrTransport, e.StatusCode, e.UserMessage(), e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", ErrTransport, e.StatusCode, e.UserMessage())
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", ErrTransport, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", ErrTransport, e.UserMessage())
	}
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Cause}
}

// AsValidation extracts a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// AsTransport extracts a TransportError from err.
func AsTransport(err error) (*TransportError, bool) {
	var t *TransportError
	if errors.As(err, &t) {
		return t, true
	}
	return nil, false
}
