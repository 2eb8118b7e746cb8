// Package fulfillment is the client of the upstream fulfillment API.
package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/logger"
)

// maxResponseBytes bounds how much of an upstream response is read.
const maxResponseBytes = 10 << 20

// Transport performs a request against the fulfillment API and returns the
// response payload with any {status, data} envelope removed.
type Transport interface {
	Do(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// HTTPTransport is the net/http implementation of Transport.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.client = c
	}
}

// WithCircuitBreaker protects every request with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) TransportOption {
	return func(t *HTTPTransport) {
		t.breaker = cb
	}
}

// NewHTTPTransport creates a transport for the API rooted at baseURL.
func NewHTTPTransport(baseURL string, timeout time.Duration, opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsUpstreamFailure reports whether err means the fulfillment API is unhealthy.
// Responses the API gave on purpose (4xx) are not failures.
func IsUpstreamFailure(err error) bool {
	te, ok := errs.AsTransport(err)
	if !ok {
		return true
	}
	return te.StatusCode == 0 || te.StatusCode >= http.StatusInternalServerError
}

// Do sends the request. Non-2xx responses and network errors come back as *errs.TransportError.
func (t *HTTPTransport) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if t.breaker == nil {
		return t.do(ctx, method, path, body)
	}

	var out json.RawMessage
	err := t.breaker.Execute(ctx, func() error {
		var doErr error
		out, doErr = t.do(ctx, method, path, body)
		return doErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, errs.NewTransportErrorWithCause(err)
	}
	if err != nil {
		if _, ok := errs.AsTransport(err); !ok {
			return nil, errs.NewTransportErrorWithCause(err)
		}
		return nil, err
	}
	return out, nil
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errs.NewTransportErrorWithCause(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.NewTransportErrorWithCause(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		te := errs.NewTransportError(resp.StatusCode, errorMessage(payload))
		l := logger.For("fulfillment")
		l.Warn().
			Str("method", method).
			Str("path", path).
			Int("status_code", resp.StatusCode).
			Str("upstream_message", te.Message).
			Msg("Fulfillment API rejected request")
		return nil, te
	}

	return unwrapEnvelope(payload), nil
}

// unwrapEnvelope returns data when payload is an object carrying both status and data.
func unwrapEnvelope(payload []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return json.RawMessage(trimmed)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return json.RawMessage(trimmed)
	}
	_, hasStatus := envelope["status"]
	data, hasData := envelope["data"]
	if hasStatus && hasData {
		return data
	}
	return json.RawMessage(trimmed)
}

// errorMessage extracts the message field of a JSON error body.
func errorMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}
