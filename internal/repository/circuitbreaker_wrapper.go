package repository

import (
	"context"

	"github.com/guttosm/fulfillment-console/internal/circuitbreaker"
)

// guard runs fn through cb and hands back its result. While the circuit is
// open fn is not called and the error is circuitbreaker.ErrCircuitOpen;
// callers of the audit and history stores already treat a failed write as
// non-fatal.
func guard[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}

func guardWrite(ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() error) error {
	_, err := guard(ctx, cb, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

// LogsRepositoryWithCircuitBreaker stops calling MongoDB for the audit log
// after repeated failures.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return guardWrite(ctx, r.cb, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return guardWrite(ctx, r.cb, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guard(ctx, r.cb, func() ([]*LogEntryDocument, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guard(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

// GetCircuitBreaker returns the breaker, for the readiness probe.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// ConfirmationsRepositoryWithCircuitBreaker guards the confirmation history.
type ConfirmationsRepositoryWithCircuitBreaker struct {
	repo ConfirmationsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewConfirmationsRepositoryWithCircuitBreaker wraps repo with cb.
func NewConfirmationsRepositoryWithCircuitBreaker(repo ConfirmationsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ConfirmationsRepositoryWithCircuitBreaker {
	return &ConfirmationsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *ConfirmationsRepositoryWithCircuitBreaker) Create(ctx context.Context, doc *ConfirmationDocument) error {
	return guardWrite(ctx, r.cb, func() error { return r.repo.Create(ctx, doc) })
}

func (r *ConfirmationsRepositoryWithCircuitBreaker) List(ctx context.Context, opts ConfirmationQueryOptions) ([]*ConfirmationDocument, error) {
	return guard(ctx, r.cb, func() ([]*ConfirmationDocument, error) { return r.repo.List(ctx, opts) })
}

// GetCircuitBreaker returns the breaker, for the readiness probe.
func (r *ConfirmationsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
