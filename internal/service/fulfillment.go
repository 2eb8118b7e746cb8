package service

import (
	"context"
	"errors"
	"sync"

	"github.com/guttosm/fulfillment-console/internal/allocation"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/shipping"
)

// ErrStaleBatch is returned by Load when another batch was selected while the
// orders were being fetched. The fetched orders are discarded.
var ErrStaleBatch = errors.New("batch selection changed while loading")

// FulfillmentAPI defines the upstream operations the console sessions use.
// *fulfillment.Client implements it.
type FulfillmentAPI interface {
	ListBatches(ctx context.Context) ([]model.Batch, error)
	FetchOrders(ctx context.Context, batchID string) ([]model.Order, error)
	allocation.PackageSubmitter
	shipping.ShippingSubmitter
}

// BatchService lists the batches an operator can load.
type BatchService interface {
	ListBatches(ctx context.Context) ([]model.Batch, error)
}

// BatchServiceImpl implements BatchService over the fulfillment API.
type BatchServiceImpl struct {
	api FulfillmentAPI
}

// NewBatchService creates a new batch service.
func NewBatchService(api FulfillmentAPI) BatchService {
	return &BatchServiceImpl{api: api}
}

// ListBatches returns the batches known to the fulfillment API.
func (s *BatchServiceImpl) ListBatches(ctx context.Context) ([]model.Batch, error) {
	return s.api.ListBatches(ctx)
}

// fetchGuard tracks the latest batch selection of a session. Starting a fetch
// cancels the previous one; only the latest generation may install its result.
type fetchGuard struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

func (g *fetchGuard) begin(ctx context.Context) (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.generation++
	fetchCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	return fetchCtx, g.generation
}

// finish releases the fetch context. When gen is still the latest selection it
// runs install and returns true; otherwise the result is stale and install is skipped.
func (g *fetchGuard) finish(gen uint64, install func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.generation {
		return false
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	if install != nil {
		install()
	}
	return true
}

func errBatchNotLoaded() error {
	return errs.NewValidationError(errs.CodeBatchNotLoaded, "no batch is loaded")
}
