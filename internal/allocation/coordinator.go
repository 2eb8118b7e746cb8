package allocation

import (
	"context"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
)

// PackageSubmitter sends package confirmations to the fulfillment API.
type PackageSubmitter interface {
	ConfirmPackages(ctx context.Context, batchID, orderID string, req dto.ConfirmPackagesRequest) (dto.ConfirmationResult, error)
	ConfirmBatchPackages(ctx context.Context, batchID string, req dto.ConfirmBatchPackagesRequest) (dto.ConfirmationResult, error)
}

// Coordinator confirms package allocations for one order or a whole batch.
// Local state is kept after a successful confirmation so the operator can
// still review what was sent.
type Coordinator struct {
	submitter PackageSubmitter
}

// NewCoordinator creates a coordinator submitting through s.
func NewCoordinator(s PackageSubmitter) *Coordinator {
	return &Coordinator{submitter: s}
}

// ConfirmOrder submits the packages of a single, fully allocated order.
func (c *Coordinator) ConfirmOrder(ctx context.Context, batch *Batch, orderID string) (dto.ConfirmationResult, error) {
	req, err := batch.orderRequest(orderID)
	if err != nil {
		return nil, err
	}
	return c.submitter.ConfirmPackages(ctx, batch.ID(), orderID, req)
}

// ConfirmAll submits every order of the batch in one request.
// Nothing is sent while any order is incomplete.
func (c *Coordinator) ConfirmAll(ctx context.Context, batch *Batch) (dto.ConfirmationResult, error) {
	req, err := batch.batchRequest()
	if err != nil {
		return nil, err
	}
	return c.submitter.ConfirmBatchPackages(ctx, batch.ID(), req)
}
