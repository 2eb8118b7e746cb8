package shipping

import (
	"context"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
)

// ShippingSubmitter sends shipping confirmations to the fulfillment API.
type ShippingSubmitter interface {
	ConfirmShipping(ctx context.Context, batchID string, req dto.ConfirmShippingRequest) (*dto.ConfirmShippingResult, error)
}

// Coordinator confirms the shipping of a whole batch.
type Coordinator struct {
	submitter ShippingSubmitter
}

// NewCoordinator creates a coordinator submitting through s.
func NewCoordinator(s ShippingSubmitter) *Coordinator {
	return &Coordinator{submitter: s}
}

// ConfirmShipping submits every order of the batch in one request and clears
// the batch on success. On failure the batch is left as it was.
func (c *Coordinator) ConfirmShipping(ctx context.Context, batch *Batch) (*dto.ConfirmShippingResult, error) {
	req, err := batch.request()
	if err != nil {
		return nil, err
	}
	res, err := c.submitter.ConfirmShipping(ctx, batch.ID(), req)
	if err != nil {
		return nil, err
	}
	batch.Reset()
	return res, nil
}
