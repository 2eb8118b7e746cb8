package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/metrics"
)

// Operation names used as metric labels.
const (
	OpListBatches          = "list_batches"
	OpFetchOrders          = "fetch_orders"
	OpConfirmPackages      = "confirm_packages"
	OpConfirmBatchPackages = "confirm_batch_packages"
	OpConfirmShipping      = "confirm_shipping"
)

// Client is the typed fulfillment API client.
type Client struct {
	transport Transport
}

// NewClient creates a client over t.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

func (c *Client) call(ctx context.Context, op, method, path string, body, out any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.transport.Do(ctx, method, path, body)
	metrics.RecordUpstreamRequest(op, time.Since(start), upstreamStatus(err))
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, errs.NewTransportErrorWithCause(fmt.Errorf("decode %s response: %w", op, err))
		}
	}
	return raw, nil
}

func upstreamStatus(err error) string {
	if err == nil {
		return "success"
	}
	if te, ok := errs.AsTransport(err); ok && te.StatusCode != 0 {
		return fmt.Sprintf("%dxx", te.StatusCode/100)
	}
	return "error"
}

// ListBatches returns the batches known to the fulfillment API.
func (c *Client) ListBatches(ctx context.Context) ([]model.Batch, error) {
	batches := make([]model.Batch, 0)
	if _, err := c.call(ctx, OpListBatches, http.MethodGet, "/batch", nil, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

// FetchOrders returns the orders of a batch.
func (c *Client) FetchOrders(ctx context.Context, batchID string) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	path := "/batch/" + url.PathEscape(batchID) + "/orders"
	if _, err := c.call(ctx, OpFetchOrders, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ConfirmPackages submits the packages of one order.
func (c *Client) ConfirmPackages(ctx context.Context, batchID, orderID string, req dto.ConfirmPackagesRequest) (dto.ConfirmationResult, error) {
	path := "/batch/" + url.PathEscape(batchID) + "/orders/" + url.PathEscape(orderID) + "/packages"
	return c.call(ctx, OpConfirmPackages, http.MethodPost, path, req, nil)
}

// ConfirmBatchPackages submits the packages of every order of a batch.
func (c *Client) ConfirmBatchPackages(ctx context.Context, batchID string, req dto.ConfirmBatchPackagesRequest) (dto.ConfirmationResult, error) {
	path := "/batch/" + url.PathEscape(batchID) + "/orders/packages"
	return c.call(ctx, OpConfirmBatchPackages, http.MethodPost, path, req, nil)
}

// ConfirmShipping submits the shipping confirmation of a batch. Any 2xx
// means the upstream applied it: a body that is empty or not a result
// object yields a zero result instead of an error, so the caller still
// clears its local state.
func (c *Client) ConfirmShipping(ctx context.Context, batchID string, req dto.ConfirmShippingRequest) (*dto.ConfirmShippingResult, error) {
	path := "/batch/" + url.PathEscape(batchID) + "/orders/confirm"
	raw, err := c.call(ctx, OpConfirmShipping, http.MethodPost, path, req, nil)
	if err != nil {
		return nil, err
	}

	res := &dto.ConfirmShippingResult{}
	if body := bytes.TrimSpace(raw); len(body) > 0 && !bytes.Equal(body, []byte("null")) {
		if err := json.Unmarshal(body, res); err != nil {
			l := logger.For("fulfillment")
			l.Warn().Err(err).Str("batch_id", batchID).Msg("Shipping confirmed with an unreadable result body")
			res = &dto.ConfirmShippingResult{}
		}
	}
	return res, nil
}
