// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"encoding/json"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockFulfillmentAPI struct {
	mock.Mock
}

func (m *MockFulfillmentAPI) ListBatches(ctx context.Context) ([]model.Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Batch), args.Error(1)
}

func (m *MockFulfillmentAPI) FetchOrders(ctx context.Context, batchID string) ([]model.Order, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockFulfillmentAPI) ConfirmPackages(ctx context.Context, batchID, orderID string, req dto.ConfirmPackagesRequest) (dto.ConfirmationResult, error) {
	args := m.Called(ctx, batchID, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.ConfirmationResult), args.Error(1)
}

func (m *MockFulfillmentAPI) ConfirmBatchPackages(ctx context.Context, batchID string, req dto.ConfirmBatchPackagesRequest) (dto.ConfirmationResult, error) {
	args := m.Called(ctx, batchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.ConfirmationResult), args.Error(1)
}

func (m *MockFulfillmentAPI) ConfirmShipping(ctx context.Context, batchID string, req dto.ConfirmShippingRequest) (*dto.ConfirmShippingResult, error) {
	args := m.Called(ctx, batchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfirmShippingResult), args.Error(1)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	args := m.Called(ctx, method, path, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
