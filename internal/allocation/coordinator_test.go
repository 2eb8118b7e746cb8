package allocation

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func twoOrderBatch() *Batch {
	second := model.Order{
		OrderID:              "ORD-2",
		OrderReferenceNumber: "REF-2",
		Products:             []model.Product{{SKU: "Z", Name: "Bowl", QuantityPurchased: 1}},
	}
	return NewBatch("B-1", []model.Order{mugOrder(), second})
}

func TestBatch_UnknownOrder(t *testing.T) {
	b := twoOrderBatch()

	_, err := b.AddPackage("ORD-404")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, errs.CodeOrderNotFound, ve.Code)

	_, err = b.RemovePackage("ORD-404")
	assert.ErrorIs(t, err, errs.ErrValidation)

	err = b.UpdateAllocation("ORD-404", 1, "X", 1)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestBatch_Incomplete(t *testing.T) {
	b := twoOrderBatch()
	assert.Empty(t, b.Incomplete())
	assert.True(t, b.AllComplete())

	require.NoError(t, b.UpdateAllocation("ORD-2", 1, "Z", 0))
	require.NoError(t, b.UpdateAllocation("ORD-1", 1, "X", 0))
	assert.Equal(t, []string{"ORD-1", "ORD-2"}, b.Incomplete())
	assert.False(t, b.AllComplete())
}

func TestCoordinator_ConfirmOrder(t *testing.T) {
	ctx := context.Background()
	result := dto.ConfirmationResult(`{"ok":true}`)

	tests := []struct {
		name       string
		prepare    func(*Batch)
		setupMock  func(*mocks.MockFulfillmentAPI)
		expectErr  error
		expectCode string
	}{
		{
			name: "submits complete order with zero lines",
			prepare: func(b *Batch) {
				_ = b.UpdateAllocation("ORD-1", 1, "Y", 0)
				_, _ = b.AddPackage("ORD-1")
			},
			setupMock: func(m *mocks.MockFulfillmentAPI) {
				m.On("ConfirmPackages", mock.Anything, "B-1", "ORD-1", dto.ConfirmPackagesRequest{
					Packages: []dto.PackagePayload{
						{Products: []dto.PackageProduct{{SKU: "X", Quantity: 4}, {SKU: "Y", Quantity: 0}}},
						{Products: []dto.PackageProduct{{SKU: "X", Quantity: 0}, {SKU: "Y", Quantity: 2}}},
					},
				}).Return(result, nil).Once()
			},
		},
		{
			name: "incomplete order is rejected locally",
			prepare: func(b *Batch) {
				_ = b.UpdateAllocation("ORD-1", 1, "X", 3)
			},
			setupMock:  func(*mocks.MockFulfillmentAPI) {},
			expectErr:  errs.ErrValidation,
			expectCode: errs.CodeAllocationIncomplete,
		},
		{
			name:    "transport failure is returned",
			prepare: func(*Batch) {},
			setupMock: func(m *mocks.MockFulfillmentAPI) {
				m.On("ConfirmPackages", mock.Anything, "B-1", "ORD-1", mock.Anything).
					Return(nil, errs.NewTransportError(http.StatusBadRequest, "order already packaged")).Once()
			},
			expectErr: errs.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mocks.MockFulfillmentAPI)
			tt.setupMock(api)
			b := twoOrderBatch()
			tt.prepare(b)
			before := b.states["ORD-1"].Packages()

			got, err := NewCoordinator(api).ConfirmOrder(ctx, b, "ORD-1")

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				if tt.expectCode != "" {
					ve, _ := errs.AsValidation(err)
					assert.Equal(t, tt.expectCode, ve.Code)
				}
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, string(result), string(got))
			}
			assert.Equal(t, before, b.states["ORD-1"].Packages())
			api.AssertExpectations(t)
		})
	}
}

func TestCoordinator_ConfirmAll(t *testing.T) {
	ctx := context.Background()

	t.Run("no request while any order is incomplete", func(t *testing.T) {
		api := new(mocks.MockFulfillmentAPI)
		b := twoOrderBatch()
		require.NoError(t, b.UpdateAllocation("ORD-2", 1, "Z", 0))

		_, err := NewCoordinator(api).ConfirmAll(ctx, b)

		ve, ok := errs.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, errs.CodeAllocationIncomplete, ve.Code)
		assert.Equal(t, []string{"ORD-2"}, ve.Details)
		api.AssertNotCalled(t, "ConfirmBatchPackages", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("one request for every order and state is kept", func(t *testing.T) {
		api := new(mocks.MockFulfillmentAPI)
		b := twoOrderBatch()
		api.On("ConfirmBatchPackages", mock.Anything, "B-1", mock.MatchedBy(func(req dto.ConfirmBatchPackagesRequest) bool {
			raw, _ := json.Marshal(req)
			return string(raw) == `{"orders":[`+
				`{"orderId":"ORD-1","packages":[{"products":[{"sku":"X","quantity":4},{"sku":"Y","quantity":2}]}]},`+
				`{"orderId":"ORD-2","packages":[{"products":[{"sku":"Z","quantity":1}]}]}]}`
		})).Return(dto.ConfirmationResult(`{}`), nil).Once()

		_, err := NewCoordinator(api).ConfirmAll(ctx, b)

		require.NoError(t, err)
		assert.Equal(t, 2, b.Len())
		assert.True(t, b.AllComplete())
		api.AssertExpectations(t)
	})
}
