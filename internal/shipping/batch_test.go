package shipping

import (
	"testing"

	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrders() []model.Order {
	return []model.Order{
		{OrderID: "ORD-123", OrderReferenceNumber: "REF-123", OrderStatus: model.OrderStatusPackaged},
		{OrderID: "ORD-456", OrderReferenceNumber: "REF-456", OrderStatus: model.OrderStatusPackaged},
		{OrderID: "ORD-789", OrderReferenceNumber: "REF-789", OrderStatus: model.OrderStatusShipped},
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	ve, ok := errs.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, code, ve.Code)
}

func TestNewBatch(t *testing.T) {
	tests := []struct {
		name             string
		orders           []model.Order
		expectConfirmed  bool
		expectOrderCount int
	}{
		{name: "pending orders get empty forms", orders: testOrders(), expectConfirmed: false, expectOrderCount: 3},
		{
			name: "all shipped batch starts empty",
			orders: []model.Order{
				{OrderID: "A", OrderStatus: model.OrderStatusShipped},
				{OrderID: "B", OrderStatus: model.OrderStatusShipped},
				{OrderID: "C", OrderStatus: model.OrderStatusShipped},
			},
			expectConfirmed:  true,
			expectOrderCount: 0,
		},
		{name: "empty batch counts as confirmed", orders: nil, expectConfirmed: true, expectOrderCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBatch("B-1", tt.orders, nil)
			assert.Equal(t, tt.expectConfirmed, b.AlreadyConfirmed())
			assert.Len(t, b.Orders(), tt.expectOrderCount)
			assert.Len(t, b.Forms(), tt.expectOrderCount)
			assert.Equal(t, Config{Courier: model.CourierUSPS, Service: "first-class"}, b.Config())
		})
	}
}

func TestBatch_Scan(t *testing.T) {
	t.Run("binds matching order", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)

		res, err := b.Scan("ORD-123", "ORD-123")

		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, &FocusTarget{Kind: FocusTracking, OrderID: "ORD-123", Index: 0}, res.Focus)
		form, _ := b.Form("ORD-123")
		assert.Equal(t, FormState{
			ScannedOrderID:       "ORD-123",
			OrderReferenceNumber: "REF-123",
			TrackingNumbers:      []string{""},
			Confirmed:            true,
		}, form)
	})

	t.Run("unknown value is rejected", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)

		_, err := b.Scan("ORD-123", "ORD-000")

		requireCode(t, err, errs.CodeOrderNotFound)
		form, _ := b.Form("ORD-123")
		assert.False(t, form.Confirmed)
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		_, err := b.Scan("ORD-000", "ORD-123")
		requireCode(t, err, errs.CodeOrderNotFound)
	})

	t.Run("value bound to another row is rejected", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		_, err := b.Scan("ORD-123", "ORD-456")
		require.NoError(t, err)

		_, err = b.Scan("ORD-456", "ORD-456")

		requireCode(t, err, errs.CodeAlreadyScanned)
		form, _ := b.Form("ORD-456")
		assert.Equal(t, FormState{}, form)
	})

	t.Run("confirmed row ignores rescans", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		_, err := b.Scan("ORD-123", "ORD-123")
		require.NoError(t, err)
		require.NoError(t, b.UpdateTracking("ORD-123", 0, "1Z999"))

		res, err := b.Scan("ORD-123", "ORD-789")

		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Nil(t, res.Focus)
		form, _ := b.Form("ORD-123")
		assert.Equal(t, "ORD-123", form.ScannedOrderID)
		assert.Equal(t, []string{"1Z999"}, form.TrackingNumbers)
	})

	t.Run("general cost applies on scan", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		require.NoError(t, b.SetGeneralCost("4.25"))

		_, err := b.Scan("ORD-456", "ORD-456")

		require.NoError(t, err)
		form, _ := b.Form("ORD-456")
		assert.Equal(t, "4.25", form.Cost)
	})

	t.Run("manual cost survives scan without general cost", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		require.NoError(t, b.SetCost("ORD-456", "3.10"))

		_, err := b.Scan("ORD-456", "ORD-456")

		require.NoError(t, err)
		form, _ := b.Form("ORD-456")
		assert.Equal(t, "3.10", form.Cost)
	})
}

func TestBatch_ScanUniqueness(t *testing.T) {
	b := NewBatch("B-1", testOrders(), nil)
	attempts := [][2]string{
		{"ORD-123", "ORD-456"},
		{"ORD-456", "ORD-456"},
		{"ORD-789", "ORD-456"},
		{"ORD-456", "ORD-123"},
		{"ORD-789", "ORD-123"},
		{"ORD-789", "ORD-789"},
	}
	for _, a := range attempts {
		_, _ = b.Scan(a[0], a[1])
	}

	seen := map[string]bool{}
	for _, f := range b.Forms() {
		if f.ScannedOrderID == "" {
			continue
		}
		assert.False(t, seen[f.ScannedOrderID], "scanned twice: %s", f.ScannedOrderID)
		seen[f.ScannedOrderID] = true
	}
	assert.Len(t, seen, 3)
}

func TestBatch_Tracking(t *testing.T) {
	b := NewBatch("B-1", testOrders(), nil)

	_, err := b.AddTracking("ORD-123")
	requireCode(t, err, errs.CodeOrderNotScanned)
	requireCode(t, b.UpdateTracking("ORD-123", 0, "x"), errs.CodeOrderNotScanned)

	_, err = b.Scan("ORD-123", "ORD-123")
	require.NoError(t, err)

	focus, err := b.AddTracking("ORD-123")
	require.NoError(t, err)
	assert.Equal(t, &FocusTarget{Kind: FocusTracking, OrderID: "ORD-123", Index: 1}, focus)

	require.NoError(t, b.UpdateTracking("ORD-123", 1, "TRK-2"))
	requireCode(t, b.UpdateTracking("ORD-123", 2, "x"), errs.CodeTrackingIndexOutOfRange)
	requireCode(t, b.UpdateTracking("ORD-123", -1, "x"), errs.CodeTrackingIndexOutOfRange)

	form, _ := b.Form("ORD-123")
	assert.Equal(t, []string{"", "TRK-2"}, form.TrackingNumbers)
	assert.False(t, form.IsReady())
}

func TestFormState_IsReady(t *testing.T) {
	tests := []struct {
		name     string
		tracking []string
		expected bool
	}{
		{name: "no entries", tracking: nil, expected: false},
		{name: "single blank", tracking: []string{""}, expected: false},
		{name: "whitespace entry", tracking: []string{"TRK-1", "   "}, expected: false},
		{name: "all filled", tracking: []string{"TRK-1", "TRK-2"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormState{TrackingNumbers: tt.tracking}.IsReady())
		})
	}
}

func TestBatch_AdvanceFocus(t *testing.T) {
	b := NewBatch("B-1", testOrders(), nil)
	_, _ = b.Scan("ORD-123", "ORD-123")
	_, _ = b.AddTracking("ORD-123")

	tests := []struct {
		name     string
		orderID  string
		index    int
		expected *FocusTarget
	}{
		{name: "next tracking entry", orderID: "ORD-123", index: 0, expected: &FocusTarget{Kind: FocusTracking, OrderID: "ORD-123", Index: 1}},
		{name: "next order scan input", orderID: "ORD-123", index: 1, expected: &FocusTarget{Kind: FocusScan, OrderID: "ORD-456"}},
		{name: "last order has no target", orderID: "ORD-789", index: 0, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.AdvanceFocus(tt.orderID, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBatch_Costs(t *testing.T) {
	t.Run("general cost overwrites manual cost", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		require.NoError(t, b.SetCost("ORD-123", "3.00"))

		require.NoError(t, b.SetGeneralCost("5.00"))

		for _, f := range b.Forms() {
			assert.Equal(t, "5.00", f.Cost)
		}
		assert.Equal(t, "5.00", b.Config().GeneralCost)
	})

	t.Run("invalid values are rejected without change", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		require.NoError(t, b.SetCost("ORD-123", "3.00"))

		requireCode(t, b.SetGeneralCost("abc"), errs.CodeInvalidCost)
		requireCode(t, b.SetCost("ORD-123", "-1"), errs.CodeInvalidCost)

		form, _ := b.Form("ORD-123")
		assert.Equal(t, "3.00", form.Cost)
		assert.Empty(t, b.Config().GeneralCost)
	})

	t.Run("blank general cost clears every order", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		require.NoError(t, b.SetCost("ORD-123", "3.00"))
		require.NoError(t, b.SetGeneralCost(""))

		form, _ := b.Form("ORD-123")
		assert.Empty(t, form.Cost)
	})

	t.Run("total cost sums decimals", func(t *testing.T) {
		forms := []FormState{{Cost: "1.10"}, {Cost: "2.20"}, {Cost: ""}}
		assert.Equal(t, "3.3", TotalCost(forms).String())
	})
}

func TestBatch_CourierAndService(t *testing.T) {
	tests := []struct {
		name          string
		courier       string
		service       string
		expectCode    string
		expectCourier model.Courier
		expectService string
	}{
		{name: "switching drops unknown service", courier: "UPS", expectCourier: model.CourierUPS, expectService: ""},
		{name: "service on new menu", courier: "ups", service: "2day", expectCourier: model.CourierUPS, expectService: "2day"},
		{name: "service not on menu", courier: "FEDEX", service: "2day", expectCode: errs.CodeInvalidService, expectCourier: model.CourierFedEx},
		{name: "unknown courier", courier: "DHL", expectCode: errs.CodeInvalidCourier, expectCourier: model.CourierUSPS, expectService: "first-class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBatch("B-1", testOrders(), nil)
			err := b.SetCourier(tt.courier)
			if err == nil && tt.service != "" {
				err = b.SetService(tt.service)
			}
			if tt.expectCode != "" {
				requireCode(t, err, tt.expectCode)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectCourier, b.Config().Courier)
			assert.Equal(t, tt.expectService, b.Config().Service)
		})
	}

	t.Run("ground survives UPS to FEDEX", func(t *testing.T) {
		b := NewBatch("B-1", testOrders(), nil)
		require.NoError(t, b.SetCourier("UPS"))
		require.NoError(t, b.SetService("ground"))
		require.NoError(t, b.SetCourier("FEDEX"))
		assert.Equal(t, "ground", b.Config().Service)
	})
}

func TestBatch_AllOrdersReady(t *testing.T) {
	b := NewBatch("B-1", testOrders(), nil)
	assert.False(t, b.AllOrdersReady())

	for _, id := range []string{"ORD-123", "ORD-456", "ORD-789"} {
		_, err := b.Scan(id, id)
		require.NoError(t, err)
		require.NoError(t, b.UpdateTracking(id, 0, "TRK-"+id))
	}
	assert.True(t, b.AllOrdersReady())

	_, _ = b.AddTracking("ORD-456")
	assert.False(t, b.AllOrdersReady())
	assert.Equal(t, []string{"ORD-456"}, b.NotReady())

	empty := NewBatch("B-2", nil, nil)
	assert.False(t, empty.AllOrdersReady())
}

func TestBatch_ApplyConfig(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name       string
		update     ConfigUpdate
		expectCode string
		expected   Config
	}{
		{
			name:     "courier and service together",
			update:   ConfigUpdate{Courier: str("UPS"), Service: str("2day")},
			expected: Config{Courier: model.CourierUPS, Service: "2day"},
		},
		{
			name:     "general cost only",
			update:   ConfigUpdate{GeneralCost: str("7.5")},
			expected: Config{Courier: model.CourierUSPS, Service: "first-class", GeneralCost: "7.5"},
		},
		{
			name:       "invalid service leaves courier untouched",
			update:     ConfigUpdate{Courier: str("UPS"), Service: str("priority")},
			expectCode: errs.CodeInvalidService,
			expected:   Config{Courier: model.CourierUSPS, Service: "first-class"},
		},
		{
			name:       "invalid cost leaves courier untouched",
			update:     ConfigUpdate{Courier: str("FEDEX"), GeneralCost: str("1,50")},
			expectCode: errs.CodeInvalidCost,
			expected:   Config{Courier: model.CourierUSPS, Service: "first-class"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBatch("B-1", testOrders(), nil)
			err := b.ApplyConfig(tt.update)
			if tt.expectCode != "" {
				requireCode(t, err, tt.expectCode)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, b.Config())
		})
	}
}
