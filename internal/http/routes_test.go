package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredRoutes(group RouteGroup) map[string]bool {
	router := gin.New()
	group.RegisterRoutes(router.Group("/api"))

	out := make(map[string]bool)
	for _, r := range router.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestNewRouteGroups(t *testing.T) {
	handler, _ := newTestHandler()

	batch := NewBatchRoutes(handler)
	packages := NewPackageRoutes(handler)
	shipping := NewShippingRoutes(handler)

	require.NotNil(t, batch)
	require.NotNil(t, packages)
	require.NotNil(t, shipping)
	assert.Equal(t, handler, batch.handler)
	assert.Equal(t, handler, packages.handler)
	assert.Equal(t, handler, shipping.handler)
}

func TestRouteGroups_RegisterRoutes(t *testing.T) {
	handler, _ := newTestHandler()

	tests := []struct {
		name   string
		group  RouteGroup
		routes []string
	}{
		{
			name:  "batch routes",
			group: NewBatchRoutes(handler),
			routes: []string{
				http.MethodGet + " /api/batches",
				http.MethodGet + " /api/couriers",
				http.MethodGet + " /api/confirmations",
				http.MethodGet + " /api/audit",
			},
		},
		{
			name:  "package routes",
			group: NewPackageRoutes(handler),
			routes: []string{
				http.MethodGet + " /api/packages",
				http.MethodPost + " /api/packages/batch/:batchId",
				http.MethodPost + " /api/packages/confirm",
				http.MethodPost + " /api/packages/orders/:orderId/packages",
				http.MethodDelete + " /api/packages/orders/:orderId/packages/last",
				http.MethodPut + " /api/packages/orders/:orderId/packages/:packageId/allocations/:sku",
				http.MethodPost + " /api/packages/orders/:orderId/confirm",
			},
		},
		{
			name:  "shipping routes",
			group: NewShippingRoutes(handler),
			routes: []string{
				http.MethodGet + " /api/shipping",
				http.MethodPost + " /api/shipping/batch/:batchId",
				http.MethodPut + " /api/shipping/config",
				http.MethodPost + " /api/shipping/confirm",
				http.MethodPost + " /api/shipping/orders/:orderId/scan",
				http.MethodPost + " /api/shipping/orders/:orderId/tracking",
				http.MethodPut + " /api/shipping/orders/:orderId/tracking/:index",
				http.MethodPost + " /api/shipping/orders/:orderId/tracking/:index/advance",
				http.MethodPut + " /api/shipping/orders/:orderId/cost",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := registeredRoutes(tt.group)

			assert.Len(t, got, len(tt.routes))
			for _, r := range tt.routes {
				assert.True(t, got[r], "missing route %s", r)
			}
		})
	}
}
