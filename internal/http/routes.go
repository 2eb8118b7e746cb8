package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// BatchRoutes registers batch listing, courier catalog, history and audit routes.
type BatchRoutes struct {
	handler *Handler
}

// NewBatchRoutes creates a new BatchRoutes instance.
func NewBatchRoutes(handler *Handler) *BatchRoutes {
	return &BatchRoutes{handler: handler}
}

// RegisterRoutes registers the shared read-only routes.
func (r *BatchRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/batches", r.handler.ListBatches)
	rg.GET("/couriers", r.handler.ListCouriers)
	rg.GET("/confirmations", r.handler.ListConfirmations)
	rg.GET("/audit", r.handler.ListAudit)
}

// PackageRoutes registers the package allocation routes.
type PackageRoutes struct {
	handler *Handler
}

// NewPackageRoutes creates a new PackageRoutes instance.
func NewPackageRoutes(handler *Handler) *PackageRoutes {
	return &PackageRoutes{handler: handler}
}

// RegisterRoutes registers routes under /packages.
func (r *PackageRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	packages := rg.Group("/packages")
	{
		packages.GET("", r.handler.GetPackages)
		packages.POST("/batch/:batchId", r.handler.LoadPackageBatch)
		packages.POST("/confirm", r.handler.ConfirmAllPackages)
		packages.POST("/orders/:orderId/packages", r.handler.AddPackage)
		packages.DELETE("/orders/:orderId/packages/last", r.handler.RemoveLastPackage)
		packages.PUT("/orders/:orderId/packages/:packageId/allocations/:sku", r.handler.UpdateAllocation)
		packages.POST("/orders/:orderId/confirm", r.handler.ConfirmOrderPackages)
	}
}

// ShippingRoutes registers the scan, tracking and shipping confirmation routes.
type ShippingRoutes struct {
	handler *Handler
}

// NewShippingRoutes creates a new ShippingRoutes instance.
func NewShippingRoutes(handler *Handler) *ShippingRoutes {
	return &ShippingRoutes{handler: handler}
}

// RegisterRoutes registers routes under /shipping.
func (r *ShippingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	shipping := rg.Group("/shipping")
	{
		shipping.GET("", r.handler.GetShipping)
		shipping.POST("/batch/:batchId", r.handler.LoadShippingBatch)
		shipping.PUT("/config", r.handler.UpdateShippingConfig)
		shipping.POST("/confirm", r.handler.ConfirmShipping)
		shipping.POST("/orders/:orderId/scan", r.handler.ScanOrder)
		shipping.POST("/orders/:orderId/tracking", r.handler.AddTracking)
		shipping.PUT("/orders/:orderId/tracking/:index", r.handler.UpdateTracking)
		shipping.POST("/orders/:orderId/tracking/:index/advance", r.handler.AdvanceFocus)
		shipping.PUT("/orders/:orderId/cost", r.handler.SetCost)
	}
}
