// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "time"

// UpdateAllocationRequest sets how many units of a sku go into a package.
//
// @Description Allocation quantity for one sku of a package
type UpdateAllocationRequest struct {
	// Quantity must lie in [0, quantityPurchased]; the upper bound is checked against the order.
	Quantity *int `json:"quantity" binding:"required,min=0" example:"2" minimum:"0"`
} // @name UpdateAllocationRequest

// ScanRequest carries the value read by the barcode scanner.
//
// @Description Scanned order id
type ScanRequest struct {
	Value string `json:"value" binding:"required" example:"ORD-123"`
} // @name ScanRequest

// TrackingRequest replaces one tracking number entry. Blank values are kept while typing.
//
// @Description Tracking number entry
type TrackingRequest struct {
	Value string `json:"value" example:"9400111899223456789012"`
} // @name TrackingRequest

// CostRequest overrides the cost of one order. Blank unsets it.
//
// @Description Per-order shipping cost
type CostRequest struct {
	Cost string `json:"cost" binding:"cost" example:"4.50"`
} // @name CostRequest

// ShippingConfigRequest changes the batch shipping selection. Omitted fields are left alone.
//
// @Description Batch shipping configuration change
type ShippingConfigRequest struct {
	Courier     *string `json:"courier,omitempty" binding:"omitempty,courier" example:"UPS"`
	Service     *string `json:"service,omitempty" example:"ground"`
	GeneralCost *string `json:"generalCost,omitempty" binding:"omitempty,cost" example:"5.00"`
} // @name ShippingConfigRequest

// ConfirmationHistoryQuery filters GET /api/confirmations.
type ConfirmationHistoryQuery struct {
	BatchID string `form:"batchId"`
	Kind    string `form:"kind" binding:"omitempty,oneof=packages batch_packages shipping"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// AuditQuery filters GET /api/audit. Since and Until are RFC 3339 times.
type AuditQuery struct {
	BatchID string     `form:"batchId"`
	OrderID string     `form:"orderId"`
	Action  string     `form:"action" binding:"omitempty,oneof=request batch_loaded packages_confirmed batch_packages_confirmed shipping_confirmed scan_rejected workspace_expired"`
	Level   string     `form:"level" binding:"omitempty,oneof=debug info warn error"`
	Since   *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until   *time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit   int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Skip    int        `form:"skip" binding:"omitempty,min=0"`
}
