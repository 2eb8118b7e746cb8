package dto

import "encoding/json"

// PackageProduct is one sku line of a confirmed package.
type PackageProduct struct {
	SKU      string `json:"sku" example:"MUG-BLUE-330"`
	Quantity int    `json:"quantity" example:"2"`
}

// PackagePayload is a physical package in the fulfillment API wire shape.
type PackagePayload struct {
	Products []PackageProduct `json:"products"`
}

// ConfirmPackagesRequest is the body of POST /batch/{batchId}/orders/{orderId}/packages.
type ConfirmPackagesRequest struct {
	Packages []PackagePayload `json:"packages"`
}

// OrderPackages pairs an order with its packages for batch confirmation.
type OrderPackages struct {
	OrderID  string           `json:"orderId"`
	Packages []PackagePayload `json:"packages"`
}

// ConfirmBatchPackagesRequest is the body of POST /batch/{batchId}/orders/packages.
type ConfirmBatchPackagesRequest struct {
	Orders []OrderPackages `json:"orders"`
}

// OrderConfirmation is the per-order part of a shipping confirmation.
type OrderConfirmation struct {
	OrderID         string   `json:"orderId"`
	TrackingNumbers []string `json:"trackingNumbers"`
	Cost            string   `json:"cost,omitempty"`
}

// ConfirmShippingRequest is the body of POST /batch/{batchId}/orders/confirm.
type ConfirmShippingRequest struct {
	Courier           string              `json:"courier"`
	Service           string              `json:"service"`
	OrderConfirmation []OrderConfirmation `json:"orderConfirmation"`
}

// ConfirmShippingResult is returned by the fulfillment API after a shipping confirmation.
//
// @Description Shipping confirmation result
type ConfirmShippingResult struct {
	Message      string `json:"message" example:"Orders confirmed"`
	UpdatedCount int    `json:"updatedCount" example:"3"`
}

// ConfirmationResult is the opaque result of a package confirmation.
type ConfirmationResult = json.RawMessage
