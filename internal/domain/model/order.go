// Package model defines the core domain entities for the fulfillment console.
package model

// Platform is the marketplace an order was imported from.
type Platform string

const (
	PlatformTemu   Platform = "TEMU"
	PlatformEbay   Platform = "EBAY"
	PlatformAmazon Platform = "AMAZON"
)

// Valid reports whether p is one of the known marketplaces.
func (p Platform) Valid() bool {
	switch p {
	case PlatformTemu, PlatformEbay, PlatformAmazon:
		return true
	}
	return false
}

// OrderStatus is owned by the fulfillment server; the console only reads it.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPackaged  OrderStatus = "PACKAGED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsShipped reports whether the order already left the warehouse.
func (s OrderStatus) IsShipped() bool {
	return s == OrderStatusShipped
}

// Product is a purchased line item of an order.
//
// @Description Purchased line item
type Product struct {
	SKU               string `json:"sku" example:"MUG-BLUE-330"`
	Name              string `json:"name" example:"Blue mug 330ml"`
	QuantityPurchased int    `json:"quantityPurchased" example:"4"`
}

// OrderMetadata holds import-time information about an order.
type OrderMetadata struct {
	Platform Platform `json:"platform" example:"EBAY"`
}

// Order is an order as returned by the fulfillment API for a batch.
//
// @Description Order belonging to a batch
type Order struct {
	OrderID              string        `json:"orderId" example:"ORD-123"`
	OrderReferenceNumber string        `json:"orderReferenceNumber" example:"112-5550123-7"`
	Products             []Product     `json:"products"`
	Metadata             OrderMetadata `json:"metadata"`
	OrderStatus          OrderStatus   `json:"orderStatus" example:"PENDING"`
}

// Product returns the product with the given sku.
func (o Order) Product(sku string) (Product, bool) {
	for _, p := range o.Products {
		if p.SKU == sku {
			return p, true
		}
	}
	return Product{}, false
}

// TotalUnits returns the number of purchased units across all products.
func (o Order) TotalUnits() int {
	total := 0
	for _, p := range o.Products {
		total += p.QuantityPurchased
	}
	return total
}

// AllShipped reports whether every order is already shipped.
// An empty slice counts as shipped: there is nothing left to confirm.
func AllShipped(orders []Order) bool {
	for _, o := range orders {
		if !o.OrderStatus.IsShipped() {
			return false
		}
	}
	return true
}

// Batch is a named group of orders processed together.
//
// @Description Batch summary
type Batch struct {
	ID         string     `json:"id" example:"b-2025-01-28"`
	Name       string     `json:"name" example:"Morning eBay run"`
	CreatedAt  string     `json:"createdAt" example:"2025-01-28T10:00:00Z"`
	Platforms  []Platform `json:"platforms"`
	LabelFile  string     `json:"labelFile,omitempty" example:"labels.pdf"`
	OrderCount int        `json:"orderCount" example:"12"`
}
