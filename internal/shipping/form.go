// Package shipping drives the scan, tracking and shipping confirmation flow of a batch.
package shipping

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormState is the shipping form of one order.
//
// @Description Per-order shipping form
type FormState struct {
	ScannedOrderID       string   `json:"scannedOrderId,omitempty" example:"ORD-123"`
	OrderReferenceNumber string   `json:"orderReferenceNumber,omitempty" example:"112-5550123-7"`
	TrackingNumbers      []string `json:"trackingNumbers"`
	Cost                 string   `json:"cost,omitempty" example:"4.50"`
	Confirmed            bool     `json:"confirmed"`
}

// IsReady reports whether the form has at least one tracking number and no blank entries.
func (f FormState) IsReady() bool {
	if len(f.TrackingNumbers) == 0 {
		return false
	}
	for _, tn := range f.TrackingNumbers {
		if strings.TrimSpace(tn) == "" {
			return false
		}
	}
	return true
}

func (f FormState) clone() FormState {
	f.TrackingNumbers = append([]string(nil), f.TrackingNumbers...)
	return f
}

// ValidCost reports whether v is blank or a non-negative decimal amount.
func ValidCost(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

// TotalCost sums the costs of the given forms; blank costs count as zero.
func TotalCost(forms []FormState) decimal.Decimal {
	total := decimal.Zero
	for _, f := range forms {
		if d, err := decimal.NewFromString(strings.TrimSpace(f.Cost)); err == nil {
			total = total.Add(d)
		}
	}
	return total
}

// FocusKind names the kind of input a presentation layer should focus.
type FocusKind string

const (
	FocusScan     FocusKind = "scan"
	FocusTracking FocusKind = "tracking"
)

// FocusTarget is an optional hint telling the presentation layer where input goes next.
//
// @Description Next input to focus
type FocusTarget struct {
	Kind    FocusKind `json:"kind" example:"tracking"`
	OrderID string    `json:"orderId" example:"ORD-123"`
	Index   int       `json:"index" example:"0"`
}
