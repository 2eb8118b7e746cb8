package model

import "strings"

// Courier is the shipping carrier selected for a batch.
type Courier string

const (
	CourierUSPS  Courier = "USPS"
	CourierUPS   Courier = "UPS"
	CourierFedEx Courier = "FEDEX"
	CourierOther Courier = "OTHER"
)

// Couriers lists the known carriers in display order.
var Couriers = []Courier{CourierUSPS, CourierUPS, CourierFedEx, CourierOther}

// ParseCourier normalises s into a known courier.
func ParseCourier(s string) (Courier, bool) {
	c := Courier(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Couriers {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// ServiceOption is one entry of a courier's service menu.
//
// @Description Courier service tier
type ServiceOption struct {
	Code  string `json:"code" yaml:"code" example:"priority"`
	Label string `json:"label" yaml:"label" example:"Priority Mail"`
}
