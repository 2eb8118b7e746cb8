package model

import "time"

// ConfirmationKind distinguishes package confirmations from shipping confirmations.
type ConfirmationKind string

const (
	ConfirmationPackages      ConfirmationKind = "packages"
	ConfirmationBatchPackages ConfirmationKind = "batch_packages"
	ConfirmationShipping      ConfirmationKind = "shipping"
)

// Confirmation is a record of a submission to the fulfillment API.
//
// @Description Confirmation history entry
type Confirmation struct {
	ID           string           `json:"id" example:"65b6f0c2e4b0a1a2b3c4d5e6"`
	Kind         ConfirmationKind `json:"kind" example:"shipping"`
	WorkspaceID  string           `json:"workspaceId" example:"3f1c2d4e-0000-4000-8000-000000000000"`
	BatchID      string           `json:"batchId" example:"b-2025-01-28"`
	OrderIDs     []string         `json:"orderIds"`
	Courier      string           `json:"courier,omitempty" example:"USPS"`
	Service      string           `json:"service,omitempty" example:"first-class"`
	TotalCost    string           `json:"totalCost,omitempty" example:"12.50"`
	UpdatedCount int              `json:"updatedCount,omitempty" example:"3"`
	Message      string           `json:"message,omitempty" example:"Orders confirmed"`
	Success      bool             `json:"success"`
	Error        string           `json:"error,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ConfirmationQuery filters the confirmation history.
type ConfirmationQuery struct {
	WorkspaceID string
	BatchID     string
	Kind        ConfirmationKind
	Limit       int
}
