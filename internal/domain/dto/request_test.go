package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateAllocationRequestValidation(t *testing.T) {
	v := newValidator(t)
	zero, negative := 0, -1

	tests := []struct {
		name  string
		req   UpdateAllocationRequest
		valid bool
	}{
		{name: "zero is a valid quantity", req: UpdateAllocationRequest{Quantity: &zero}, valid: true},
		{name: "missing quantity", req: UpdateAllocationRequest{}, valid: false},
		{name: "negative quantity", req: UpdateAllocationRequest{Quantity: &negative}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfirmationHistoryQueryValidation(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(ConfirmationHistoryQuery{Kind: "shipping", Limit: 50}))
	assert.Error(t, v.Struct(ConfirmationHistoryQuery{Kind: "labels"}))
	assert.Error(t, v.Struct(ConfirmationHistoryQuery{Limit: 1000}))
}

func TestScanRequestValidation(t *testing.T) {
	v := newValidator(t)

	assert.Error(t, v.Struct(ScanRequest{}))
	assert.NoError(t, v.Struct(ScanRequest{Value: "ORD-1"}))
}

func TestAuditQueryValidation(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(AuditQuery{}))
	assert.NoError(t, v.Struct(AuditQuery{Action: "scan_rejected", Level: "warn", Limit: 500, Skip: 1000}))
	assert.Error(t, v.Struct(AuditQuery{Action: "deleted"}))
	assert.Error(t, v.Struct(AuditQuery{Level: "fatal"}))
	assert.Error(t, v.Struct(AuditQuery{Limit: 501}))
}
