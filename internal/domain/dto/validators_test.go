package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func strPtr(s string) *string {
	return &s
}

func TestCostValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		cost  string
		valid bool
	}{
		{cost: "", valid: true},
		{cost: "4.50", valid: true},
		{cost: " 0 ", valid: true},
		{cost: "-1", valid: false},
		{cost: "abc", valid: false},
		{cost: "1,50", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			err := v.Struct(CostRequest{Cost: tt.cost})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestShippingConfigRequestValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		req   ShippingConfigRequest
		valid bool
	}{
		{name: "empty update", req: ShippingConfigRequest{}, valid: true},
		{name: "lowercase courier", req: ShippingConfigRequest{Courier: strPtr("fedex")}, valid: true},
		{name: "unknown courier", req: ShippingConfigRequest{Courier: strPtr("DHL")}, valid: false},
		{name: "negative general cost", req: ShippingConfigRequest{GeneralCost: strPtr("-2")}, valid: false},
		{name: "blank general cost", req: ShippingConfigRequest{GeneralCost: strPtr("")}, valid: true},
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

func TestFieldErrorsUseJSONNames(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(ShippingConfigRequest{GeneralCost: strPtr("-3")})
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "generalCost", fieldErrs[0].Field())
	assert.Equal(t, "cost", fieldErrs[0].Tag())

	err = v.Struct(ConfirmationHistoryQuery{Limit: 1000})
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "limit", fieldErrs[0].Field())
}
