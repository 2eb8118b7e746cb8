package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/shopspring/decimal"
)

// RegisterValidators adds the console's custom binding tags to v:
// "cost" accepts blank or a non-negative decimal, "courier" accepts a known courier.
// Field errors are reported under their JSON names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("cost", validateCost); err != nil {
		return err
	}
	return v.RegisterValidation("courier", validateCourier)
}

func validateCost(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	d, err := decimal.NewFromString(raw)
	return err == nil && !d.IsNegative()
}

func validateCourier(fl validator.FieldLevel) bool {
	_, ok := model.ParseCourier(fl.Field().String())
	return ok
}

func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
