package services

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator with the custom rules the listing schemas
// reference. vehicle_year caps a model year at next year; the lower bound is
// a plain gte tag on the field.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("vehicle_year", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year()+1)
	})
	return v
}
