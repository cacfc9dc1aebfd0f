// Package validate adapts go-playground/validator output to the domain
// error taxonomy. Use-cases own schema validation: callers hand them raw
// input and the first offending field is reported.
package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

// Input validates the struct and returns a validation error naming the
// first offending field, or nil.
func Input(v *validator.Validate, input interface{}) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	if fes, ok := err.(validator.ValidationErrors); ok && len(fes) > 0 {
		return domerrors.Validation("%s", fieldMessage(fes[0]))
	}
	return domerrors.Validation("invalid input")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch {
	case field == strings.ToUpper(field):
		// Initialisms like ID.
		field = strings.ToLower(field)
	case field != "":
		field = strings.ToLower(field[:1]) + field[1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return field + " is too short"
	case "max":
		return field + " is too long"
	case "gt", "gte", "lte":
		return field + " is out of range"
	default:
		return field + " is invalid"
	}
}
