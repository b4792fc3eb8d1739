package httputil

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their json names,
// so error details match the request payload.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldMessage renders a validator failure as a readable sentence.
func FieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this field has no more than " + e.Param() + " characters."
	case "min":
		return "This field may not be blank."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", e.Value())
	default:
		return "Failed on the " + e.Tag() + " rule."
	}
}
