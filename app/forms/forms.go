// Package forms binds submitted form data to typed structs and validates
// them, collecting per-field messages for re-rendering.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the submitted field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Errors maps a form field name to its validation message.
type Errors map[string]string

// Has reports whether the named field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for the named field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

func collect(err error) Errors {
	if err == nil {
		return nil
	}
	out := Errors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := out[fe.Field()]; !seen {
				out[fe.Field()] = message(fe)
			}
		}
		return out
	}
	out["__all__"] = err.Error()
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "gt":
		return "Select a value."
	}
	return "Invalid value."
}

func trimmed(values interface{ Get(string) string }, key string) string {
	return strings.TrimSpace(values.Get(key))
}
