// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"strings"
	"time"

	"railspace_backend/platform/geo"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the shared custom tags registered:
//
//	geolocation  "lat,lng" string accepted by geo.Parse
//	isodate      RFC 3339 timestamp or YYYY-MM-DD date
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("geolocation", validateGeolocation)
	_ = v.RegisterValidation("isodate", validateISODate)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// Messages flattens validation errors into "field: rule" strings for
// response details. Other errors come back as a single message.
func Messages(err error) []string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		msg := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out = append(out, msg)
	}
	return out
}

func validateGeolocation(fl validator.FieldLevel) bool {
	_, ok := geo.Parse(fl.Field().String())
	return ok
}

func validateISODate(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return true
	}
	_, err := time.Parse(time.DateOnly, raw)
	return err == nil
}
