// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is applied to numbers written without a country prefix.
const DefaultRegion = "IN"

// ErrInvalidNumber is returned when input is not a dialable number.
var ErrInvalidNumber = errors.New("invalid phone number")

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	normalized, err := ParseE164(input)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return normalized
}

// ParseE164 parses input in the default region and returns it in E.164 form.
func ParseE164(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidNumber
	}

	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil {
		return "", ErrInvalidNumber
	}

	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidNumber
	}

	return phonenumbers.Format(number, phonenumbers.E164), nil
}
