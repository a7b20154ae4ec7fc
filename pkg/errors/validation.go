package errors

import (
	"slices"
	"strings"
)

// ValidateChoice checks that value is one of allowed. The returned error
// carries code and lists the allowed values.
func ValidateChoice(code Code, field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}

// ValidateFormats checks every entry of formats against allowed.
func ValidateFormats(formats []string, allowed ...string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one format is required")
	}
	for _, f := range formats {
		if err := ValidateChoice(ErrCodeInvalidFormat, "format", f, allowed...); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTime rejects negative or non-finite animation times.
func ValidateTime(t float64) error {
	if t != t || t < 0 || t > 1e9 {
		return New(ErrCodeInvalidTime, "time must be a finite, non-negative number of seconds, got %v", t)
	}
	return nil
}
