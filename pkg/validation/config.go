// Package validation validates configuration values and inbound API
// request payloads before any engine work begins.
package validation

import (
	"errors"
	"fmt"
	"time"
)

// ConfigValidator provides a fluent interface for validating
// configuration values. It collects all validation errors rather than
// failing on the first one.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a new config validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required field is empty", cv.name, field))
	}
	return cv
}

// MinInt validates that an int field is at least the minimum value.
func (cv *ConfigValidator) MinInt(field string, value, min int) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d is below minimum %d", cv.name, field, value, min))
	}
	return cv
}

// RangeInt validates that an int field is within the specified range.
func (cv *ConfigValidator) RangeInt(field string, value, min, max int) *ConfigValidator {
	if value < min || value > max {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d is outside range [%d, %d]", cv.name, field, value, min, max))
	}
	return cv
}

// MinFloat validates that a float field is at least the minimum value.
func (cv *ConfigValidator) MinFloat(field string, value, min float64) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g is below minimum %g", cv.name, field, value, min))
	}
	return cv
}

// OrderedInt validates that lo <= hi for a pair of bound fields.
func (cv *ConfigValidator) OrderedInt(field string, lo, hi int) *ConfigValidator {
	if lo > hi {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: lower bound %d exceeds upper bound %d", cv.name, field, lo, hi))
	}
	return cv
}

// RequiredDuration validates that a duration field is not zero.
func (cv *ConfigValidator) RequiredDuration(field string, value time.Duration) *ConfigValidator {
	if value == 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required duration is zero", cv.name, field))
	}
	return cv
}

// MinDuration validates that a duration is at least the minimum.
func (cv *ConfigValidator) MinDuration(field string, value, min time.Duration) *ConfigValidator {
	if value < min {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: duration %v is below minimum %v", cv.name, field, value, min))
	}
	return cv
}

// HasErrors returns true if any validation errors were collected.
func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Error returns all collected validation errors joined, or nil.
func (cv *ConfigValidator) Error() error {
	if len(cv.errors) == 0 {
		return nil
	}
	return errors.Join(cv.errors...)
}
