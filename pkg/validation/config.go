package validation

import (
	"errors"
	"fmt"
	"math"
)

// ConfigValidator chains checks over settings and reports every failure
// at once, prefixed with "<section>.<field>".
type ConfigValidator struct {
	section string
	errs    []error
}

// NewConfigValidator starts a chain for the named config section
func NewConfigValidator(section string) *ConfigValidator {
	return &ConfigValidator{section: section}
}

func (cv *ConfigValidator) fail(field, format string, args ...any) {
	cv.errs = append(cv.errs, fmt.Errorf("%s.%s: "+format, append([]any{cv.section, field}, args...)...))
}

// Finite rejects NaN and infinities
func (cv *ConfigValidator) Finite(field string, value float64) *ConfigValidator {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		cv.fail(field, "value %v is not finite", value)
	}
	return cv
}

// PositiveFloat requires value > 0. NaN fails.
func (cv *ConfigValidator) PositiveFloat(field string, value float64) *ConfigValidator {
	if !(value > 0) {
		cv.fail(field, "value %v must be positive", value)
	}
	return cv
}

// GreaterThanFloat requires value > min
func (cv *ConfigValidator) GreaterThanFloat(field string, value, min float64) *ConfigValidator {
	if !(value > min) {
		cv.fail(field, "value %v must be greater than %v", value, min)
	}
	return cv
}

// RangeInt requires min <= value <= max
func (cv *ConfigValidator) RangeInt(field string, value, min, max int) *ConfigValidator {
	if value < min || value > max {
		cv.fail(field, "value %d is outside range [%d, %d]", value, min, max)
	}
	return cv
}

// Custom wraps the error returned by fn, if any
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errs = append(cv.errs, fmt.Errorf("%s.%s: %w", cv.section, field, err))
	}
	return cv
}

// When runs checks only if cond holds
func (cv *ConfigValidator) When(cond bool, checks func(*ConfigValidator)) *ConfigValidator {
	if cond {
		checks(cv)
	}
	return cv
}

// Errors returns the failures collected so far
func (cv *ConfigValidator) Errors() []error {
	return cv.errs
}

// Validate returns nil, the single error, or all errors joined.
func (cv *ConfigValidator) Validate() error {
	switch len(cv.errs) {
	case 0:
		return nil
	case 1:
		return cv.errs[0]
	default:
		return fmt.Errorf("%s validation failed with %d errors: %w", cv.section, len(cv.errs), errors.Join(cv.errs...))
	}
}
