// Package validation checks overlay configuration and symbol definitions
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxSymbolLength  = 64
	MaxMappedSymbols = 256

	symbolPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using its `validate` tags
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value to validate cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateSymbolName checks that name can be used as a symbol in a volume
// expression
func ValidateSymbolName(name string) error {
	if name == "" {
		return errors.New("symbol name cannot be empty")
	}
	if len(name) > MaxSymbolLength {
		return fmt.Errorf("symbol '%s' exceeds maximum length of %d characters", name, MaxSymbolLength)
	}
	if !symbolPattern.MatchString(name) {
		return fmt.Errorf("symbol '%s' is invalid (must start with letter or underscore, followed by alphanumeric or underscore)", name)
	}
	return nil
}

// ValidateSymbolValues checks names and requires every value to be finite
func ValidateSymbolValues(values map[string]float64) error {
	for name, v := range values {
		if err := ValidateSymbolName(name); err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("symbol '%s' has non-finite value %v", name, v)
		}
	}
	return nil
}

// ValidateSymbolMapping checks the inner names and expressions of a nested
// graph's symbol mapping
func ValidateSymbolMapping(mapping map[string]string) error {
	if len(mapping) > MaxMappedSymbols {
		return fmt.Errorf("symbol mapping: maximum %d entries allowed, got %d", MaxMappedSymbols, len(mapping))
	}
	for name, expr := range mapping {
		if err := ValidateSymbolName(name); err != nil {
			return fmt.Errorf("symbol mapping: %w", err)
		}
		if expr == "" {
			return fmt.Errorf("symbol mapping: symbol '%s' maps to an empty expression", name)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "hostname_port":
			return fmt.Errorf("%s: must be a host:port address", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
