package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateSymbolName(t *testing.T) {
	tests := []struct {
		name        string
		symbol      string
		expectError bool
	}{
		{"Simple", "N", false},
		{"Underscore prefix", "_tile", false},
		{"Alphanumeric", "block_size2", false},
		{"Empty", "", true},
		{"Leading digit", "2N", true},
		{"Operator", "N*M", true},
		{"Too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbolName(tt.symbol)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateSymbolName(%q) error = %v, expectError %v", tt.symbol, err, tt.expectError)
			}
		})
	}
}

func TestValidateSymbolValues(t *testing.T) {
	if err := ValidateSymbolValues(map[string]float64{"N": 4, "M": 2}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateSymbolValues(map[string]float64{"N": math.NaN()}); err == nil {
		t.Error("NaN value should be rejected")
	}
	if err := ValidateSymbolValues(map[string]float64{"N": math.Inf(1)}); err == nil {
		t.Error("Infinite value should be rejected")
	}
	if err := ValidateSymbolValues(map[string]float64{"bad name": 1}); err == nil {
		t.Error("Invalid name should be rejected")
	}
}

func TestValidateSymbolMapping(t *testing.T) {
	if err := ValidateSymbolMapping(map[string]string{"K": "N", "L": "M*2"}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	err := ValidateSymbolMapping(map[string]string{"K": ""})
	if err == nil || !strings.Contains(err.Error(), "empty expression") {
		t.Errorf("Expected empty expression error, got %v", err)
	}

	if err := ValidateSymbolMapping(map[string]string{"1K": "N"}); err == nil {
		t.Error("Invalid inner symbol should be rejected")
	}
}

type tagged struct {
	Method  string  `validate:"required,oneof=median mean"`
	Buckets int     `validate:"gte=0,lte=64"`
	Base    float64 `validate:"gt=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		value   tagged
		wantErr string
	}{
		{"Valid", tagged{Method: "median", Buckets: 8, Base: 2}, ""},
		{"Missing method", tagged{Buckets: 8, Base: 2}, "field is required"},
		{"Unknown method", tagged{Method: "mode", Base: 2}, "must be one of"},
		{"Too many buckets", tagged{Method: "mean", Buckets: 100, Base: 2}, "must not exceed 64"},
		{"Base too small", tagged{Method: "mean", Base: 1}, "must be greater than 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if err := ValidateStruct(nil); err == nil {
		t.Error("nil should be rejected")
	}
}
