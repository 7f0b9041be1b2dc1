package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "main", false},
		{"digit", "1", false},
		{"with dash", "web-dev", false},
		{"unicode", "écran", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("gap", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) = %v, want nil", err)
	}
	if err := ValidateNonNegative("gap", -1); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("ValidateNonNegative(-1) = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateRatio(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0.5, false},
		{0.618, false},
		{0, true},
		{1, true},
		{-0.2, true},
		{1.5, true},
	}

	for _, tt := range tests {
		err := ValidateRatio("ratio", tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRatio(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
	}
}
