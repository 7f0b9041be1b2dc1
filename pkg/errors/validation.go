package errors

import (
	"strings"
	"unicode"
)

const maxNameLength = 128

// ValidateName validates a workspace or monitor name.
// Names end up in file paths (snapshot store) and URL paths (serve), so the
// rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateNonNegative rejects negative numeric settings.
func ValidateNonNegative(field string, v float64) error {
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be >= 0, got %v", field, v)
	}
	return nil
}

// ValidateRatio rejects split ratios outside the open interval (0, 1).
func ValidateRatio(field string, v float64) error {
	if v <= 0 || v >= 1 {
		return New(ErrCodeInvalidConfig, "%s must be in (0, 1), got %v", field, v)
	}
	return nil
}
