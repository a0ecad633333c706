package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFigureName validates a figure name used to derive output file names.
// Names become file basenames, so the rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files (leading dot)
func ValidateFigureName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "figure name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "figure name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "figure name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidInput, "figure name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "figure name cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "figure name cannot be a hidden file")
	}

	return nil
}

// ValidateAngle checks that a turn angle is a whole number of degrees in (0, 360].
func ValidateAngle(angle int) error {
	if angle <= 0 || angle > 360 {
		return New(ErrCodePrecondition, "angle must be in (0, 360] degrees, got %d", angle)
	}
	return nil
}

// ValidateGrowth checks that a growth constant produces a spiral that shrinks
// toward its centre.
func ValidateGrowth(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return New(ErrCodePrecondition, "growth constant must be finite, got %v", k)
	}
	if k <= 1 {
		return New(ErrCodePrecondition, "growth constant must be greater than 1, got %v", k)
	}
	return nil
}

// MaxPageSide bounds either page side, in millimetres. It is twice the long
// side of A0.
const MaxPageSide = 2378.0

// ValidatePage checks page dimensions in millimetres.
// The margins on both sides must leave a positive drawing area.
func ValidatePage(width, height, margin float64) error {
	if !(width > 0 && height > 0) {
		return New(ErrCodePrecondition, "page size must be positive, got %vx%v", width, height)
	}
	if width > MaxPageSide || height > MaxPageSide {
		return New(ErrCodePrecondition, "page %vx%v exceeds %v mm", width, height, MaxPageSide)
	}
	if math.IsNaN(margin) {
		return New(ErrCodePrecondition, "margin must be a number")
	}
	if margin < 0 {
		return New(ErrCodePrecondition, "margin cannot be negative, got %v", margin)
	}
	if 2*margin >= width || 2*margin >= height {
		return New(ErrCodePrecondition, "margin %v leaves no drawing area on a %vx%v page", margin, width, height)
	}
	return nil
}
