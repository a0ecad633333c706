// Package errors provides structured error types for spiramirabilis.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - Per-figure failure reporting in batch runs
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The geometry engine reports three failure kinds:
//   - PRECONDITION_VIOLATION: non-positive sampler inputs or a non-shrinking spiral
//   - DEGENERATE_VISIBILITY: the trim threshold hides the whole spiral
//   - DEGENERATE_RECTANGLE: a zero-length anchor segment
//
// The remaining codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (formats, config files, recipes)
//   - NOT_FOUND: Unknown constants or examples
//   - INTERNAL_*: Unexpected internal errors
//
// These are deterministic failures: retrying the same figure always fails the
// same way, so callers report them and move on to the next figure.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePrecondition, "turns must be positive, got %v", turns)
//	if errors.Is(err, errors.ErrCodePrecondition) {
//	    // Handle bad parameters
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry errors
	ErrCodePrecondition         Code = "PRECONDITION_VIOLATION"
	ErrCodeDegenerateVisibility Code = "DEGENERATE_VISIBILITY"
	ErrCodeDegenerateRectangle  Code = "DEGENERATE_RECTANGLE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidRecipe Code = "INVALID_RECIPE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsGeometry reports whether err is one of the geometry engine failures.
// Those are fatal for a single figure but never for a batch.
func IsGeometry(err error) bool {
	switch GetCode(err) {
	case ErrCodePrecondition, ErrCodeDegenerateVisibility, ErrCodeDegenerateRectangle:
		return true
	}
	return false
}
