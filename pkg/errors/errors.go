// Package errors provides structured error types for the dashgen application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the render pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map one-to-one onto the failure categories of the pipeline:
//   - CONFIG_*: configuration loading and validation failures
//   - UNSUPPORTED_CHART_TYPE: chart type tag outside the supported set
//   - RENDER_FAILED: plotting or compositing backend errors
//   - ASSET_UNREADABLE: optional asset (logo) could not be loaded; non-fatal
//   - INTERNAL_ERROR: unexpected internal misuse (e.g. composer stage order)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfigInvalid, "missing required field: %s", "title")
//	if errors.Is(err, errors.ErrCodeConfigInvalid) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "render %s chart", typ)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeConfigNotFound Code = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  Code = "CONFIG_INVALID"

	// Chart dispatch errors
	ErrCodeUnsupportedChart Code = "UNSUPPORTED_CHART_TYPE"

	// Rendering and compositing errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Non-fatal asset errors (logged, pipeline continues)
	ErrCodeAssetUnreadable Code = "ASSET_UNREADABLE"

	// Output errors
	ErrCodeOutputFailed Code = "OUTPUT_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message with the cause appended but without
// the code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether err should abort the pipeline. Asset errors are the
// only non-fatal category; everything else halts the invocation.
func Fatal(err error) bool {
	return GetCode(err) != ErrCodeAssetUnreadable
}
