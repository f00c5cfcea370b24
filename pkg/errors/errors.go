// Package errors provides structured error types for eulerdraw.
//
// Diagram construction either succeeds with a complete diagram or fails with
// one of a small set of coded errors. Codes let the CLI and the HTTP API
// report failures consistently:
//   - INVALID_*: malformed descriptions, zone tokens or options
//   - INVARIANT_VIOLATION: internal consistency checks that valid input never trips
//   - GEOMETRY_INFEASIBLE: the description cannot be drawn by this algorithm
//   - NOT_FOUND, TIMEOUT, INTERNAL_ERROR: ambient failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid zone token %q", tok)
//	if errors.Is(err, errors.ErrCodeInfeasible) {
//	    // report that the description cannot be drawn
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Construction errors
	ErrCodeInvariant  Code = "INVARIANT_VIOLATION"
	ErrCodeInfeasible Code = "GEOMETRY_INFEASIBLE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeTimeout  Code = "TIMEOUT"

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

// Invariant is shorthand for New(ErrCodeInvariant, ...).
func Invariant(format string, args ...any) *Error {
	return New(ErrCodeInvariant, format, args...)
}

// Infeasible is shorthand for New(ErrCodeInfeasible, ...).
func Infeasible(format string, args ...any) *Error {
	return New(ErrCodeInfeasible, format, args...)
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
