// Package errors provides structured error types for the strategos engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the store, the compositor, the CLI and the API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Unknown diagram id
//   - CONFLICT: A diagram with the requested id already exists
//   - INTEGRITY: A diagram references entities it does not contain
//   - INTERNAL_*: Unexpected internal errors
//
// NOT_FOUND means a diagram is missing; INTEGRITY means a diagram exists but
// an edge in it names a node it does not hold.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "diagram %s not found", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Decline the operation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "render %s", id)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"

	// Resource errors
	ErrCodeNotFound  Code = "NOT_FOUND"
	ErrCodeConflict  Code = "CONFLICT"
	ErrCodeIntegrity Code = "INTEGRITY"

	// Registry errors
	ErrCodeFrozen Code = "FROZEN"

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

// IntegrityError describes an edge whose endpoint does not name a node of
// the diagram being rendered. It is returned wrapped in an *Error with
// ErrCodeIntegrity so callers can use either Is or errors.As.
type IntegrityError struct {
	Diagram  string // Diagram id
	Edge     string // Edge name
	Endpoint string // "source" or "target"
	Node     string // The node name that could not be resolved
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("edge %q: %s node %q not in diagram %s", e.Edge, e.Endpoint, e.Node, e.Diagram)
}

// Integrity wraps an IntegrityError into a coded *Error.
func Integrity(ie *IntegrityError) *Error {
	return &Error{
		Code:    ErrCodeIntegrity,
		Message: "diagram references a missing node",
		Cause:   ie,
	}
}

// NotFound returns an ErrCodeNotFound error for the given diagram id.
func NotFound(id string) *Error {
	return New(ErrCodeNotFound, "diagram %s not found", id)
}
