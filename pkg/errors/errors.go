// Package errors provides structured error types for isomer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the core engine
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the failure taxonomy of the symmetry engine:
//   - MALFORMED_PERMUTATION, INCONSISTENT_GENERATORS, ARITY_MISMATCH: malformed input
//   - DEGREE_OVERFLOW: a permutation whose order exceeds the sanity bound
//   - UNKNOWN_LABEL: a label outside a permutation's domain
//   - GEOMETRY_INCONSISTENT: distance data that violates the metric axioms or
//     is not preserved by the group
//
// None of these are transient. They are surfaced with the offending labels so
// the input data can be corrected, and are never retried.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownLabel, "label %q not in domain", label)
//	if errors.Is(err, errors.ErrCodeUnknownLabel) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidSolid, origErr, "load %s", path)
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
	ErrCodeInvalidInput           Code = "INVALID_INPUT"
	ErrCodeMalformedPermutation   Code = "MALFORMED_PERMUTATION"
	ErrCodeInconsistentGenerators Code = "INCONSISTENT_GENERATORS"
	ErrCodeArityMismatch          Code = "ARITY_MISMATCH"
	ErrCodeInvalidSolid           Code = "INVALID_SOLID"

	// Defect signals
	ErrCodeDegreeOverflow Code = "DEGREE_OVERFLOW"
	ErrCodeUnknownLabel   Code = "UNKNOWN_LABEL"

	// Geometry errors
	ErrCodeGeometryInconsistent Code = "GEOMETRY_INCONSISTENT"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeOutputExists Code = "OUTPUT_EXISTS"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
