// Package errors provides coded error types for bigip-sd.
//
// Fatal failures (unreadable input, invalid configuration, unwritable output) and
// recorded per-entry failures (unparsable lines, failed lookups) share one error
// type so that callers can branch on the code with errors.Is.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a configuration file that cannot be read or decoded.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeInput indicates an input list file that cannot be opened or read.
	ErrCodeInput ErrorCode = "INPUT_ERROR"

	// ErrCodeParse indicates a single input line that could not be parsed.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeResolve indicates a host that produced no addresses.
	ErrCodeResolve ErrorCode = "RESOLVE_ERROR"

	// ErrCodeExport indicates a failure to encode or write exported targets.
	ErrCodeExport ErrorCode = "EXPORT_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or an empty code.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewInputError creates a new input file error.
func NewInputError(message string, cause error) *Error {
	return Wrap(ErrCodeInput, message, cause)
}

// NewParseError creates a new line parse error.
func NewParseError(message string, cause error) *Error {
	return Wrap(ErrCodeParse, message, cause)
}

// NewResolveError creates a new host resolution error.
func NewResolveError(message string, cause error) *Error {
	return Wrap(ErrCodeResolve, message, cause)
}

// NewExportError creates a new export error.
func NewExportError(message string, cause error) *Error {
	return Wrap(ErrCodeExport, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
