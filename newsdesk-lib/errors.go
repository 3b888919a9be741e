// ABOUTME: Error types and handling for the newsdesk library
// ABOUTME: Provides structured errors with context for library operations

package newsdesk

import (
	"errors"
	"fmt"

	coreerrors "newsdesk-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeNetwork indicates a network error
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrClientClosed is returned when operations are attempted on a closed client
var ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

// fromCore converts a content core error into a library error
func fromCore(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case coreerrors.IsValidation(err):
		return NewError(ErrorTypeValidation, "invalid request").WithCause(err)
	case coreerrors.IsNotFound(err):
		return NewError(ErrorTypeNotFound, "article not found").WithCause(err)
	case coreerrors.IsTimeout(err), coreerrors.IsExternalAPI(err):
		return NewError(ErrorTypeNetwork, "origin unavailable").WithCause(err)
	default:
		return NewError(ErrorTypeInternal, "operation failed").WithCause(err)
	}
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return isType(err, ErrorTypeNetwork)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}
