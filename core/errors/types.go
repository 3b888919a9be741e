// ABOUTME: Custom error types for the core business logic
// ABOUTME: Classifies origin failures so every degradation path can be logged precisely

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrEmptyResult is returned when the origin answers successfully with no items
var ErrEmptyResult = errors.New("origin returned no items")

// ErrMissingIdentifier is returned when a record carries no usable identifier
var ErrMissingIdentifier = errors.New("record has no identifier")

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// MalformedResponseError represents a response body that could not be understood
type MalformedResponseError struct {
	API   string
	Cause error
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response from %s: %v", e.API, e.Cause)
	}
	return fmt.Sprintf("malformed response from %s", e.API)
}

// Unwrap returns the underlying decode error
func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsMalformed checks if an error is a MalformedResponseError
func IsMalformed(err error) bool {
	var malformedErr *MalformedResponseError
	return errors.As(err, &malformedErr)
}

// IsTimeout checks if an error was caused by a deadline
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Classify names the failure class of an origin error for logging
func Classify(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsTimeout(err):
		return "timeout"
	case errors.Is(err, ErrEmptyResult):
		return "empty"
	case IsMalformed(err):
		return "malformed"
	case IsExternalAPI(err):
		return "status"
	default:
		return "transport"
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
