package errors

import (
	"fmt"
)

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// InvalidEmailError is returned when an email address fails the shape check.
type InvalidEmailError struct {
	Email string
}

// NewInvalidEmailError creates a new invalid email error
func NewInvalidEmailError(email string) *InvalidEmailError {
	return &InvalidEmailError{Email: email}
}

// Error implements the error interface
func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

// NetworkError represents a request that could not be completed at the transport level
type NetworkError struct {
	URL   string
	Cause error
}

// NewNetworkError creates a new network error
func NewNetworkError(url string, cause error) *NetworkError {
	return &NetworkError{
		URL:   url,
		Cause: cause,
	}
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network request to %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// HTTPStatusError represents a completed response whose status indicates failure
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// NewHTTPStatusError creates a new HTTP status error
func NewHTTPStatusError(url string, statusCode int, status string) *HTTPStatusError {
	return &HTTPStatusError{
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
	}
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("network response was not ok: %s returned %s", e.URL, e.Status)
	}
	return fmt.Sprintf("network response was not ok: %s returned %d", e.URL, e.StatusCode)
}

// DecodeError represents a response body that is not valid JSON
type DecodeError struct {
	URL   string
	Cause error
}

// NewDecodeError creates a new decode error
func NewDecodeError(url string, cause error) *DecodeError {
	return &DecodeError{
		URL:   url,
		Cause: cause,
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON from %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying decode error
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NegativeInputError is returned by factorial for inputs below zero
type NegativeInputError struct {
	Input int64
}

// NewNegativeInputError creates a new negative input error
func NewNegativeInputError(input int64) *NegativeInputError {
	return &NegativeInputError{Input: input}
}

// Error implements the error interface
func (e *NegativeInputError) Error() string {
	return fmt.Sprintf("negative numbers not allowed: %d", e.Input)
}

// UnexpectedShapeError is returned when decoded JSON does not have the expected shape
type UnexpectedShapeError struct {
	Expected string
	Actual   string
}

// NewUnexpectedShapeError creates a new unexpected shape error
func NewUnexpectedShapeError(expected, actual string) *UnexpectedShapeError {
	return &UnexpectedShapeError{
		Expected: expected,
		Actual:   actual,
	}
}

// Error implements the error interface
func (e *UnexpectedShapeError) Error() string {
	return fmt.Sprintf("unexpected JSON shape: expected %s, got %s", e.Expected, e.Actual)
}

// InternalError represents an internal error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}
