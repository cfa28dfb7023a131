package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Internal errors
	ErrInternal = errors.New("internal error")
)

// Person errors. Each wraps one of the common errors above so the HTTP
// layer can map by category.
var (
	ErrPersonNotFound = fmt.Errorf("person %w", ErrResourceNotFound)
	ErrPersonExists   = fmt.Errorf("%w: a person with this name and date of birth already exists", ErrConflict)
	ErrEmailExists    = fmt.Errorf("%w: email already in use", ErrConflict)
)

// Role errors
var (
	ErrRoleNotFound        = fmt.Errorf("role instance %w", ErrResourceNotFound)
	ErrIdentifierExists    = fmt.Errorf("%w: identifier already exists", ErrConflict)
	ErrIdentifierExhausted = fmt.Errorf("%w: identifier generation retries exhausted", ErrConflict)
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrUnknownRoleType     = fmt.Errorf("%w: unknown role type", ErrBadRequest)
	ErrUnknownStatus       = fmt.Errorf("%w: unknown status value", ErrBadRequest)
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// DetailsOf extracts the details map from err if it carries one.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
