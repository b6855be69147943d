package apperrors

import (
	"errors"
	"fmt"
)

// Core errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrDuplicateKey     = errors.New("resource already exists")

	// Classification errors
	ErrInvalidClassification = errors.New("invalid classification")

	// Content errors
	ErrContentMissing = errors.New("content missing")

	// Persistence errors
	ErrStorageFailure = errors.New("storage failure")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Authentication and authorization errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Course errors
var (
	ErrCourseNotFound     = NewCustomError(ErrResourceNotFound, "course not found").WithCode("COURSE_NOT_FOUND")
	ErrCourseCodeExists   = NewCustomError(ErrDuplicateKey, "course code already exists").WithCode("COURSE_CODE_EXISTS")
	ErrCourseFileNotFound = NewCustomError(ErrResourceNotFound, "file not found").WithCode("FILE_NOT_FOUND")
	ErrFileContentMissing = NewCustomError(ErrContentMissing, "file not found on server").WithCode("CONTENT_MISSING")
)

// User errors
var (
	ErrUserNotFound       = NewCustomError(ErrResourceNotFound, "user not found").WithCode("USER_NOT_FOUND")
	ErrEmailAlreadyExists = NewCustomError(ErrDuplicateKey, "email already exists").WithCode("EMAIL_EXISTS")
)

// NewValidationError creates a validation error carrying a human readable message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewClassificationError creates an invalid classification error with a message
func NewClassificationError(message string) error {
	return &CustomError{
		Err:     ErrInvalidClassification,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewStorageError wraps an error coming from the persistence layer.
// Both ErrStorageFailure and the cause stay reachable through errors.Is.
func NewStorageError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, cause)
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
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
