package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeLoad       = "LOAD_ERROR"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "LOAD_ERROR", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewLoadError creates a new LOAD_ERROR for a dataset that could not be
// retrieved or decoded. An empty dataset name means the selection itself was
// unusable.
func NewLoadError(dataset string, reason string, err error) *AppError {
	msg := reason
	if dataset != "" {
		msg = fmt.Sprintf("failed to load %s: %s", dataset, reason)
	}
	return &AppError{
		Code:    ErrCodeLoad,
		Message: msg,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// NewDatasetNotFoundError is a LOAD_ERROR for a dataset that does not exist.
func NewDatasetNotFoundError(dataset string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeLoad,
		Message: fmt.Sprintf("dataset not found: %s", dataset),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

// NewConflictError creates a new CONFLICT error for operations that are not
// allowed in the current state.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsLoadError(err error) bool       { return HasCode(err, ErrCodeLoad) }
func IsValidationError(err error) bool { return HasCode(err, ErrCodeValidation) }
func IsNotFoundError(err error) bool   { return HasCode(err, ErrCodeNotFound) }
func IsConflictError(err error) bool   { return HasCode(err, ErrCodeConflict) }
