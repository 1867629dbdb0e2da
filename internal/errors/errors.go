package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// RequestFailed is the message used when the backend could not be reached
// or its response could not be read.
const RequestFailed = "request failed"

// RequestError is the single failure kind produced by the backend gateway.
// Message is either the backend's own "message" field or a generic
// "request failed..." text; the HTTP status is deliberately not carried.
type RequestError struct {
	Message string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return e.Message
}

// NewRequestError creates a RequestError with the given message
func NewRequestError(message string) *RequestError {
	return &RequestError{Message: message}
}

// NewStatusError creates the generic error for a non-2xx response without a usable message
func NewStatusError(status int) *RequestError {
	return &RequestError{Message: fmt.Sprintf("%s with status %d", RequestFailed, status)}
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategorySystem represents system errors (5xx)
	CategorySystem ErrorCategory = "system"
	// CategoryUpstream represents failures reported by the backend API
	CategoryUpstream ErrorCategory = "upstream"
	// CategoryDatabase represents database errors
	CategoryDatabase ErrorCategory = "database"
	// CategoryValidation represents validation errors
	CategoryValidation ErrorCategory = "validation"
	// CategoryRateLimit represents rate limit errors
	CategoryRateLimit ErrorCategory = "rate_limit"
)

// CategorizedError represents a console-side error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// NewInvalidParameterError creates an invalid parameter error
func NewInvalidParameterError(param string, reason string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_PARAMETER",
		Message:    fmt.Sprintf("invalid parameter '%s': %s", param, reason),
		Details: map[string]interface{}{
			"parameter": param,
			"reason":    reason,
		},
	}
}

// NewMissingFieldError creates a validation error for a required form field left empty
func NewMissingFieldError(field string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "MISSING_FIELD",
		Message:    fmt.Sprintf("%s is required", field),
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError(retryAfter int) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryRateLimit,
		StatusCode: http.StatusTooManyRequests,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "too many sign-in attempts, try again shortly",
		Details: map[string]interface{}{
			"retryAfter": retryAfter,
		},
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryDatabase,
		StatusCode: http.StatusInternalServerError,
		Code:       "DATABASE_ERROR",
		Message:    fmt.Sprintf("database error during %s", operation),
		Cause:      cause,
		Details: map[string]interface{}{
			"operation": operation,
		},
	}
}

// Categorize categorizes an existing error
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	var catErr *CategorizedError
	if stderrors.As(err, &catErr) {
		return catErr
	}

	var reqErr *RequestError
	if stderrors.As(err, &reqErr) {
		return &CategorizedError{
			Category:   CategoryUpstream,
			StatusCode: http.StatusBadGateway,
			Code:       "UPSTREAM_ERROR",
			Message:    reqErr.Message,
			Cause:      reqErr,
		}
	}

	return NewInternalError("unexpected error", err)
}

// GetHTTPStatusCode returns the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if catErr := Categorize(err); catErr != nil {
		return catErr.StatusCode
	}
	return http.StatusInternalServerError
}

// UserMessage returns the text an operator should see for err.
// Backend messages are shown verbatim; internal failures are not.
func UserMessage(err error) string {
	catErr := Categorize(err)
	if catErr == nil {
		return ""
	}
	if catErr.Category == CategorySystem || catErr.Category == CategoryDatabase {
		return "internal error"
	}
	return catErr.Message
}

// IsUserError determines if an error is a user error (4xx)
func IsUserError(err error) bool {
	catErr := Categorize(err)
	if catErr == nil {
		return false
	}

	return catErr.StatusCode >= 400 && catErr.StatusCode < 500
}
