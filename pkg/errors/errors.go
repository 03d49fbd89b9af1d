package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// ErrorCode represents a unique error code
type ErrorCode string

const (
	// Generic errors
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Request errors
	ErrCodeMalformedBody ErrorCode = "MALFORMED_BODY"
	ErrCodeUnknownField  ErrorCode = "UNKNOWN_FIELD"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingRequired  ErrorCode = "MISSING_REQUIRED"
)

// Error represents a structured error with code, message, and optional details
type Error struct {
	Code    ErrorCode              // Unique error code
	Message string                 // Human-readable error message
	Details map[string]interface{} // Optional additional details
	Err     error                  // Wrapped underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// HTTPStatusCode returns the appropriate HTTP status code for this error
func (e *Error) HTTPStatusCode() int {
	return MapErrorCodeToHTTPStatus(e.Code)
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with code and message
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
// Returns ErrCodeInternal if the error is not a structured Error
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// GetDetails extracts the details from an error
func GetDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// MapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func MapErrorCodeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeMalformedBody, ErrCodeUnknownField,
		ErrCodeMissingRequired:
		return http.StatusBadRequest

	// a well-formed form that fails its rules
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity

	case ErrCodeNotFound:
		return http.StatusNotFound

	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests

	case ErrCodeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// InvalidInput creates an "invalid input" error
func InvalidInput(field, reason string) *Error {
	return New(ErrCodeInvalidInput, fmt.Sprintf("invalid %s: %s", field, reason))
}

// MissingRequired creates a "missing required field" error
func MissingRequired(field string) *Error {
	return Newf(ErrCodeMissingRequired, "missing required field: %s", field).
		WithDetail("field", field)
}

// NotFound creates a "not found" error
func NotFound(resource string) *Error {
	return Newf(ErrCodeNotFound, "%s not found", resource)
}

// MalformedBody wraps a decoding failure
func MalformedBody(err error) *Error {
	return Wrap(err, ErrCodeMalformedBody, "malformed request body")
}

// ValidationFailed creates a "validation failed" error
func ValidationFailed(details map[string]interface{}) *Error {
	return New(ErrCodeValidationFailed, "validation failed").WithDetails(details)
}

// RateLimitExceeded creates a "rate limit exceeded" error
func RateLimitExceeded(limitType string) *Error {
	return New(ErrCodeRateLimitExceeded, "Too many requests. Please try again later.").
		WithDetail("type", limitType)
}

// Body is the JSON shape of an error response
type Body struct {
	Error   string                 `json:"error"`
	Code    ErrorCode              `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Render writes err as a JSON error response. Errors that are not structured
// are logged and reported as internal errors without leaking their text.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if !errors.As(err, &e) {
		slog.Error("Unhandled error", "path", r.URL.Path, "error", err)
		e = New(ErrCodeInternal, http.StatusText(http.StatusInternalServerError))
	}

	render.Status(r, e.HTTPStatusCode())
	render.JSON(w, r, Body{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	})
}
