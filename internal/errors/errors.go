package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeUnauthenticated indicates the backend rejected the bearer token (401).
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeBackend indicates a backend rejection (4xx/5xx other than 401).
	// Network failures are indistinguishable from backend rejections at the
	// call site and share this code.
	ErrCodeBackend ErrorCode = "backend"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// ErrUnauthenticated is the sentinel matched by the route layer to trigger
// the global clear-session-and-redirect path. It is the only error the UI
// handles centrally; everything else stays at the call site.
var ErrUnauthenticated = &AppError{Code: ErrCodeUnauthenticated, Message: "authentication required"}

// AppError is a structured application error with a code, message, and
// optional cause. It supports errors.Is and errors.As via Unwrap.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message. For backend rejections this
	// is the backend's message verbatim when present.
	Message string
	// Cause is the underlying error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error { return e.Cause }

// Is treats two AppErrors with the same code as equivalent, so
// errors.Is(err, ErrUnauthenticated) works across wrapping.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Backend creates an error carrying the backend's message for display.
func Backend(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeBackend, Message: message, Cause: cause}
}

// Backendf creates a Backend error with a formatted message.
func Backendf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeBackend, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// UserMessage extracts a display string for err: an AppError's message when
// available, else the generic fallback.
func UserMessage(err error, fallback string) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
