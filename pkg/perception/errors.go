package perception

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrUnavailable is returned when a detection category is not available.
	ErrUnavailable = errors.New("perception: category unavailable")

	// ErrNoFrame is returned when a nil or empty frame is passed.
	ErrNoFrame = errors.New("perception: no frame data")

	// ErrStreamClosed is returned when reading from a closed detection stream.
	ErrStreamClosed = errors.New("perception: stream closed")
)

// APIError represents an error response from the perception service.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the service.
	Message string

	// Category identifies which detection category the request was for.
	Category string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("perception [%s]: API error %d: %s", e.Category, e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}

// CategoryError wraps an error with its detection category.
type CategoryError struct {
	Category string
	Err      error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	return fmt.Sprintf("perception [%s]: %v", e.Category, e.Err)
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// WrapCategory wraps an error with category context.
func WrapCategory(category string, err error) error {
	if err == nil {
		return nil
	}
	return &CategoryError{Category: category, Err: err}
}
