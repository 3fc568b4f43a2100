package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Availability errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrConnectionFailed   = errors.New("connection failed")
	ErrTimeout            = errors.New("operation timeout")

	// Auth errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoCredential     = errors.New("no credential stored")

	// Data errors
	ErrNotFound = errors.New("not found")

	// State errors
	ErrNotInitialized = errors.New("not initialized")
	ErrCartEmpty      = errors.New("cart is empty")
)

// HTTPError is returned when the backend is reachable but rejects a call
// with a non-2xx status. The server-provided body is surfaced verbatim so
// the view layer can display it.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error returns the server body when present, or a generic status message.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("HTTP error: status %d", e.StatusCode)
}

// NewHTTPError creates an HTTPError from a response status and body text.
func NewHTTPError(statusCode int, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       string(body),
	}
}

// IsHTTPError reports whether err carries a backend rejection, and returns it.
func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsTransportError classifies network-level failures (DNS, connection refused,
// timeout, abort) as opposed to backend rejections. Transport failures trigger
// a re-probe of backend availability; HTTP errors never do.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}

	// A backend rejection is by definition not a transport failure
	if _, ok := IsHTTPError(err); ok {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) || errors.Is(err, ErrTimeout) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	return false
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	if httpErr, ok := IsHTTPError(err); ok {
		return httpErr.StatusCode == 404
	}
	return false
}

// IsUnauthorized checks if an error represents a 401-class rejection
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	if httpErr, ok := IsHTTPError(err); ok {
		return httpErr.StatusCode == 401
	}
	return false
}
