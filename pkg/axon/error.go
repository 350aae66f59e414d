// Package axon is the runtime support for generated bases: the HTTP error
// type their stubs fail with and helpers to inspect it.
package axon

import (
	"errors"
	"fmt"
	"net/http"
)

// HttpError represents an HTTP error with a specific status code and message
type HttpError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHttpError creates a new HttpError with the given status code and message
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewHttpErrorWithDetails creates a new HttpError with additional details
func NewHttpErrorWithDetails(statusCode int, message string, details any) *HttpError {
	return &HttpError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// NotImplementedDetails identifies the stub that produced a 501 error
type NotImplementedDetails struct {
	Interface string `json:"interface"`
	Method    string `json:"method"`
}

// ErrNotImplemented creates the 501 Not Implemented error returned (or
// raised) by a generated stub of method on iface
func ErrNotImplemented(iface, method string) *HttpError {
	return NewHttpErrorWithDetails(http.StatusNotImplemented,
		fmt.Sprintf("%s.%s is not implemented", iface, method),
		NotImplementedDetails{Interface: iface, Method: method})
}

// IsNotImplemented reports whether err carries a 501 Not Implemented error
func IsNotImplemented(err error) bool {
	httpErr, ok := AsHttpError(err)
	return ok && httpErr.StatusCode == http.StatusNotImplemented
}

// AsHttpError returns the first *HttpError in err's chain
func AsHttpError(err error) (*HttpError, bool) {
	var httpErr *HttpError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr, true
	}
	return nil, false
}

// StatusOf returns the status carried by err, 500 for any other error and
// 200 for nil
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if httpErr, ok := AsHttpError(err); ok {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}

// RecoverHttpError extracts the *HttpError from a recovered panic value, as
// raised by stubs of methods without an error result
func RecoverHttpError(recovered any) (*HttpError, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	return AsHttpError(err)
}

// Common HTTP error constructors for convenience

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

// ErrUnauthorized creates a 401 Unauthorized error
func ErrUnauthorized(message string) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 Forbidden error
func ErrForbidden(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message)
}

// ErrConflict creates a 409 Conflict error
func ErrConflict(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message)
}

// ErrInternalServerError creates a 500 Internal Server Error
func ErrInternalServerError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message)
}
