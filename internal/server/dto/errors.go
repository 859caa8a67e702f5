// Package dto defines API request/response types and error handling.
//
// This package contains all types used for HTTP API communication:
//   - Request types with path/json struct tags for parameter binding
//   - The response envelope shared by every route
//   - Structured error types with HTTP status codes and error codes
//
// The dto package is the API contract layer and does not import the catalog
// package. Conversion between the two is handled by the handlers package.
//
// Error handling follows a structured pattern:
//   - ErrorCode provides machine-readable error classification for logs
//   - APIError wraps errors with HTTP status codes
//   - Constructor functions (NotFound, BadRequest, etc.) create common errors
package dto

import (
	"fmt"
	"net/http"
)

// ErrorCode defines specific error types for the API.
type ErrorCode string

const (
	// ErrorCodeValidationFailed is returned when input data fails validation.
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrorCodeInvalidBody is returned when the request body cannot be decoded.
	ErrorCodeInvalidBody ErrorCode = "INVALID_BODY"
	// ErrorCodePayloadTooLarge is returned when the request body exceeds the limit.
	ErrorCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// ErrorCodeNotFound is returned when a resource is not found.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrorCodeRouteNotFound is returned when no route matches the request.
	ErrorCodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"
	// ErrorCodeInternal is returned when an unexpected server error occurs.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrorWithStatus is an error that includes an HTTP status code and error code.
type ErrorWithStatus interface {
	Error() string
	StatusCode() int
	Code() ErrorCode
	// Message is the client facing text placed in the fail envelope.
	Message() string
}

// APIError is a concrete error type with status code.
type APIError struct {
	statusCode int
	code       ErrorCode
	message    string
	wrappedErr error
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, code ErrorCode, message string) *APIError {
	return &APIError{
		statusCode: statusCode,
		code:       code,
		message:    message,
	}
}

// Wrap wraps an underlying error.
func (e *APIError) Wrap(err error) *APIError {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// Message returns the message without the wrapped error.
func (e *APIError) Message() string {
	return e.message
}

// StatusCode returns the HTTP status code.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Code returns the error code.
func (e *APIError) Code() ErrorCode {
	return e.code
}

// Unwrap returns the wrapped error if any.
func (e *APIError) Unwrap() error {
	return e.wrappedErr
}

// Predefined error constructors for common cases

// NotFound creates a 404 Not Found error.
func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, message)
}

// BookNotFound creates the 404 error for an unknown book id.
func BookNotFound(id string) *APIError {
	return NotFound("Book with id " + id + " not found")
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeValidationFailed, message)
}

// MissingBookFields creates the 400 error for a create or full update lacking
// a required field.
func MissingBookFields() *APIError {
	return BadRequest("Title, author, and year are required")
}

// IDImmutable creates the 400 error for a partial update trying to change a
// book's id.
func IDImmutable() *APIError {
	return BadRequest("Field id cannot be changed")
}

// InvalidBody creates a 400 error for a body that could not be decoded.
func InvalidBody() *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidBody, "Invalid request body")
}

// PayloadTooLarge creates a 413 error for a body over the size limit.
func PayloadTooLarge(limit int64) *APIError {
	return NewAPIError(http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge, "Request body too large").
		Wrap(fmt.Errorf("limit is %d bytes", limit))
}

// RouteNotFound creates a 404 error for an unknown method and path.
func RouteNotFound(method, path string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeRouteNotFound, "Route "+method+" "+path+" not found")
}

// Internal returns a 500 Internal Server Error.
func Internal() *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, "Internal server error")
}

// InternalWithError creates a 500 error wrapping an underlying error.
func InternalWithError(err error) *APIError {
	return Internal().Wrap(err)
}
