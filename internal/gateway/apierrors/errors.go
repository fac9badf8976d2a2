// Package apierrors defines the structured error responses the gateway
// returns. The JSON shape is {"error": ..., "details": ...}.
package apierrors

import "net/http"

// ErrorKind classifies an API error for status-code mapping.
type ErrorKind string

const (
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindInternal        ErrorKind = "internal"
)

// APIError is a structured API error response.
type APIError struct {
	Kind      ErrorKind `json:"-"`
	Message   string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status code for the error kind.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewPayloadTooLargeError creates a payload too large error
func NewPayloadTooLargeError(message string) *APIError {
	return &APIError{Kind: KindPayloadTooLarge, Message: message}
}

// NewInternalError creates an internal server error with provider details
func NewInternalError(message, details string) *APIError {
	return &APIError{Kind: KindInternal, Message: message, Details: details}
}
