// Package apierr is the closed error taxonomy shared by the API client and
// the view-models that consume it.
package apierr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks client-side validation failures. They never reach the network.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned for a 401 on an authenticated call, after the token was cleared.
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	MessageUnauthorized   = "session expired, please log in again"
	MessageRequestFailed  = "request failed"
	MessageDecodingFailed = "failed to parse server response"
	MessageNetworkFailed  = "network error"
)

// FieldError is a validation failure bound to one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func Invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// NetworkError wraps transport failures: DNS, connection refused, timeouts.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ServerError is any non-401 response with status >= 400.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// DecodingError means a successful response did not match the expected shape.
type DecodingError struct {
	Target string
	Cause  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Target, e.Cause)
}

func (e *DecodingError) Unwrap() error {
	return e.Cause
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Message is the user-facing text for err, suitable for an inline banner.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var field *FieldError
	var server *ServerError
	var network *NetworkError
	var decoding *DecodingError

	switch {
	case errors.As(err, &field):
		return field.Message
	case errors.Is(err, ErrUnauthorized):
		return MessageUnauthorized
	case errors.As(err, &server):
		if server.Message == "" {
			return MessageRequestFailed
		}
		return server.Message
	case errors.As(err, &decoding):
		return MessageDecodingFailed
	case errors.As(err, &network):
		if network.Cause != nil {
			return network.Cause.Error()
		}
		return MessageNetworkFailed
	default:
		return err.Error()
	}
}
