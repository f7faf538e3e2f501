package resource

import (
	"errors"
	"fmt"
	"net/http"
)

// MasheryErrorHeader carries the provider error code on service faults
const MasheryErrorHeader = "X-Mashery-Error-Code"

// Common errors
var (
	// ErrSignature indicates a request could not be signed
	ErrSignature = errors.New("request could not be signed")
	// ErrForbidden indicates the developer key lacks access to the resource
	ErrForbidden = errors.New("access to resource forbidden")
	// ErrNotFound indicates the resource or identifier was not found
	ErrNotFound = errors.New("resource not found")
)

// SignatureError reports missing signing credentials
type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature error: %s", e.Reason)
}

// Is matches ErrSignature
func (e *SignatureError) Is(target error) bool {
	return target == ErrSignature
}

// StatusError is returned for 403 and 404 responses
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Is matches ErrForbidden for 403 and ErrNotFound for 404
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ServiceError indicates a fault on the provider side, identified by the
// provider's error code header
type ServiceError struct {
	StatusCode int
	Code       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Code)
}

// APIError indicates the query was rejected, with the message taken from the
// response body
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// unknownQueryError is used when an error body carries no message
const unknownQueryError = "unknown query error"

// newAPIError extracts the message from a decoded error body
func newAPIError(status int, body map[string]any) *APIError {
	msg := unknownQueryError
	if v, ok := body["error"]; ok && v != nil {
		msg = fmt.Sprint(v)
	} else if v, ok := body["errors"].([]any); ok {
		msg = joinMessages(v)
	}
	return &APIError{StatusCode: status, Message: msg}
}

func joinMessages(values []any) string {
	var msg string
	for i, v := range values {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprint(v)
	}
	return msg
}
