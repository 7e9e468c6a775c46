package renderapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation so that callers can pick an
// appropriate user-facing message without string matching.
type ErrorKind string

const (
	// KindValidation indicates the input was rejected before any upstream call.
	KindValidation ErrorKind = "validation"
	// KindNotFound indicates the upstream listing has no matching template.
	KindNotFound ErrorKind = "notFound"
	// KindUnauthorized indicates the upstream rejected the API key (401/403).
	KindUnauthorized ErrorKind = "unauthorized"
	// KindTimeout indicates every attempt ran out of its per-attempt budget.
	KindTimeout ErrorKind = "timeout"
	// KindTransport covers network failures and non-2xx responses that are
	// neither auth nor not-found outcomes.
	KindTransport ErrorKind = "transport"
)

// Error is the terminal outcome of a failed renderapi operation. StatusCode is
// zero when the failure happened before or without an HTTP response.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error with the given kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the error kind, defaulting to KindTransport for errors that
// did not originate in this package.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if apiErr, ok := asError(err); ok {
		return apiErr.Kind
	}
	return KindTransport
}

func asError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MessageOf returns the upstream or validation message carried by err,
// falling back to err.Error() for foreign errors.
func MessageOf(err error) string {
	if apiErr, ok := asError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// IsNotFound reports whether err represents a failed template resolution.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnauthorized reports whether err represents an upstream auth rejection.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
