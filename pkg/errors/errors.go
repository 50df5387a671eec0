package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures of upstream and local operations
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeHTTPStatus ErrorType = "http_status"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeInvalidURL ErrorType = "invalid_url"
	ErrorTypeFilesystem ErrorType = "filesystem"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error is a typed error carrying the failed target and, for HTTP
// failures, the response status code.
type Error struct {
	Type    ErrorType
	Message string
	Target  string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Target != "" {
		msg = fmt.Sprintf("%s for %s", msg, e.Target)
	}
	msg = msg + ": " + e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(errorType ErrorType, target, message string, err error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Target:  target,
		Err:     err,
	}
}

// Network wraps a transport failure (refused connection, DNS, timeout)
func Network(target string, err error) *Error {
	return New(ErrorTypeNetwork, target, "request failed", err)
}

// HTTPStatus reports a non-success response
func HTTPStatus(target string, code int) *Error {
	e := New(ErrorTypeHTTPStatus, target, fmt.Sprintf("unexpected status %d", code), nil)
	e.Code = code
	return e
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown when err is not
// a typed error.
func TypeOf(err error) ErrorType {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type
	}
	return ErrorTypeUnknown
}

// Is reports whether err is a typed error of the given type
func Is(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// IsSuccessStatus reports whether an HTTP status code counts as success
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
