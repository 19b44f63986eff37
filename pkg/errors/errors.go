// Package errors provides the coded error type shared by every layer of the
// service. Handlers translate codes into HTTP and gRPC statuses.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an error for callers and transports.
type Code string

const (
	ErrCodeValidation      Code = "VALIDATION_ERROR"
	ErrCodeUnauthenticated Code = "UNAUTHENTICATED"
	ErrCodeForbidden       Code = "AUTHORIZATION_ERROR"
	ErrCodeInvalidState    Code = "INVALID_STATE_TRANSITION"
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeConflict        Code = "CONFLICT"
	ErrCodeUnavailable     Code = "BACKEND_UNAVAILABLE"
	ErrCodeInternal        Code = "INTERNAL"
)

// Error is a coded application error.
type Error struct {
	Code    Code
	Message string
	Field   string // set for validation errors
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// InvalidInput reports a validation failure on a single field.
func InvalidInput(field, message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message, Field: field}
}

// NotFound reports a missing resource.
func NotFound(resource, id string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s '%s' not found", resource, id)}
}

// Forbidden reports an actor lacking the privilege for an operation.
func Forbidden(message string) *Error {
	return &Error{Code: ErrCodeForbidden, Message: message}
}

// Unauthenticated reports a missing or invalid session.
func Unauthenticated(message string) *Error {
	return &Error{Code: ErrCodeUnauthenticated, Message: message}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain. Uncoded errors
// are INTERNAL; a nil error has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
