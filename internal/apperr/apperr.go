// Package apperr defines the error taxonomy shared by every service in the
// backend. Handlers map these kinds onto HTTP statuses at the boundary and
// never expose raw internal error text to clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary handling.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindAuth
	KindForbidden
	KindNotFound
	KindUnsupportedMedia
	KindStorage
)

// Error is a classified application error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	// Fields lists the offending input fields for validation errors.
	Fields []string
	// Err is the underlying cause, kept server-side only.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindUnsupportedMedia:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a validation error naming every missing or malformed field.
func Validation(fields ...string) *Error {
	msg := "invalid request"
	if len(fields) > 0 {
		msg = "missing required fields"
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// InvalidValue builds a validation error for fields that are present but
// carry a malformed or illegal value.
func InvalidValue(fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid field values", Fields: fields}
}

// Conflict marks a uniqueness violation, e.g. a duplicate email.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Auth marks a failed credential check. Callers must use the same message for
// unknown accounts and wrong passwords so the two are indistinguishable.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Forbidden marks an authorization failure on an admin-gated operation.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound marks a lookup miss for a user, report or media record.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// UnsupportedMedia marks an attachment with a disallowed file type.
func UnsupportedMedia(message string) *Error {
	return &Error{Kind: KindUnsupportedMedia, Message: message}
}

// Storage wraps a database or filesystem failure behind a stable message.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// As extracts an *Error from err, or nil if err is not classified.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	e := As(err)
	return e != nil && e.Kind == kind
}
