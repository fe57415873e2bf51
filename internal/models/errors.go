package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to API clients.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindConflict   = "conflict"
)

// Error is a kind-tagged service error. The kind is machine-readable and
// maps to an HTTP status in the handler layer.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation returns a validation error (HTTP 400).
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error (HTTP 404).
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a conflict error (HTTP 409).
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// ErrKind reports the kind of a service error, or false for other errors.
func ErrKind(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
