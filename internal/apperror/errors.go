// Package apperror holds the error taxonomy shared by services and controllers.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindRejected     Kind = "rejected"
	KindUnauthorized Kind = "unauthorized"
)

// Error carries a kind, a human message and the identifiers that caused it.
type Error struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, ", ")
}

func newError(kind Kind, msg string, details []string) *Error {
	return &Error{Kind: kind, Message: msg, Details: details}
}

func Validation(msg string, details ...string) *Error {
	return newError(KindValidation, msg, details)
}

func NotFound(msg string, details ...string) *Error {
	return newError(KindNotFound, msg, details)
}

func Conflict(msg string, details ...string) *Error {
	return newError(KindConflict, msg, details)
}

func Rejected(msg string, details ...string) *Error {
	return newError(KindRejected, msg, details)
}

func Unauthorized(msg string, details ...string) *Error {
	return newError(KindUnauthorized, msg, details)
}

// As unwraps err down to an *Error, if there is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err wraps an *Error of the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// IDs formats numeric ids for Details.
func IDs(ids []uint) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("%d", id)
	}
	return out
}
