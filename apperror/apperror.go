// Package apperror defines the domain error taxonomy shared by stores,
// handlers and the error normalizer middleware. Stores translate raw
// persistence failures into these errors; the normalizer maps them to HTTP
// responses without ever exposing internal detail for non-operational ones.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error so callers can match on the failure class
// instead of parsing its message.
type Kind int

const (
	KindGeneric Kind = iota
	KindValidation
	KindNotFound
	KindMalformedID
	KindConflict
	KindUnauthorized
	KindInternal
)

// Error is an application-level error carrying the HTTP status it should be
// rendered with. Operational errors are expected, caller-facing failures
// whose message is safe to show to clients; non-operational errors are
// internal faults whose detail is hidden in production.
type Error struct {
	Code        int
	Message     string
	Kind        Kind
	Operational bool
	Fields      []string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an operational error with an explicit status code.
func New(message string, code int) *Error {
	return &Error{Code: code, Message: message, Operational: true}
}

// Validation creates a 400 error listing every violated field constraint.
func Validation(fields ...string) *Error {
	message := "Validation Error"
	if len(fields) > 0 {
		message = fields[0]
	}
	return &Error{
		Code:        http.StatusBadRequest,
		Message:     message,
		Kind:        KindValidation,
		Operational: true,
		Fields:      fields,
	}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message, Kind: KindNotFound, Operational: true}
}

// MalformedID is returned when an identifier does not match the store's
// ObjectID format.
func MalformedID() *Error {
	return &Error{Code: http.StatusBadRequest, Message: "Invalid ID format", Kind: KindMalformedID, Operational: true}
}

// Conflict is returned on a duplicate key violation, naming the unique
// field the value collided on.
func Conflict(field string) *Error {
	return &Error{
		Code:        http.StatusBadRequest,
		Message:     fmt.Sprintf("Duplicate value for %s", field),
		Kind:        KindConflict,
		Operational: true,
	}
}

// Unauthorized covers invalid or expired token errors. No route raises it
// today; it is kept in the taxonomy for forward compatibility.
func Unauthorized(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message, Kind: KindUnauthorized, Operational: true}
}

// Internal creates a non-operational 500 error.
func Internal(message string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message, Kind: KindInternal}
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsConflict reports whether err is a duplicate key conflict.
func IsConflict(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindConflict
}
