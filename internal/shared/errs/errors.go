package errs

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error. Every error returned by the booking core
// falls into exactly one of these buckets.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindStateConflict Kind = "STATE_CONFLICT"
	KindConsistency   Kind = "CONSISTENCY_ERROR"
	KindNotFound      Kind = "NOT_FOUND"
)

// Stable error codes surfaced to API clients.
const (
	CodeInvalidAmount    = "INVALID_AMOUNT"
	CodeAlreadyCancelled = "ALREADY_CANCELLED"
	CodeInvalidSelection = "INVALID_SELECTION"
	CodeNoTravelers      = "NO_TRAVELERS"
	CodeAlreadyLocked    = "ALREADY_LOCKED"
	CodeLocked           = "LOCKED"
	CodeValidation       = "VALIDATION_ERROR"
	CodeBookingClosed    = "BOOKING_CLOSED"
	CodeRefundInFlight   = "REFUND_IN_FLIGHT"
	CodeVersionConflict  = "VERSION_CONFLICT"
	CodeInvalidState     = "INVALID_STATE"
	CodeNotFound         = "NOT_FOUND"
)

// Error is a classified domain error with a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches two domain errors by code so callers can use errors.Is with
// package-level sentinels.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Validation creates a ValidationError: malformed or missing input, rejected
// before any mutation.
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// StateConflict creates a StateConflictError: the operation is invalid for the
// entity's current state.
func StateConflict(code, message string) *Error {
	return &Error{Kind: KindStateConflict, Code: code, Message: message}
}

// Consistency creates a ConsistencyError: applying the operation would violate
// an invariant.
func Consistency(code, message string) *Error {
	return &Error{Kind: KindConsistency, Code: code, Message: message}
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

// CodeOf returns the stable code of a domain error, or "" for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps a domain error to an HTTP status code.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindStateConflict:
		return http.StatusConflict
	case KindConsistency:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
