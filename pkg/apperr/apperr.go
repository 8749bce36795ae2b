package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes by how the request boundary must answer them.
type Kind string

const (
	KindNotFound        Kind = "NotFound"
	KindInvariant       Kind = "InvariantViolation"
	KindPermission      Kind = "PermissionDenied"
	KindConflict        Kind = "Conflict"
	KindInvalidInput    Kind = "InvalidInput"
	KindUnauthenticated Kind = "Unauthenticated"
	KindRateLimited     Kind = "RateLimited"
	KindInternal        Kind = "Internal"
)

// Error is the structured error surfaced to API callers. Code is stable,
// Message is for humans.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// cause is the underlying failure of an Internal error. It is logged,
	// never sent to clients.
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches on Code so callers can compare against the sentinels below
// even when the message was customized.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy carrying a more specific message.
func (e *Error) WithMessage(format string, args ...interface{}) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrAlreadyOnDuty     = New(KindInvariant, "AlreadyOnDuty", "officer is already on duty")
	ErrNotOnDuty         = New(KindInvariant, "NotOnDuty", "officer is not on duty")
	ErrSelfForceEnd      = New(KindInvariant, "SelfForceEnd", "use the regular end of duty for your own session")
	ErrAlreadyAssigned   = New(KindConflict, "AlreadyAssigned", "officer already belongs to a patrol")
	ErrNotAMember        = New(KindInvariant, "NotAMember", "officer is not a member of this patrol")
	ErrInvalidTransition = New(KindInvariant, "InvalidTransition", "status transition not allowed")
	ErrAlreadyTerminal   = New(KindInvariant, "AlreadyTerminal", "record is closed and can no longer change")
	ErrOfficerInactive   = New(KindInvariant, "OfficerInactive", "officer account is disabled")
	ErrGradeInUse        = New(KindConflict, "GradeInUse", "grade is still assigned to officers")
	ErrDuplicate         = New(KindConflict, "Duplicate", "a record with the same key already exists")

	ErrNotFound         = New(KindNotFound, "NotFound", "resource not found")
	ErrPermissionDenied = New(KindPermission, "PermissionDenied", "insufficient permissions")
	ErrInvalidInput     = New(KindInvalidInput, "InvalidInput", "invalid input")
	ErrUnauthenticated  = New(KindUnauthenticated, "Unauthenticated", "authentication required")
	ErrBadCredentials   = New(KindUnauthenticated, "BadCredentials", "invalid username or password")
	ErrRateLimited      = New(KindRateLimited, "RateLimited", "too many requests, try again later")
)

// NotFound builds a NotFound error naming the missing entity.
func NotFound(entity, id string) *Error {
	return ErrNotFound.WithMessage("%s %s not found", entity, id)
}

// Invalid builds an InvalidInput error.
func Invalid(format string, args ...interface{}) *Error {
	return ErrInvalidInput.WithMessage(format, args...)
}

// Denied builds a PermissionDenied error.
func Denied(format string, args ...interface{}) *Error {
	return ErrPermissionDenied.WithMessage(format, args...)
}

// From extracts the structured error, wrapping anything else as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Code: "Internal", Message: "internal server error", cause: err}
}

// HTTPStatus maps an error kind onto the status code returned to clients.
func HTTPStatus(err error) int {
	switch From(err).Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvariant, KindConflict, KindInvalidInput:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
