package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors services return. Handlers map these onto HTTP statuses,
// so every service failure must wrap exactly one of them.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrAccountInactive = errors.New("account inactive")
	ErrForbidden       = errors.New("permission denied")
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrConflict        = errors.New("resource conflict")
	ErrInternal        = errors.New("internal server error")
)

// Error pairs a sentinel with a message safe to show the caller.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthenticated(format string, args ...any) *Error {
	return &Error{Err: ErrUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

func Inactive(format string, args ...any) *Error {
	return &Error{Err: ErrAccountInactive, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Err: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Err: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidRequest(format string, args ...any) *Error {
	return &Error{Err: ErrInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Err: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal hides the underlying cause from the caller. The cause stays
// reachable through Unwrap for logging.
func Internal(cause error) *Error {
	return &Error{Err: fmt.Errorf("%w: %w", ErrInternal, cause), Message: "something went wrong"}
}
