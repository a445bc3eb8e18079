// Package apierr classifies failures coming back from the booking backend
// and from local input validation. The engine only ever inspects the class,
// never the transport details.
package apierr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed local input; no network call was issued.
	ErrValidation = errors.New("validation failed")

	// ErrNoTarget marks an operation given nothing to act on, e.g. a delete
	// with a zero id. Treated as a no-op by callers.
	ErrNoTarget = errors.New("no target")
)

// StatusError wraps a backend rejection with its HTTP-like status code.
type StatusError struct {
	Op     string
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *StatusError) Unwrap() error { return e.Err }

// NewStatus builds a StatusError for an operation.
func NewStatus(op string, status int, err error) *StatusError {
	return &StatusError{Op: op, Status: status, Err: err}
}

// Validation wraps ErrValidation with a reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// IsUnauthorized reports whether the failure is a 401/403 session rejection.
// Anything else, including non-status errors, is treated as transient.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status == 401 || se.Status == 403
}

// IsValidation reports whether the failure was resolved locally without
// reaching the backend.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNoTarget reports whether the operation had nothing to act on.
func IsNoTarget(err error) bool {
	return errors.Is(err, ErrNoTarget)
}
