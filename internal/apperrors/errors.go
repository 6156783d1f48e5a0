// Package apperrors defines the error taxonomy shared by the domain and
// application layers. The HTTP boundary owns the mapping from these kinds
// to status codes; nothing below the API layer touches HTTP.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument marks malformed caller input, local to a function.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict marks a uniqueness violation (e.g. duplicate email).
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is deliberately uninformative to callers so
	// account existence cannot be probed through login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid marks a malformed, unsigned or tampered token.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionExpired marks a correctly signed but time-lapsed token.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound marks resource absence.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied marks an operation on a resource the caller
	// does not own.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError aggregates field-level violations from one validation
// pass. Validators report every violation at once instead of failing on
// the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// NewValidationError builds a ValidationError from the collected messages.
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// DatabaseError wraps an infrastructure-level storage failure. Repositories
// translate driver errors they recognize (duplicate key) into more specific
// kinds; everything else surfaces as a DatabaseError and becomes a 500.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database failure during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError wraps err with the failing operation name.
func NewDatabaseError(op string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Err: err}
}
