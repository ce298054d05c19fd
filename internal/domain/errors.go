package domain

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when the principal lacks the role an operation
// requires. Never retryable.
var ErrForbidden = errors.New("operation not allowed for this user")

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports insufficient available units for a requested range,
// or a status-guarded update that observed a stale state. The whole enclosing
// transaction is rolled back; the caller may retry with adjusted input.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewShortfallError builds the Conflict raised when an equipment cannot cover
// the requested quantity over a date range.
func NewShortfallError(equipmentName string, requested, available int32) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(
		"insufficient units of %s: requested %d, only %d available for the selected dates",
		equipmentName, requested, available,
	)}
}

// ValidationError reports missing or malformed input fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
