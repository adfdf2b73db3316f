package flop

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation signals a programmer error that broke a structural
	// invariant of a vector, such as resizing below the populated count or
	// mutating a vector while it is being traversed.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrPrecondition signals that a caller violated a documented precondition
	// of a kernel, such as sampling from an empty distribution.
	ErrPrecondition = errors.New("precondition violation")
)

// InvariantError carries the operation and detail of an invariant violation.
//
// It is raised with panic, never returned. A recovered value can be inspected
// with errors.Is(err, ErrInvariantViolation).
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariantViolation, e.Op, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// PreconditionError carries the operation and detail of a precondition violation.
//
// Like InvariantError it is raised with panic.
type PreconditionError struct {
	Op     string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPrecondition, e.Op, e.Detail)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// PanicInvariant raises an *InvariantError for op.
func PanicInvariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

// PanicPrecondition raises a *PreconditionError for op.
func PanicPrecondition(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
