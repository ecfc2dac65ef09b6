package tracker

import (
	"errors"
	"fmt"
)

// ArgumentError reports a command invoked with the wrong number or shape of arguments.
type ArgumentError struct {
	Command string
	Usage   string
	Reason  string
}

func (e *ArgumentError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s: %s (usage: %s)", e.Command, e.Reason, e.Usage)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// NotFoundError reports a lookup that matched no rows.
type NotFoundError struct {
	Entity string // "student", "project" or "grade"
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// StoreConstraintError reports a write rejected by a store constraint,
// for example a duplicate GitHub handle.
type StoreConstraintError struct {
	Op  string
	Err error
}

func (e *StoreConstraintError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreConstraintError) Unwrap() error { return e.Err }

// StoreUnavailableError reports a store that could not be reached.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// IsArgument returns true if err is or wraps an *ArgumentError.
func IsArgument(err error) bool {
	var target *ArgumentError
	return errors.As(err, &target)
}

// IsNotFound returns true if err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConstraint returns true if err is or wraps a *StoreConstraintError.
func IsConstraint(err error) bool {
	var target *StoreConstraintError
	return errors.As(err, &target)
}

// IsUnavailable returns true if err is or wraps a *StoreUnavailableError.
func IsUnavailable(err error) bool {
	var target *StoreUnavailableError
	return errors.As(err, &target)
}

// storeError classifies a failure returned by the Store.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, ErrConstraint):
		return &StoreConstraintError{Op: op, Err: err}
	case errors.Is(err, ErrUnavailable):
		return &StoreUnavailableError{Op: op, Err: err}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
