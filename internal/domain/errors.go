package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMissingSelection = errors.New("missing selection")
	ErrNoAvailability   = errors.New("no available seats")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrPersistence      = errors.New("persistence failure")
	ErrNotFound         = errors.New("not found")
)

// FieldError reports an entity field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidArgument
}

// PersistenceError wraps a failure of the persistence boundary. The in-memory
// state that triggered the failed save is not rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func required(field, value string) error {
	if isBlank(value) {
		return &FieldError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func nonNegative(field string, value int64) error {
	if value < 0 {
		return &FieldError{Field: field, Reason: "must not be negative"}
	}
	return nil
}
