package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrIndex matches every *IndexError
	ErrIndex = errors.New("index out of range")
	// ErrDuplicateID is returned when initial tasks share an id
	ErrDuplicateID = errors.New("duplicate task id")
)

// ValidationError reports a draft that cannot become a task.
// The list is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IndexError reports a reorder with a position outside the list
type IndexError struct {
	From int
	To   int
	Len  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cannot move task from %d to %d in a list of %d", e.From, e.To, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}
