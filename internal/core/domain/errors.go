package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrTimetableNotFound  = fmt.Errorf("timetable %w", ErrNotFound)
	ErrActivityNotFound   = fmt.Errorf("activity %w", ErrNotFound)
	ErrTimetableNameTaken = fmt.Errorf("%w: a timetable with this name already exists", ErrConflict)
	ErrLastTimetable      = fmt.Errorf("%w: cannot delete the only timetable, create another one first", ErrConflict)
)

// ValidationError reports a rejected input field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
