package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyList is returned when a task is looked up in a list with no tasks.
	ErrEmptyList = errors.New("no tasks available")

	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("task not found")

	// ErrAlreadyInStatus is returned when a status change would not change anything.
	ErrAlreadyInStatus = errors.New("task already in status")

	// ErrUnreadableStore is matched by a *StoreError for a task file that cannot be parsed.
	ErrUnreadableStore = errors.New("task file is unreadable")
)

// NotFoundError reports an ID with no matching task.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StatusError reports a status change to the status a task already has.
type StatusError struct {
	ID     int
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("task %d already %s", e.ID, e.Status)
}

// Unwrap returns ErrAlreadyInStatus.
func (e *StatusError) Unwrap() error {
	return ErrAlreadyInStatus
}

// StoreError describes a failed task file operation.
type StoreError struct {
	Op   string // "read", "parse", "decode", "write"
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s task file %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
