package tracker

import (
	"fmt"

	"github.com/nibzard/task-cli/internal/todo"
)

// Snapshot is a read-only view of the task list.
type Snapshot struct {
	Tasks  []todo.Task
	Counts map[todo.Status]int
}

// Total returns the number of tasks.
func (s *Snapshot) Total() int {
	return len(s.Tasks)
}

// Filter returns the tasks with status, or every task when status is empty.
func (s *Snapshot) Filter(status todo.Status) []todo.Task {
	if status == "" {
		return s.Tasks
	}
	return todo.NewList(s.Tasks...).FilterByStatus(status)
}

// Snapshot loads the task list without modifying it.
func (t *Tracker) Snapshot() (*Snapshot, error) {
	l, err := t.load()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Tasks:  l.Tasks,
		Counts: l.CountByStatus(),
	}, nil
}

// Check validates the backing file when the store supports it.
func (t *Tracker) Check(opts todo.ValidationOptions) (*todo.ValidationResult, error) {
	v, ok := t.store.(Validator)
	if !ok {
		return nil, ErrNotValidatable
	}
	result, err := v.Validate(opts)
	if err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	return result, nil
}
