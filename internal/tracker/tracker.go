package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/todo"
)

// Store loads and saves the whole task list.
type Store interface {
	Load() (*todo.List, error)
	Save(*todo.List) error
}

// Validator is implemented by stores that can check their backing file.
type Validator interface {
	Validate(opts todo.ValidationOptions) (*todo.ValidationResult, error)
}

// Journal records state-changing commands.
type Journal interface {
	Append(entry logging.Entry) error
}

// Hook is called after a state-changing command has been saved.
type Hook func(entry logging.Entry) error

// ErrNotValidatable is returned by Check when the store cannot validate itself.
var ErrNotValidatable = errors.New("store does not support validation")

// Tracker runs task commands against a store. All mutations in one Tracker
// share the same timestamp.
type Tracker struct {
	store   Store
	now     time.Time
	logger  *log.Logger
	journal Journal
	hook    Hook
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithJournal records every state-changing command in j.
func WithJournal(j Journal) Option {
	return func(t *Tracker) {
		t.journal = j
	}
}

// WithHook runs h after every saved change.
func WithHook(h Hook) Option {
	return func(t *Tracker) {
		t.hook = h
	}
}

// New returns a Tracker that stamps mutations with now.
func New(store Store, now time.Time, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		now:    now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the timestamp applied to mutations.
func (t *Tracker) Now() time.Time {
	return t.now
}

func (t *Tracker) load() (*todo.List, error) {
	l, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return l, nil
}

func (t *Tracker) save(l *todo.List, entry logging.Entry) error {
	if err := t.store.Save(l); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	t.record(entry)
	return nil
}

// record appends entry to the journal and runs the hook. Failures are
// logged and do not fail the command, which has already been saved.
func (t *Tracker) record(entry logging.Entry) {
	entry.Time = t.now
	if t.journal != nil {
		if err := t.journal.Append(entry); err != nil {
			t.logger.Warn("Failed to write journal entry", "command", entry.Command, "err", err)
		}
	}
	if t.hook != nil {
		if err := t.hook(entry); err != nil {
			t.logger.Warn("Hook failed", "command", entry.Command, "err", err)
		}
	}
}

// Add appends a todo task and returns its confirmation.
func (t *Tracker) Add(description string) (string, error) {
	l, err := t.load()
	if err != nil {
		return "", err
	}

	task := l.AddTask(description, t.now)
	msg := fmt.Sprintf(MsgAdded, task.ID)
	if err := t.save(l, logging.Entry{
		Command:     "add",
		ID:          task.ID,
		Description: task.Description,
		Status:      string(task.Status),
		Message:     msg,
	}); err != nil {
		return "", err
	}
	t.logger.Debug("Added task", "id", task.ID)
	return msg, nil
}

// Update replaces the description of task id.
func (t *Tracker) Update(id int, description string) (string, error) {
	l, err := t.load()
	if err != nil {
		return "", err
	}

	if err := l.UpdateTask(id, description, t.now); err != nil {
		return lookupMessage(err, id, MsgNothingToUpdate)
	}

	msg := fmt.Sprintf(MsgUpdated, id)
	task := l.GetTask(id)
	if err := t.save(l, logging.Entry{
		Command:     "update",
		ID:          id,
		Description: task.Description,
		Status:      string(task.Status),
		Message:     msg,
	}); err != nil {
		return "", err
	}
	return msg, nil
}

// Delete removes task id and renumbers the tasks after it.
func (t *Tracker) Delete(id int) (string, error) {
	l, err := t.load()
	if err != nil {
		return "", err
	}

	removed, err := l.DeleteTask(id)
	if err != nil {
		return lookupMessage(err, id, MsgNothingToDelete)
	}

	msg := fmt.Sprintf(MsgDeleted, id)
	if err := t.save(l, logging.Entry{
		Command:     "delete",
		ID:          id,
		Description: removed.Description,
		Status:      string(removed.Status),
		Message:     msg,
	}); err != nil {
		return "", err
	}
	if id <= l.Len() {
		t.logger.Debug("Renumbered tasks", "from", id, "count", l.Len()-id+1)
	}
	return msg, nil
}

// MarkInProgress sets task id to in-progress.
func (t *Tracker) MarkInProgress(id int) (string, error) {
	return t.MarkStatus(id, todo.StatusInProgress)
}

// MarkDone sets task id to done.
func (t *Tracker) MarkDone(id int) (string, error) {
	return t.MarkStatus(id, todo.StatusDone)
}

// MarkStatus sets task id to status. A task already in status is reported
// and left untouched.
func (t *Tracker) MarkStatus(id int, status todo.Status) (string, error) {
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q (valid: %s)", status, statusNames())
	}

	l, err := t.load()
	if err != nil {
		return "", err
	}

	if err := l.SetTaskStatus(id, status, t.now); err != nil {
		if errors.Is(err, todo.ErrAlreadyInStatus) {
			return alreadyInStatus(status), nil
		}
		return lookupMessage(err, id, MsgNothingToMark)
	}

	msg := fmt.Sprintf(MsgStatusChanged, id)
	task := l.GetTask(id)
	if err := t.save(l, logging.Entry{
		Command:     "mark-" + string(status),
		ID:          id,
		Description: task.Description,
		Status:      string(status),
		Message:     msg,
	}); err != nil {
		return "", err
	}
	return msg, nil
}

// List returns the descriptions of tasks whose status equals status, one per
// line. The status is matched as given.
func (t *Tracker) List(status string) (string, error) {
	l, err := t.load()
	if err != nil {
		return "", err
	}

	descriptions := l.DescriptionsWithStatus(status)
	if len(descriptions) == 0 {
		return MsgNoStatusMatches, nil
	}
	return strings.Join(descriptions, "\n"), nil
}

// ListAll returns every description in ID order, one per line.
func (t *Tracker) ListAll() (string, error) {
	l, err := t.load()
	if err != nil {
		return "", err
	}

	if l.IsEmpty() {
		return MsgNothingToList, nil
	}
	return strings.Join(l.Descriptions(), "\n"), nil
}

// lookupMessage turns a lookup failure into its printed line. Any other
// error is returned as is.
func lookupMessage(err error, id int, emptyMsg string) (string, error) {
	switch {
	case errors.Is(err, todo.ErrEmptyList):
		return emptyMsg, nil
	case errors.Is(err, todo.ErrNotFound):
		return fmt.Sprintf(MsgNotFound, id), nil
	default:
		return "", err
	}
}

func statusNames() string {
	names := make([]string, 0, len(todo.Statuses()))
	for _, s := range todo.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
