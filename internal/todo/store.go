package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Store reads and writes the task file at a single path.
type Store struct {
	path        string
	atomicWrite bool
	logger      *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAtomicWrite selects write-to-temp-then-rename saves (the default) or
// plain in-place overwrites.
func WithAtomicWrite(enabled bool) StoreOption {
	return func(s *Store) {
		s.atomicWrite = enabled
	}
}

// NewStore returns a store for the task file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:        path,
		atomicWrite: true,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the task file.
//
// A missing or blank file yields an empty list. A top-level value other than
// an array is logged and yields an empty list. Anything that cannot be parsed
// as JSON or decoded into tasks, including a task without createdAt, returns
// a *StoreError wrapping ErrUnreadableStore.
func (s *Store) Load() (*List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Task file not found, starting empty", "path", s.path)
			return NewList(), nil
		}
		return nil, &StoreError{Op: "read", Path: s.path, Err: err}
	}
	return s.decode(data)
}

func (s *Store) decode(data []byte) (*List, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewList(), nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StoreError{Op: "parse", Path: s.path, Err: fmt.Errorf("%w: %v", ErrUnreadableStore, err)}
	}
	if _, ok := doc.([]any); !ok {
		s.logger.Warn("Resetting task file structure to an empty list", "path", s.path, "found", jsonKind(doc))
		return NewList(), nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &StoreError{Op: "decode", Path: s.path, Err: fmt.Errorf("%w: %v", ErrUnreadableStore, err)}
	}
	for i, task := range tasks {
		if task.CreatedAt.IsZero() {
			return nil, &StoreError{Op: "decode", Path: s.path, Err: fmt.Errorf("%w: task at index %d has no createdAt", ErrUnreadableStore, i)}
		}
	}
	return NewList(tasks...), nil
}

// Save writes the whole list to the task file with 2-space indentation.
func (s *Store) Save(l *List) error {
	data, err := Marshal(l)
	if err != nil {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}

	if s.atomicWrite {
		err = writeFileAtomic(s.path, data, 0644)
	} else {
		err = os.WriteFile(s.path, data, 0644)
	}
	if err != nil {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}
	s.logger.Debug("Saved task file", "path", s.path, "tasks", l.Len())
	return nil
}

// Marshal encodes the list in the task file format.
func Marshal(l *List) ([]byte, error) {
	tasks := l.Tasks
	if tasks == nil {
		tasks = []Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// Encode adds the trailing newline.
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it, and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	// Directory fsync is unsupported on some platforms; the rename already happened.
	_ = f.Sync()
	return nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Validate checks the task file against the schema and list invariants.
func (s *Store) Validate(opts ValidationOptions) (*ValidationResult, error) {
	return ValidateFile(s.path, opts)
}
