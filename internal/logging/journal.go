package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JournalFile is the journal file name inside the project directory.
const JournalFile = "journal.jsonl"

// Entry is one journal line.
type Entry struct {
	Time        time.Time `json:"time"`
	Command     string    `json:"command"`
	ID          int       `json:"id,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Message     string    `json:"message"`
}

// Journal appends entries to a project's journal file.
type Journal struct {
	Dir  string
	Path string

	mu   sync.Mutex
	file *os.File
}

// OpenJournal opens (creating if needed) the journal for workDir under baseDir.
func OpenJournal(baseDir, workDir string) (*Journal, error) {
	dir, err := ProjectDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	path := filepath.Join(dir, JournalFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &Journal{Dir: dir, Path: path, file: file}, nil
}

// JournalPath returns where the journal for workDir lives, without creating it.
func JournalPath(baseDir, workDir string) (string, error) {
	dir, err := ProjectDir(baseDir, workDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, JournalFile), nil
}

// Append writes entry as a single JSON line.
func (j *Journal) Append(entry Entry) error {
	if j == nil || j.file == nil {
		return fmt.Errorf("journal is closed")
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.file.Write(line); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Close closes the journal file.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	err := j.file.Close()
	j.file = nil
	return err
}
