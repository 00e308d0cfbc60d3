// Package todo loads, validates, mutates, and saves the task file.
package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses returns every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a single task in the task file.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   *Timestamp `json:"updatedAt"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// Layouts for timestamps written without a UTC offset, as Python's
// datetime.isoformat produces them.
const (
	naiveLayout      = "2006-01-02T15:04:05"
	naiveMicroLayout = "2006-01-02T15:04:05.000000"
)

// Timestamp is an ISO-8601 timestamp.
//
// New timestamps are written as RFC 3339 with nanoseconds. Timestamps read
// from a file keep their source text and are written back unchanged, so
// loading and saving an unchanged file is byte-stable. Text without a UTC
// offset is interpreted in local time.
type Timestamp struct {
	time.Time
	naive bool
	raw   string
}

// NewTimestamp wraps t for storage.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Ptr returns a pointer to a copy of ts.
func (ts Timestamp) Ptr() *Timestamp {
	return &ts
}

// String formats the timestamp the way it is stored.
func (ts Timestamp) String() string {
	if ts.raw != "" {
		return ts.raw
	}
	if ts.naive {
		if ts.Nanosecond() == 0 {
			return ts.Format(naiveLayout)
		}
		return ts.Format(naiveMicroLayout)
	}
	return ts.Format(time.RFC3339Nano)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	parsed.raw = s
	*ts = parsed
	return nil
}

// ParseTimestamp parses an ISO-8601 timestamp with or without a UTC offset.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	layout := naiveLayout
	if strings.Contains(s, ".") {
		layout = naiveLayout + ".999999999"
	}
	t, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: expected ISO-8601", s)
	}
	return Timestamp{Time: t, naive: true}, nil
}
