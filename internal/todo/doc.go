// Package todo loads, validates, mutates, and saves the task file.
//
// The task file is a JSON array of task records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "buy milk",
//	    "status": "todo",
//	    "createdAt": "2024-01-01T09:30:00+01:00",
//	    "updatedAt": null
//	  }
//	]
//
// # Positional IDs
//
// Task IDs are positions, not durable identifiers. They are dense and
// contiguous starting at 1 in listing order, and every delete renumbers the
// remaining tasks to keep them that way. A task's ID changes when any task
// before it is deleted, so callers must look IDs up again after a delete.
//
// # Task Status Values
//
//   - "todo": Task has not been started
//   - "in-progress": Task is being worked on
//   - "done": Task is complete
//
// # Loading
//
// A missing or blank file loads as an empty list. A file whose top-level
// value is not an array is reset to an empty list with a logged warning and
// is rewritten on the next save. A file that is not valid JSON, or whose
// records cannot be decoded into tasks, is an error (ErrUnreadableStore).
//
// # File Format
//
// When writing the task file, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Field order id, description, status, createdAt, updatedAt
//   - null for a task that has never been updated
//
// Saving a loaded list without changes reproduces a file in this format
// byte for byte. Timestamps keep the text they were read with, so offsets
// such as +00:00 and fractions finer than microseconds survive a save.
// Timestamps without a UTC offset are read as local time. A record without
// createdAt is unreadable.
//
// The store does no locking. Running two commands against the same file at
// the same time is not supported.
package todo
