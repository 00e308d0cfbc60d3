// Package tracker implements the task commands on top of a task store.
//
// Every operation loads the task file fresh, checks for the empty-list,
// unknown-id, and already-in-status cases before touching anything, mutates
// the list, and saves only when the list actually changed. Operations return
// the line to print; the error is non-nil only when the task file cannot be
// read or written.
//
// IDs are positions: deleting a task renumbers the ones after it, so an ID
// printed before a delete may name a different task afterwards.
package tracker
