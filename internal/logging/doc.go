// Package logging builds the console logger and keeps the per-project
// command journal.
//
// Diagnostics go through a charmbracelet/log logger on stderr. The journal is
// a JSONL file under <log_dir>/<project-slug>/journal.jsonl with one line per
// state-changing command; Tail prints its last lines and can follow it.
package logging
