package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/todo"
	"github.com/nibzard/task-cli/internal/tracker"
)

// doctorCommand checks config, the task file and the journal.
func doctorCommand(cws *config.ConfigWithSources, logger *log.Logger, now time.Time, args []string) error {
	fs := flag.NewFlagSet("task-cli doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Show every task")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := cws.Config
	allOK := true

	fmt.Fprintln(stdout, "task-cli doctor")
	fmt.Fprintln(stdout, "===============")
	fmt.Fprintln(stdout)

	// Check config
	fmt.Fprintln(stdout, "Config:")
	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(stdout, "  File: %s\n", file)
	} else {
		fmt.Fprintln(stdout, "  File: (none, using defaults)")
	}
	schemaLabel := cfg.SchemaFile
	if schemaLabel == "" {
		schemaLabel = "(bundled)"
	}
	hookLabel := cfg.HookCommand
	if hookLabel == "" {
		hookLabel = "(none)"
	}
	settings := []struct {
		key   string
		value string
	}{
		{"task_file", cfg.TaskFile},
		{"schema_file", schemaLabel},
		{"atomic_write", strconv.FormatBool(cfg.AtomicWrite)},
		{"journal", strconv.FormatBool(cfg.Journal)},
		{"hook_command", hookLabel},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
	}
	for _, s := range settings {
		fmt.Fprintf(stdout, "  %s = %s (%s)\n", s.key, s.value, cws.Sources[s.key])
	}
	fmt.Fprintln(stdout)

	// Check task file
	fmt.Fprintf(stdout, "Task file: %s\n", cfg.TaskFile)
	info, err := os.Stat(cfg.TaskFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(stdout, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(stdout, "  ✅ OK")
		t := tracker.New(newStore(cfg, logger), now, tracker.WithLogger(logger))
		if !checkTaskFile(t, cfg.SchemaFile, *verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(stdout)

	// Check journal
	if !checkJournal(cfg) {
		allOK = false
	}
	fmt.Fprintln(stdout)

	// Overall status
	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. task-cli may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFile validates the task file and prints a status summary.
func checkTaskFile(t *tracker.Tracker, schemaPath string, verbose bool) bool {
	result, err := t.Check(todo.ValidationOptions{SchemaPath: schemaPath})
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Validation error: %v\n", err)
		return false
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
	}
	if result.UsedSchema != "" {
		fmt.Fprintf(stdout, "  Schema: %s\n", result.UsedSchema)
	}
	if !result.Valid {
		fmt.Fprintln(stdout, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(stdout, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintln(stdout, "  ✅ Valid")

	snap, err := t.Snapshot()
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Fprintf(stdout, "  Tasks: %d (todo %d, in-progress %d, done %d)\n",
		snap.Total(),
		snap.Counts[todo.StatusTodo],
		snap.Counts[todo.StatusInProgress],
		snap.Counts[todo.StatusDone])
	if verbose {
		for _, task := range snap.Tasks {
			fmt.Fprintf(stdout, "    - [%s] %d: %s\n", task.Status, task.ID, task.Description)
		}
	}
	return true
}

// checkJournal reports where the journal is written.
func checkJournal(cfg *config.Config) bool {
	if !cfg.Journal {
		fmt.Fprintln(stdout, "Journal: disabled")
		return true
	}
	path, err := logging.JournalPath(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		fmt.Fprintln(stdout, "Journal:")
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintf(stdout, "Journal: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on the next change)")
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return false
	case info.IsDir():
		fmt.Fprintln(stdout, "  ❌ Error: path is a directory")
		return false
	default:
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	return true
}
