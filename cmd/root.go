// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/appdir"
	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/hooks"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/todo"
	"github.com/nibzard/task-cli/internal/tracker"
	"github.com/nibzard/task-cli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Command output. Swapped in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the task-cli CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, stderr)
		return errors.New("no command given")
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	switch subcommand {
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	}

	cfg := cws.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.NewConsoleFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	// Every mutation in this invocation carries the same timestamp.
	now := time.Now()

	if tc, ok := taskCommands[subcommand]; ok {
		return runTaskCommand(ctx, cfg, logger, now, subcommand, tc, remainingArgs)
	}

	switch subcommand {
	case "board":
		return boardCommand(ctx, cfg, now, remainingArgs)
	case "doctor":
		return doctorCommand(cws, logger, now, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "init":
		return initCommand(cfg, logger, remainingArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// taskCommand is one of the commands that read or change the task list.
type taskCommand struct {
	params  []string
	mutates bool
	run     func(t *tracker.Tracker, args []string) (string, error)
}

var taskCommands = map[string]taskCommand{
	"add": {
		params:  []string{"<description>"},
		mutates: true,
		run: func(t *tracker.Tracker, args []string) (string, error) {
			description, err := parseDescription(args[0])
			if err != nil {
				return "", err
			}
			return t.Add(description)
		},
	},
	"update": {
		params:  []string{"<id>", "<description>"},
		mutates: true,
		run: func(t *tracker.Tracker, args []string) (string, error) {
			id, err := parseID(args[0])
			if err != nil {
				return "", err
			}
			description, err := parseDescription(args[1])
			if err != nil {
				return "", err
			}
			return t.Update(id, description)
		},
	},
	"delete": {
		params:  []string{"<id>"},
		mutates: true,
		run: func(t *tracker.Tracker, args []string) (string, error) {
			id, err := parseID(args[0])
			if err != nil {
				return "", err
			}
			return t.Delete(id)
		},
	},
	"mark-in-progress": {
		params:  []string{"<id>"},
		mutates: true,
		run: func(t *tracker.Tracker, args []string) (string, error) {
			id, err := parseID(args[0])
			if err != nil {
				return "", err
			}
			return t.MarkInProgress(id)
		},
	},
	"mark-done": {
		params:  []string{"<id>"},
		mutates: true,
		run: func(t *tracker.Tracker, args []string) (string, error) {
			id, err := parseID(args[0])
			if err != nil {
				return "", err
			}
			return t.MarkDone(id)
		},
	},
	"list": {
		params: []string{"<status>"},
		run: func(t *tracker.Tracker, args []string) (string, error) {
			return t.List(args[0])
		},
	},
	"list-all": {
		run: func(t *tracker.Tracker, _ []string) (string, error) {
			return t.ListAll()
		},
	},
}

// runTaskCommand checks the positional arguments, runs the command and
// prints its result line.
func runTaskCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, now time.Time, name string, tc taskCommand, args []string) error {
	if len(args) != len(tc.params) {
		usage := strings.TrimSpace("task-cli " + name + " " + strings.Join(tc.params, " "))
		return fmt.Errorf("%s expects %d argument(s), got %d (usage: %s)", name, len(tc.params), len(args), usage)
	}

	opts := []tracker.Option{tracker.WithLogger(logger)}
	if tc.mutates && cfg.Journal {
		journal, err := logging.OpenJournal(cfg.LogDir, cfg.WorkDir)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer journal.Close()
		opts = append(opts, tracker.WithJournal(journal))
	}
	if tc.mutates && cfg.HookCommand != "" {
		opts = append(opts, tracker.WithHook(func(e logging.Entry) error {
			_, err := hooks.Invoke(ctx, hooks.Options{
				Command:     cfg.HookCommand,
				Event:       e.Command,
				ID:          e.ID,
				Status:      e.Status,
				Description: e.Description,
				TaskFile:    cfg.TaskFile,
				WorkDir:     cfg.WorkDir,
				Output:      stderr,
			})
			return err
		}))
	}

	t := tracker.New(newStore(cfg, logger), now, opts...)
	msg, err := tc.run(t, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, msg)
	return nil
}

func newStore(cfg *config.Config, logger *log.Logger) *todo.Store {
	return todo.NewStore(cfg.TaskFile,
		todo.WithLogger(logger),
		todo.WithAtomicWrite(cfg.AtomicWrite),
	)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be an integer", s)
	}
	return id, nil
}

func parseDescription(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.New("task description must not be empty")
	}
	return s, nil
}

// boardCommand launches the read-only terminal board.
func boardCommand(ctx context.Context, cfg *config.Config, now time.Time, args []string) error {
	fs := flag.NewFlagSet("task-cli board", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filter := fs.String("filter", "", "Start filtered to a status (todo|in-progress|done)")
	refresh := fs.Duration("refresh", time.Second, "How often to reload the task file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts := []ui.BoardOption{ui.WithRefreshInterval(*refresh)}
	if *filter != "" {
		status := todo.Status(*filter)
		if !status.Valid() {
			return fmt.Errorf("invalid filter %q (expected todo|in-progress|done)", *filter)
		}
		opts = append(opts, ui.WithFilter(status))
	}

	// Console diagnostics would draw over the board.
	t := tracker.New(newStore(cfg, logging.Discard()), now)
	return ui.RunBoard(ctx, t, cfg.TaskFile, opts...)
}

// tailCommand prints the last journal entries.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("task-cli tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 10, "Number of entries to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	path, err := logging.JournalPath(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("finding journal: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("finding journal: %w", err)
		}
		if !cfg.Journal {
			return fmt.Errorf("no journal at %s (enable it with -journal or journal = true)", path)
		}
		fmt.Fprintln(stdout, "No journal entries yet.")
		return nil
	}

	if *follow {
		fmt.Fprintf(stderr, "Tailing: %s (Ctrl+C to stop)\n", path)
	}
	return logging.Tail(ctx, stdout, path, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "task-cli version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "task-cli - track tasks in a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  task-cli [global options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>          Add a task")
	fmt.Fprintln(w, "  update <id> <description>  Change a task's description")
	fmt.Fprintln(w, "  delete <id>                Delete a task (later tasks move up one id)")
	fmt.Fprintln(w, "  mark-in-progress <id>      Mark a task as in progress")
	fmt.Fprintln(w, "  mark-done <id>             Mark a task as done")
	fmt.Fprintln(w, "  list <status>              List tasks with status (todo|in-progress|done)")
	fmt.Fprintln(w, "  list-all                   List all tasks")
	fmt.Fprintln(w, "  board                      Show tasks in a terminal board")
	fmt.Fprintln(w, "  doctor                     Check config and task file validity")
	fmt.Fprintln(w, "  tail                       Show the latest journal entries")
	fmt.Fprintln(w, "  init                       Create a task file, schema and config")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ids are positions: after a delete, list again before using an id.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Board Options (use with 'board' command):")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Start filtered to a status (todo|in-progress|done)")
	fmt.Fprintln(w, "  -refresh duration")
	fmt.Fprintln(w, "        How often to reload the task file (default 1s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Show every task")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of entries to show (0 = all) (default 10)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -force")
	fmt.Fprintln(w, "        Overwrite existing files")
	fmt.Fprintln(w, "  -skip-config")
	fmt.Fprintf(w, "        Do not write %s\n", appdir.ConfigFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintf(w, "  %-24s Task file path\n", config.EnvTaskFile)
	fmt.Fprintf(w, "  %-24s Save through a temp file (true|false)\n", config.EnvAtomicWrite)
	fmt.Fprintf(w, "  %-24s Record state changes (true|false)\n", config.EnvJournal)
	fmt.Fprintf(w, "  %-24s Journal base directory\n", config.EnvLogDir)
	fmt.Fprintf(w, "  %-24s Command to run after each change\n", config.EnvHook)
	fmt.Fprintf(w, "  %-24s Diagnostics level (debug|info|warn|error)\n", config.EnvLogLevel)
}
