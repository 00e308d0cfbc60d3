package config

import (
	"flag"

	"github.com/nibzard/task-cli/internal/appdir"
)

// parseFlags defines the global flags on fs, parses args, and applies the
// flags that were set. Parsing stops at the first non-flag argument.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appdir.AppName, flag.ContinueOnError)
	}

	var (
		taskFile, schemaFile, logDir string
		hookCommand                  string
		logLevel, logFormat          string
		atomicWrite, journal         bool
		logTimestamps, logCaller     bool
	)

	fs.StringVar(&taskFile, "file", cfg.TaskFile, "Path to the task file")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "Path to a JSON Schema for doctor (default: bundled)")
	fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Journal base directory")
	fs.BoolVar(&atomicWrite, "atomic-write", cfg.AtomicWrite, "Save via temp file and rename")
	fs.BoolVar(&journal, "journal", cfg.Journal, "Record state-changing commands in the journal")
	fs.StringVar(&hookCommand, "hook", cfg.HookCommand, "Command to run after each change")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Apply only the flags that were explicitly set
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			setSource(&cfg.TaskFile, taskFile, sources, "task_file", SourceFlag)
		case "schema":
			setSource(&cfg.SchemaFile, schemaFile, sources, "schema_file", SourceFlag)
		case "log-dir":
			setSource(&cfg.LogDir, logDir, sources, "log_dir", SourceFlag)
		case "atomic-write":
			setSource(&cfg.AtomicWrite, atomicWrite, sources, "atomic_write", SourceFlag)
		case "journal":
			setSource(&cfg.Journal, journal, sources, "journal", SourceFlag)
		case "hook":
			setSource(&cfg.HookCommand, hookCommand, sources, "hook_command", SourceFlag)
		case "log-level":
			setSource(&cfg.LogLevel, logLevel, sources, "log_level", SourceFlag)
		case "log-format":
			setSource(&cfg.LogFormat, logFormat, sources, "log_format", SourceFlag)
		case "log-timestamps":
			setSource(&cfg.LogTimestamps, logTimestamps, sources, "log_timestamps", SourceFlag)
		case "log-caller":
			setSource(&cfg.LogCaller, logCaller, sources, "log_caller", SourceFlag)
		}
	})

	return nil
}
