package config

import (
	"fmt"
	"os"
)

// Environment variables read by loadFromEnv.
const (
	EnvTaskFile      = "TASK_CLI_FILE"
	EnvSchemaFile    = "TASK_CLI_SCHEMA"
	EnvAtomicWrite   = "TASK_CLI_ATOMIC_WRITE"
	EnvJournal       = "TASK_CLI_JOURNAL"
	EnvLogDir        = "TASK_CLI_LOG_DIR"
	EnvHook          = "TASK_CLI_HOOK"
	EnvLogLevel      = "TASK_CLI_LOG_LEVEL"
	EnvLogFormat     = "TASK_CLI_LOG_FORMAT"
	EnvLogTimestamps = "TASK_CLI_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASK_CLI_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables and updates
// source tracking.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	stringVars := []struct {
		env    string
		field  string
		target *string
	}{
		{EnvTaskFile, "task_file", &cfg.TaskFile},
		{EnvSchemaFile, "schema_file", &cfg.SchemaFile},
		{EnvLogDir, "log_dir", &cfg.LogDir},
		{EnvHook, "hook_command", &cfg.HookCommand},
		{EnvLogLevel, "log_level", &cfg.LogLevel},
		{EnvLogFormat, "log_format", &cfg.LogFormat},
	}
	for _, s := range stringVars {
		if v := os.Getenv(s.env); v != "" {
			setSource(s.target, v, sources, s.field, SourceEnv)
		}
	}

	bools := []struct {
		env    string
		field  string
		target *bool
	}{
		{EnvAtomicWrite, "atomic_write", &cfg.AtomicWrite},
		{EnvJournal, "journal", &cfg.Journal},
		{EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps},
		{EnvLogCaller, "log_caller", &cfg.LogCaller},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
		setSource(b.target, parsed, sources, b.field, SourceEnv)
	}

	return nil
}
