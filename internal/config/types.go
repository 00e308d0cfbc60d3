package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/task-cli/internal/appdir"
	"github.com/nibzard/task-cli/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were applied, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTaskFile    = appdir.DefaultTaskFile
	DefaultLogDir      = "~/" + appdir.Dir
	DefaultAtomicWrite = true
	DefaultJournal     = false
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config holds the full configuration for task-cli.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Storage
	AtomicWrite bool `toml:"atomic_write"`

	// Journal of state-changing commands under LogDir
	Journal bool `toml:"journal"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"schema_file",
		"log_dir",
		"atomic_write",
		"journal",
		"hook_command",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.TaskFile) == "" {
		problems = append(problems, "task_file is empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error, fatal", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		problems = append(problems, fmt.Sprintf("log_format %q is not one of text, json, logfmt", c.LogFormat))
	}
	if c.Journal && strings.TrimSpace(c.LogDir) == "" {
		problems = append(problems, "journal is enabled but log_dir is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
