package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# task-cli configuration file
# Values can be overridden by TASK_CLI_* environment variables or global flags

# Task file (relative to the working directory)
task_file = "data.json"

# JSON Schema used by "task-cli doctor" (bundled schema when empty)
# schema_file = ".task-cli/task-file.schema.json"

# Save through a temp file and rename so an interrupted write cannot
# truncate the task file
atomic_write = true

# Record every state-changing command in <log_dir>/<project>/journal.jsonl
journal = false

# Command run after every saved change, with arguments
# <command> <id> <status> <task file>
# hook_command = "./scripts/on-task-change.sh"

# Journal base directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.task-cli"

# Diagnostics on stderr
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
