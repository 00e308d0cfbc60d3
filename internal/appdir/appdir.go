// Package appdir names the files and directories task-cli reads and writes.
package appdir

import "path/filepath"

const (
	// AppName is the program name, also used for OS config directories.
	AppName = "task-cli"

	// Dir is the name of the task-cli state directory, under the home
	// directory for user state and under the working directory for project
	// state.
	Dir = ".task-cli"

	// DefaultTaskFile is the default task file name (in the working directory).
	DefaultTaskFile = "data.json"

	// DefaultSchemaFile is the schema file name written by init (inside Dir).
	DefaultSchemaFile = "task-file.schema.json"

	// ConfigFile is the config file name.
	ConfigFile = AppName + ".toml"
)

// ProjectConfigNames returns the project config file names in lookup order.
func ProjectConfigNames() []string {
	return []string{ConfigFile, "." + ConfigFile}
}

// ProjectConfigPath returns the preferred project config path in workDir.
func ProjectConfigPath(workDir string) string {
	return joinPath(workDir, ConfigFile)
}

// DirPath returns the full path to the .task-cli directory within workDir.
func DirPath(workDir string) string {
	return joinPath(workDir, Dir)
}

// SchemaPath returns the full path to the schema file within workDir.
func SchemaPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultSchemaFile)
}

// UserConfigPath returns ~/.task-cli/task-cli.toml for the given home.
func UserConfigPath(home string) string {
	return filepath.Join(home, Dir, ConfigFile)
}

func joinPath(workDir, name string) string {
	if workDir == "." || workDir == "" {
		return name
	}
	return filepath.Join(workDir, name)
}
