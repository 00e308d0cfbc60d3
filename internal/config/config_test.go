package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and the OS config dir at empty temp dirs, clears the
// TASK_CLI_* variables, and changes into a fresh working directory.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{
		EnvTaskFile, EnvSchemaFile, EnvAtomicWrite, EnvJournal, EnvLogDir,
		EnvHook, EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller,
	} {
		t.Setenv(env, "")
	}
	chdirForTest(t, work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TaskFile != DefaultTaskFile {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, DefaultTaskFile)
	}
	if cfg.AtomicWrite != true {
		t.Errorf("AtomicWrite: got %v, want true", cfg.AtomicWrite)
	}
	if cfg.Journal != false {
		t.Errorf("Journal: got %v, want false", cfg.Journal)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	home, work := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config

	if cfg.TaskFile != filepath.Join(work, "data.json") {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, filepath.Join(work, "data.json"))
	}
	if cfg.LogDir != filepath.Join(home, ".task-cli") {
		t.Errorf("LogDir: got %q, want expanded ~/.task-cli", cfg.LogDir)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.GetConfigFile() != "" {
		t.Errorf("GetConfigFile: got %q, want empty", cws.GetConfigFile())
	}
}

func TestLoadLayers(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".task-cli", "task-cli.toml"), `
task_file = "user.json"
journal = true
log_level = "debug"
`)
	writeFile(t, filepath.Join(work, "task-cli.toml"), `
task_file = "project.json"
atomic_write = false
`)
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogLevel, "warn")

	fs := newFlagSet()
	cws, err := LoadWithSources(fs, []string{"-log-level", "error", "list-all"})
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		got    any
		want   any
		source ConfigSource
	}{
		{"task_file", cfg.TaskFile, filepath.Join(work, "project.json"), SourceProjFile},
		{"journal", cfg.Journal, true, SourceUserFile},
		{"atomic_write", cfg.AtomicWrite, false, SourceProjFile},
		{"log_format", cfg.LogFormat, "json", SourceEnv},
		{"log_level", cfg.LogLevel, "error", SourceFlag},
		{"log_caller", cfg.LogCaller, false, SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("value: got %v, want %v", tt.got, tt.want)
			}
			if cws.Sources[tt.field] != tt.source {
				t.Errorf("source: got %q, want %q", cws.Sources[tt.field], tt.source)
			}
		})
	}

	if rest := fs.Args(); len(rest) != 1 || rest[0] != "list-all" {
		t.Errorf("remaining args: got %v, want [list-all]", rest)
	}
	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v, want user and project", cws.Files)
	}
	if cws.GetConfigFile() != "task-cli.toml" {
		t.Errorf("GetConfigFile: got %q, want task-cli.toml", cws.GetConfigFile())
	}
}

func TestFileValueEqualToDefaultIsAttributed(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".task-cli.toml"), "atomic_write = true\n")

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cws.Sources["atomic_write"] != SourceProjFile {
		t.Errorf("source: got %q, want project file", cws.Sources["atomic_write"])
	}
	if cws.Sources["journal"] != SourceDefault {
		t.Errorf("journal source: got %q, want default", cws.Sources["journal"])
	}
}

func TestOSUserConfigDir(t *testing.T) {
	home, _ := isolate(t)
	xdg := filepath.Join(home, ".config")
	writeFile(t, filepath.Join(xdg, "task-cli", "task-cli.toml"), `log_format = "logfmt"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if osUserConfigDir() == xdg && cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt from %s", cfg.LogFormat, xdg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed toml", func(t *testing.T) {
		_, work := isolate(t)
		writeFile(t, filepath.Join(work, "task-cli.toml"), "task_file = \n")
		if _, err := Load(newFlagSet(), nil); err == nil || !strings.Contains(err.Error(), "project config") {
			t.Errorf("got %v, want project config error", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, work := isolate(t)
		writeFile(t, filepath.Join(work, "task-cli.toml"), "max_iterations = 5\n")
		_, err := Load(newFlagSet(), nil)
		if err == nil || !strings.Contains(err.Error(), "max_iterations") {
			t.Errorf("got %v, want unknown key error", err)
		}
	})

	t.Run("bad env bool", func(t *testing.T) {
		isolate(t)
		t.Setenv(EnvJournal, "maybe")
		_, err := Load(newFlagSet(), nil)
		if err == nil || !strings.Contains(err.Error(), EnvJournal) {
			t.Errorf("got %v, want %s error", err, EnvJournal)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		isolate(t)
		if _, err := Load(newFlagSet(), []string{"-priority", "1"}); err == nil {
			t.Error("expected flag error")
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	_, work := isolate(t)
	t.Setenv(EnvTaskFile, "tasks/mine.json")
	t.Setenv(EnvAtomicWrite, "off")
	t.Setenv(EnvJournal, "yes")
	t.Setenv(EnvLogDir, "/var/log/task-cli")
	t.Setenv(EnvLogTimestamps, "1")
	t.Setenv(EnvHook, "notify-send")

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := cws.Config
	if cfg.TaskFile != filepath.Join(work, "tasks", "mine.json") {
		t.Errorf("TaskFile: got %q", cfg.TaskFile)
	}
	if cfg.AtomicWrite || !cfg.Journal || !cfg.LogTimestamps {
		t.Errorf("bools: atomic=%v journal=%v timestamps=%v", cfg.AtomicWrite, cfg.Journal, cfg.LogTimestamps)
	}
	if cfg.LogDir != "/var/log/task-cli" {
		t.Errorf("LogDir: got %q", cfg.LogDir)
	}
	if cfg.HookCommand != "notify-send" {
		t.Errorf("HookCommand: got %q", cfg.HookCommand)
	}
	for _, field := range []string{"task_file", "atomic_write", "journal", "log_dir", "log_timestamps", "hook_command"} {
		if cws.Sources[field] != SourceEnv {
			t.Errorf("source of %s: got %q, want environment", field, cws.Sources[field])
		}
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvJournal, "true")
	abs := filepath.Join(t.TempDir(), "abs.json")

	cfg, err := Load(newFlagSet(), []string{"-journal=false", "-file", abs, "-atomic-write=false", "-hook", "./on-change"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Journal {
		t.Error("Journal: flag should override env")
	}
	if cfg.TaskFile != abs {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, abs)
	}
	if cfg.AtomicWrite {
		t.Error("AtomicWrite: got true, want false")
	}
	if cfg.HookCommand != "./on-change" {
		t.Errorf("HookCommand: got %q, want ./on-change", cfg.HookCommand)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "yaml" }, "log_format"},
		{"empty task file", func(c *Config) { c.TaskFile = " " }, "task_file"},
		{"journal without dir", func(c *Config) { c.Journal = true; c.LogDir = "" }, "log_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		if v, err := parseBool(s); err != nil || !v {
			t.Errorf("parseBool(%q) = %v, %v", s, v, err)
		}
	}
	for _, s := range []string{"0", "false", "No", "off"} {
		if v, err := parseBool(s); err != nil || v {
			t.Errorf("parseBool(%q) = %v, %v", s, v, err)
		}
	}
	if _, err := parseBool("sometimes"); err == nil {
		t.Error("parseBool(sometimes) should fail")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv("TASKS_ROOT", "/srv/tasks")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/notes/data.json", filepath.Join(home, "notes", "data.json")},
		{"$TASKS_ROOT/data.json", "/srv/tasks/data.json"},
		{"plain.json", "plain.json"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		t.Errorf("example config has unknown keys: %v", undecoded)
	}
	if cfg.TaskFile != DefaultTaskFile || !cfg.AtomicWrite || cfg.Journal {
		t.Errorf("example config disagrees with defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("example config invalid: %v", err)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
