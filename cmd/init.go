package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/appdir"
	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/todo"
)

// initCommand writes an empty task file, the bundled schema and an example
// project config. Existing files are kept unless -force is given.
func initCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("task-cli init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "Overwrite existing files")
	skipConfig := fs.Bool("skip-config", false, "Do not write "+appdir.ConfigFile)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	files := []initFile{
		{cfg.TaskFile, func(string) error {
			return newStore(cfg, logger).Save(todo.NewList())
		}},
		{appdir.SchemaPath(cfg.WorkDir), func(path string) error {
			return writeInitFile(path, todo.BundledSchema())
		}},
	}
	if !*skipConfig {
		files = append(files, initFile{appdir.ProjectConfigPath(cfg.WorkDir), func(path string) error {
			return writeInitFile(path, []byte(config.ExampleConfig()))
		}})
	}

	for _, f := range files {
		_, err := os.Stat(f.path)
		exists := err == nil
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", f.path, err)
		}
		if exists && !*force {
			fmt.Fprintf(stdout, "Skipped %s (exists, use -force to overwrite)\n", f.path)
			continue
		}
		if err := f.write(f.path); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Fprintf(stdout, "Created %s\n", f.path)
	}
	return nil
}

type initFile struct {
	path  string
	write func(path string) error
}

func writeInitFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
