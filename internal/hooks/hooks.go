// Package hooks runs the user's command after a task change is saved.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// EnvDescription carries the changed task's description to the hook.
const EnvDescription = "TASK_CLI_DESCRIPTION"

// Options configures a hook invocation.
type Options struct {
	Command     string
	Event       string // the command that made the change, e.g. "add"
	ID          int
	Status      string
	Description string
	TaskFile    string
	WorkDir     string

	// Output receives the hook's stdout and stderr. Defaults to os.Stderr
	// so the hook cannot interleave with command results.
	Output io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as
//
//	<command> <event> <id> <status> <task file>
//
// An empty command is a no-op.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{opts.Event, strconv.Itoa(opts.ID), opts.Status, opts.TaskFile}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = append(os.Environ(), EnvDescription+"="+opts.Description)
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
