// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
// Task commands are opaque argument lists; tasks differ only in data, never
// in behavior.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the task's command, streaming combined stdout/stderr to out.
// The environment is os.Environ() with the task's overrides applied on top.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, out io.Writer) error {
	if len(task.Command) == 0 {
		return nil
	}

	name := task.Command[0]
	args := task.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Env = resolveEnvironment(os.Environ(), task.Environment)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		exitCode := -1 // Unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(domain.ErrCommandFailed, "task", task.ID.String()), "exit_code", exitCode)
	}

	return nil
}

// resolveEnvironment applies the task's overrides on top of the system
// environment. The result order is deterministic only per-key; consumers
// must not depend on slice order.
func resolveEnvironment(sysEnv []string, taskEnv map[string]string) []string {
	if len(taskEnv) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(taskEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
