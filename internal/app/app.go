// Package app implements the application layer for flo.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.trai.ch/flo/internal/adapters/runlog"
	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/flo/internal/engine/scheduler"
	"go.trai.ch/flo/internal/engine/stale"
	"go.trai.ch/zerr"
)

// App represents the main application logic: one instance per process,
// orchestrating one invocation at a time.
type App struct {
	configLoader ports.ConfigLoader
	detector     *stale.Detector
	scheduler    *scheduler.Scheduler
	lock         ports.RunLock
	store        ports.StateStore
	logger       ports.Logger

	runLogPath string
	stdout     io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	detector *stale.Detector,
	sched *scheduler.Scheduler,
	lock ports.RunLock,
	store ports.StateStore,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		detector:     detector,
		scheduler:    sched,
		lock:         lock,
		store:        store,
		logger:       log,
		runLogPath:   domain.DefaultRunLogPath(),
		stdout:       os.Stdout,
	}
}

// WithRunLogPath overrides the run log location. Used by tests.
func (a *App) WithRunLogPath(path string) *App {
	a.runLogPath = path
	return a
}

// WithStdout overrides the run log mirror destination. Used by tests.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Force   bool
	Only    string
	Skip    []string
	StartAt string
	Jobs    int
}

// Run executes one invocation: load the task list, take the store lock,
// classify, plan, and execute.
//
// The run-set is computed synchronously before any execution begins. Graph
// and lock errors abort before any state mutation; command failures are
// isolated per dependency subtree and aggregated into the returned error.
func (a *App) Run(ctx context.Context, opts RunOptions) (domain.RunResult, error) {
	graph, err := a.configLoader.Load(".")
	if err != nil {
		return domain.RunResult{}, zerr.Wrap(err, "failed to load configuration")
	}

	release, err := a.lock.Acquire()
	if err != nil {
		return domain.RunResult{}, err
	}
	defer release()

	log, err := runlog.Open(a.runLogPath, a.stdout)
	if err != nil {
		return domain.RunResult{}, err
	}
	defer log.Close() //nolint:errcheck // Best effort close on every exit path

	status, err := a.detector.Classify(ctx, graph, stale.Options{
		Force:     opts.Force,
		SkipPaths: opts.Skip,
	})
	if err != nil {
		return domain.RunResult{}, err
	}

	plan, err := scheduler.ComputePlan(graph, status, scheduler.Selection{
		Only:    opts.Only,
		StartAt: opts.StartAt,
	})
	if err != nil {
		return domain.RunResult{}, err
	}

	return a.scheduler.Execute(ctx, graph, plan, log, opts.Jobs)
}

// Status classifies every task and reports pending ones without executing.
func (a *App) Status(ctx context.Context) error {
	graph, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	status, err := a.detector.Classify(ctx, graph, stale.Options{})
	if err != nil {
		return err
	}

	pending := 0
	for _, id := range graph.Order() {
		if status[id].Pending() {
			_, _ = fmt.Fprintf(a.stdout, "stale: %s\n", id.String())
			pending++
		}
	}
	if pending == 0 {
		_, _ = fmt.Fprintln(a.stdout, runlog.NoTasksLine)
	}
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// IncludeInternals also removes the .flo state directory.
	IncludeInternals bool
}

// Clean removes derived output files and their store entries. External
// source files are never touched.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	graph, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	release, err := a.lock.Acquire()
	if err != nil {
		return err
	}
	defer release()

	var errs error
	for _, out := range graph.DerivedOutputs() {
		if err := os.Remove(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove output"), "path", out))
			continue
		}
		a.logger.Info("removed " + out)
	}

	if err := a.store.Reset(); err != nil {
		errs = errors.Join(errs, err)
	}

	if opts.IncludeInternals {
		// Removes the store file, the run log, and the held lock file.
		if err := os.RemoveAll(domain.DefaultFloPath()); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, "failed to remove state directory"))
		}
	}

	return errs
}
