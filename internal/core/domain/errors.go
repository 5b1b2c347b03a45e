package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateOutput is returned when two tasks declare the same output path.
	ErrDuplicateOutput = zerr.New("duplicate output")

	// ErrDuplicateTask is returned when two tasks in the resolved list share an ID.
	ErrDuplicateTask = zerr.New("duplicate task")

	// ErrCycleDetected is returned when the dependency relation contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrDanglingInput is returned in strict mode when an input is neither a
	// produced output nor a pre-existing source file.
	ErrDanglingInput = zerr.New("dangling input")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoProducer is returned when a path named by a selection flag is not
	// produced by any task.
	ErrNoProducer = zerr.New("no task produces path")

	// ErrStoreLocked is returned when another invocation holds the state store lock.
	ErrStoreLocked = zerr.New("state store locked by another invocation")

	// ErrStalenessCompute is returned when fingerprinting fails while
	// classifying tasks, making the run-set unreliable.
	ErrStalenessCompute = zerr.New("staleness computation failed")

	// ErrCommandFailed is returned when a task's command exits with failure.
	ErrCommandFailed = zerr.New("command failed")

	// ErrRunFailed is the aggregate error for an invocation in which at least
	// one task failed.
	ErrRunFailed = zerr.New("run failed")
)
