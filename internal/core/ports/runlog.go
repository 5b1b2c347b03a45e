package ports

import (
	"io"

	"go.trai.ch/flo/internal/core/domain"
)

// RunLog is the append-only record of an invocation, consumed by external
// tooling for diagnostics and by tests for determinism verification.
//
// Implementations must write records in the order Append is called; the
// scheduler guarantees that order matches the deterministic plan order even
// under parallel execution. Raw writes carry task command output.
//
//go:generate go run go.uber.org/mock/mockgen -source=runlog.go -destination=mocks/mock_runlog.go -package=mocks
type RunLog interface {
	io.Writer

	// Append records one attempted task execution.
	Append(rec domain.RunRecord) error

	// NoTasksOutOfSync records that the run-set was empty and nothing executed.
	NoTasksOutOfSync() error

	// Close flushes and closes the log. It must be called on every exit path.
	Close() error
}
