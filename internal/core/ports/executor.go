package ports

import (
	"context"
	"io"

	"go.trai.ch/flo/internal/core/domain"
)

// Executor defines the interface for executing task commands.
//
// Tasks are opaque external commands to the core: they differ only in data,
// never in behavior.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the task's command, streaming its combined output to out.
	// It returns domain.ErrCommandFailed (with exit code metadata) when the
	// command exits with a non-zero status.
	Execute(ctx context.Context, task *domain.Task, out io.Writer) error
}
