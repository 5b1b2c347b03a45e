// Package main is the entry point for the flo task runner.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/flo/cmd/flo/commands"
	"go.trai.ch/flo/internal/app"
	"go.trai.ch/flo/internal/core/domain"
	_ "go.trai.ch/flo/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrRunFailed) {
			// Failures are already reported through the run log.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
