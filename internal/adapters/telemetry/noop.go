// Package telemetry provides Telemetry port implementations.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/flo/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a no-op vertex.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noOpVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error {
	return nil
}

type noOpVertex struct{}

func (noOpVertex) Stdout() io.Writer { return io.Discard }
func (noOpVertex) Stderr() io.Writer { return io.Discard }
func (noOpVertex) Complete(error)    {}
func (noOpVertex) Cached()           {}
