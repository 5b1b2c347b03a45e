package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flo/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/flo/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/flo/internal/adapters/state"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/flo/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/flo/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			state.StoreNodeID,
			fs.FingerprinterNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(executor, store, fingerprinter, telemetry), nil
		},
	})
}
