package stale

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flo/internal/adapters/fs"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/flo/internal/adapters/state" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/flo/internal/core/ports"
)

// NodeID is the unique identifier for the staleness detector Graft node.
const NodeID graft.ID = "engine.stale"

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FingerprinterNodeID,
			state.StoreNodeID,
		},
		Run: func(ctx context.Context) (*Detector, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}

			return NewDetector(fingerprinter, store), nil
		},
	})
}
