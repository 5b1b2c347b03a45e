package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flo/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/flo/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/flo/internal/adapters/state"  //nolint:depguard // Wired in app layer
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/flo/internal/engine/scheduler"
	"go.trai.ch/flo/internal/engine/stale"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			stale.NodeID,
			scheduler.NodeID,
			state.StoreNodeID,
			state.LockNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	detector, err := graft.Dep[*stale.Detector](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}

	lock, err := graft.Dep[ports.RunLock](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, detector, sched, lock, store, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(a, log, loader), nil
}
