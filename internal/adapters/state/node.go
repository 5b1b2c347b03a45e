package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the state store Graft node.
	StoreNodeID graft.ID = "adapter.state.store"
	// LockNodeID is the unique identifier for the run lock Graft node.
	LockNodeID graft.ID = "adapter.state.lock"
)

func init() {
	graft.Register(graft.Node[ports.StateStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StateStore, error) {
			return NewStore(domain.DefaultStatePath())
		},
	})

	graft.Register(graft.Node[ports.RunLock]{
		ID:        LockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunLock, error) {
			return NewLock(domain.DefaultLockPath()), nil
		},
	})
}
