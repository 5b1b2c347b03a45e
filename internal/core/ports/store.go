package ports

import "go.trai.ch/flo/internal/core/domain"

// StateStore is the durable fingerprint store surviving across invocations.
//
// Entries are created on a task's first successful execution and replaced on
// each subsequent success. They are deleted only by an explicit clean
// operation.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get retrieves the snapshot recorded at the task's last successful run.
	// Returns nil, nil if the task has never completed successfully.
	Get(taskID string) (*domain.Snapshot, error)

	// Put stores the snapshot for a task that just completed successfully.
	Put(snap domain.Snapshot) error

	// Delete removes a single task's snapshot.
	Delete(taskID string) error

	// Reset removes every snapshot.
	Reset() error
}

// RunLock serializes invocations against the shared state store. At most one
// invocation may hold the lock, acquired before execution begins and released
// on every exit path.
type RunLock interface {
	// Acquire takes the whole-run exclusive lock. It returns
	// domain.ErrStoreLocked when another invocation holds it, and a release
	// function otherwise.
	Acquire() (release func(), err error)
}
