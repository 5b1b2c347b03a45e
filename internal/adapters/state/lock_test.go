package state_test

import (
	"errors"
	"path/filepath"
	"testing"

	"go.trai.ch/flo/internal/adapters/state"
	"go.trai.ch/flo/internal/core/domain"
)

func TestLock_Exclusive(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), ".flo", "lock")
	lock := state.NewLock(lockPath)

	release, err := lock.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// A second invocation must be refused while the lock is held.
	if _, err := state.NewLock(lockPath).Acquire(); !errors.Is(err, domain.ErrStoreLocked) {
		t.Fatalf("expected ErrStoreLocked, got %v", err)
	}

	release()

	// After release the lock is available again.
	release2, err := lock.Acquire()
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	release2()
}

func TestLock_ReleaseIdempotent(t *testing.T) {
	lock := state.NewLock(filepath.Join(t.TempDir(), "lock"))

	release, err := lock.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	release()
	release() // second call must be harmless
}
