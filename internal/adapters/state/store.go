// Package state implements the durable fingerprint store and the whole-run
// exclusive lock protecting it.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StateStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.Snapshot
}

// NewStore creates a new StateStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.Snapshot),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read state store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal state store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal state store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for state store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write state store")
	}

	return nil
}

// Get retrieves the snapshot recorded at the task's last successful run.
func (s *Store) Get(taskID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.cache[taskID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

// Put stores the snapshot for a task that just completed successfully.
func (s *Store) Put(snap domain.Snapshot) error {
	s.mu.Lock()
	s.cache[snap.TaskID] = snap
	s.mu.Unlock()

	return s.save()
}

// Delete removes a single task's snapshot.
func (s *Store) Delete(taskID string) error {
	s.mu.Lock()
	delete(s.cache, taskID)
	s.mu.Unlock()

	return s.save()
}

// Reset removes every snapshot.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.cache = make(map[string]domain.Snapshot)
	s.mu.Unlock()

	return s.save()
}
