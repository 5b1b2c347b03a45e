package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunLock = (*Lock)(nil)

// Lock is the whole-run exclusive lock over the state store, implemented as
// a create-exclusive lock file containing the holder's pid.
type Lock struct {
	path string
}

// NewLock creates a Lock for the file at the given path.
func NewLock(path string) *Lock {
	return &Lock{path: filepath.Clean(path)}
}

// Acquire takes the lock. It returns domain.ErrStoreLocked if another
// invocation holds it. The returned release function removes the lock file
// and must be called on every exit path.
func (l *Lock) Acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create lock directory")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm) //nolint:gosec // Path is cleaned and provided by trusted caller
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, zerr.With(domain.ErrStoreLocked, "path", l.path)
		}
		return nil, zerr.Wrap(err, "failed to create lock file")
	}

	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()

	return func() {
		_ = os.Remove(l.path)
	}, nil
}
