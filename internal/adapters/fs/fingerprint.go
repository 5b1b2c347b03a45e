// Package fs provides the filesystem-backed content fingerprinter.
package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes XXHash content fingerprints for files and command
// specifications. Fingerprints depend on byte content only.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// File computes the fingerprint of a file's byte content.
// A missing file yields the missing sentinel, not an error; every other I/O
// failure is surfaced so the caller can abort staleness computation.
func (f *Fingerprinter) File(path string) (domain.Fingerprint, error) {
	fh, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.FingerprintMissing, nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer fh.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, fh); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return domain.Fingerprint(fmt.Sprintf("%016x", hasher.Sum64())), nil
}

// Command computes the fingerprint of a command specification.
// Arguments are separated by NUL bytes so ["ab","c"] and ["a","bc"] differ.
func (f *Fingerprinter) Command(command []string) domain.Fingerprint {
	hasher := xxhash.New()
	for _, arg := range command {
		_, _ = hasher.WriteString(arg)
		_, _ = hasher.Write([]byte{0})
	}
	return domain.Fingerprint(fmt.Sprintf("%016x", hasher.Sum64()))
}
