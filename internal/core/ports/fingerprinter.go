package ports

import "go.trai.ch/flo/internal/core/domain"

// Fingerprinter computes deterministic content fingerprints.
//
// Fingerprints are derived from byte content only; modification times and
// permissions never contribute, so results are stable across platforms.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// File fingerprints a file's byte content. A path that does not exist
	// yields domain.FingerprintMissing without error; any other I/O failure
	// is an error.
	File(path string) (domain.Fingerprint, error)

	// Command fingerprints a task's command specification.
	Command(command []string) domain.Fingerprint
}
