package domain

import "time"

// Fingerprint is a deterministic, content-derived identifier for a file or
// a command specification. Two files with identical byte content have
// identical fingerprints on every platform; modification times and
// permissions never contribute.
type Fingerprint string

// FingerprintMissing is the sentinel fingerprint for a path that does not exist.
const FingerprintMissing Fingerprint = "missing"

// Missing reports whether the fingerprint is the missing-file sentinel.
func (f Fingerprint) Missing() bool {
	return f == FingerprintMissing
}

// Snapshot is the durable record written for a task at the end of its last
// successful run. It is the only persisted state besides the run log and is
// written exclusively on confirmed success, never on suppression or failure.
type Snapshot struct {
	TaskID    string                 `json:"task_id"`
	Inputs    map[string]Fingerprint `json:"inputs,omitempty"`
	Outputs   map[string]Fingerprint `json:"outputs,omitempty"`
	Command   Fingerprint            `json:"command"`
	Timestamp time.Time              `json:"timestamp"`
}
