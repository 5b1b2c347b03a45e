package domain

import "path/filepath"

const (
	// FloDirName is the name of the internal workspace directory.
	FloDirName = ".flo"

	// StateFileName is the name of the fingerprint store file.
	StateFileName = "state.json"

	// RunLogFileName is the name of the append-only run log file.
	RunLogFileName = "run.log"

	// LockFileName is the name of the whole-run exclusive lock file.
	LockFileName = "lock"

	// FloFileName is the name of the project configuration file.
	FloFileName = "flo.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultFloPath returns the default root directory for flo metadata.
func DefaultFloPath() string {
	return FloDirName
}

// DefaultStatePath returns the default path for the fingerprint store.
func DefaultStatePath() string {
	return filepath.Join(FloDirName, StateFileName)
}

// DefaultRunLogPath returns the default path for the run log.
func DefaultRunLogPath() string {
	return filepath.Join(FloDirName, RunLogFileName)
}

// DefaultLockPath returns the default path for the lock file.
func DefaultLockPath() string {
	return filepath.Join(FloDirName, LockFileName)
}
