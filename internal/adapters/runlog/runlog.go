// Package runlog implements the append-only run log.
//
// Output is split between a mirror writer (normally stdout) and a plain-text
// log file, which is convenient for inspecting long runs after the fact and
// is the artifact external tooling matches against.
package runlog

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Line markers recognized by external tooling.
const (
	// NoTasksLine is emitted when the run-set is empty.
	NoTasksLine = "no tasks are out of sync"
	// RanMarker prefixes each executed task.
	RanMarker = "-> "
	// CutMarker prefixes each skip-suppressed task.
	CutMarker = "-- cut "
	// FailedMarker prefixes each task whose command failed.
	FailedMarker = "!! failed "
	// SkippedMarker prefixes each task not attempted because an upstream
	// dependency failed.
	SkippedMarker = ".. skipped "
)

var _ ports.RunLog = (*Log)(nil)

// Log writes run records and raw task output to the log file and the mirror.
type Log struct {
	mu     sync.Mutex
	file   *os.File
	mirror io.Writer
}

// Open creates the log file (truncating any previous run's log) and returns
// a Log mirroring to the given writer.
func Open(path string, mirror io.Writer) (*Log, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create run log directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Path is cleaned and provided by trusted caller
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open run log")
	}

	return &Log{file: f, mirror: mirror}, nil
}

// Append records one attempted task execution.
func (l *Log) Append(rec domain.RunRecord) error {
	var marker string
	switch rec.Outcome {
	case domain.OutcomeRan:
		marker = RanMarker
	case domain.OutcomeCut:
		marker = CutMarker
	case domain.OutcomeFailed:
		marker = FailedMarker
	case domain.OutcomeSkipped:
		marker = SkippedMarker
	}
	return l.writeLine(marker + rec.TaskID.String())
}

// NoTasksOutOfSync records that the run-set was empty.
func (l *Log) NoTasksOutOfSync() error {
	return l.writeLine(NoTasksLine)
}

// Write appends raw task command output.
func (l *Log) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.mirror.Write(p); err != nil {
		return 0, zerr.Wrap(err, "failed to mirror output")
	}
	if _, err := l.file.Write(p); err != nil {
		return 0, zerr.Wrap(err, "failed to write run log")
	}
	return len(p), nil
}

// Close flushes and closes the log file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return zerr.Wrap(err, "failed to close run log")
	}
	return nil
}

func (l *Log) writeLine(line string) error {
	_, err := l.Write([]byte(line + "\n"))
	return err
}
