package runlog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/flo/internal/adapters/runlog"
	"go.trai.ch/flo/internal/core/domain"
)

func TestLog_AppendMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var mirror bytes.Buffer

	log, err := runlog.Open(path, &mirror)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	records := []domain.RunRecord{
		{TaskID: domain.NewInternedString("a"), Outcome: domain.OutcomeRan, Seq: 0},
		{TaskID: domain.NewInternedString("b"), Outcome: domain.OutcomeCut, Seq: 1},
		{TaskID: domain.NewInternedString("c"), Outcome: domain.OutcomeFailed, Seq: 2},
		{TaskID: domain.NewInternedString("d"), Outcome: domain.OutcomeSkipped, Seq: 3},
	}
	for _, rec := range records {
		if err := log.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := "-> a\n-- cut b\n!! failed c\n.. skipped d\n"
	if mirror.String() != want {
		t.Errorf("unexpected mirror content:\n%q\nwant:\n%q", mirror.String(), want)
	}

	// The file carries the exact same bytes as the mirror.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if string(data) != want {
		t.Errorf("unexpected file content:\n%q\nwant:\n%q", string(data), want)
	}
}

func TestLog_NoTasksOutOfSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var mirror bytes.Buffer

	log, err := runlog.Open(path, &mirror)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := log.NoTasksOutOfSync(); err != nil {
		t.Fatalf("NoTasksOutOfSync failed: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if mirror.String() != runlog.NoTasksLine+"\n" {
		t.Errorf("unexpected content: %q", mirror.String())
	}
}

func TestLog_TruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	log1, err := runlog.Open(path, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	_ = log1.Append(domain.RunRecord{TaskID: domain.NewInternedString("old"), Outcome: domain.OutcomeRan})
	_ = log1.Close()

	log2, err := runlog.Open(path, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	_ = log2.Append(domain.RunRecord{TaskID: domain.NewInternedString("new"), Outcome: domain.OutcomeRan})
	_ = log2.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if string(data) != "-> new\n" {
		t.Errorf("expected log truncated to latest run, got %q", string(data))
	}
}

func TestLog_RawOutputInterleaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var mirror bytes.Buffer

	log, err := runlog.Open(path, &mirror)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := log.Write([]byte("compiling main\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := log.Append(domain.RunRecord{TaskID: domain.NewInternedString("compile"), Outcome: domain.OutcomeRan}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := "compiling main\n-> compile\n"
	if mirror.String() != want {
		t.Errorf("unexpected content: %q", mirror.String())
	}
}

func TestLog_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".flo", "run.log")

	log, err := runlog.Open(path, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = log.Close()
}
