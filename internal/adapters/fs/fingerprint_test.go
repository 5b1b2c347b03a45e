package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/flo/internal/adapters/fs"
)

func TestFingerprinter_File_ContentOnly(t *testing.T) {
	tmpDir := t.TempDir()
	f := fs.NewFingerprinter()

	pathA := filepath.Join(tmpDir, "a.txt")
	pathB := filepath.Join(tmpDir, "b.txt")
	if err := os.WriteFile(pathA, []byte("content"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(pathB, []byte("content"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	fpA, err := f.File(pathA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fpB, err := f.File(pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Identical content yields identical fingerprints regardless of path or mtime.
	if fpA != fpB {
		t.Errorf("expected identical fingerprints, got %s and %s", fpA, fpB)
	}

	if err := os.WriteFile(pathB, []byte("changed"), 0o600); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	fpB2, err := f.File(pathB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fpA == fpB2 {
		t.Error("expected fingerprint to change with content")
	}
}

func TestFingerprinter_File_TouchDoesNotChange(t *testing.T) {
	tmpDir := t.TempDir()
	f := fs.NewFingerprinter()

	path := filepath.Join(tmpDir, "a.txt")
	if err := os.WriteFile(path, []byte("stable"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	fp1, err := f.File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rewrite identical bytes: a fresh mtime must not matter.
	if err := os.WriteFile(path, []byte("stable"), 0o600); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	fp2, err := f.File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fp1 != fp2 {
		t.Errorf("expected identical fingerprints, got %s and %s", fp1, fp2)
	}
}

func TestFingerprinter_File_Missing(t *testing.T) {
	f := fs.NewFingerprinter()

	fp, err := f.File(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if !fp.Missing() {
		t.Errorf("expected missing sentinel, got %s", fp)
	}
}

func TestFingerprinter_Command_BoundaryStable(t *testing.T) {
	f := fs.NewFingerprinter()

	// Argument boundaries must contribute to the fingerprint.
	if f.Command([]string{"ab", "c"}) == f.Command([]string{"a", "bc"}) {
		t.Error("expected different fingerprints for different argument splits")
	}

	if f.Command([]string{"sh", "-c", "echo hi"}) != f.Command([]string{"sh", "-c", "echo hi"}) {
		t.Error("expected identical fingerprints for identical commands")
	}
}
