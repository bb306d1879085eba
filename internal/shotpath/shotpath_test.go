package shotpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
}

func TestAllocateEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	res, err := Allocate(dir, ".png")
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if res.Index != 1 {
		t.Errorf("Index = %d, expected 1", res.Index)
	}
	if want := filepath.Join(dir, "SCR1.png"); res.Path != want {
		t.Errorf("Path = %q, expected %q", res.Path, want)
	}
	if res.FileName() != "SCR1.png" {
		t.Errorf("FileName() = %q, expected SCR1.png", res.FileName())
	}
}

func TestAllocateSkipsTaken(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "SCR1.png"))
	touch(t, filepath.Join(dir, "SCR2.png"))

	res, err := Allocate(dir, ".png")
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if res.Index != 3 {
		t.Errorf("Index = %d, expected 3", res.Index)
	}
}

func TestAllocateFillsGaps(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "SCR1.bmp"))
	touch(t, filepath.Join(dir, "SCR3.bmp"))

	res, err := Allocate(dir, ".bmp")
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if res.Index != 2 {
		t.Errorf("Index = %d, expected 2", res.Index)
	}
}

func TestAllocateExtensionsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "SCR1.bmp"))

	res, err := Allocate(dir, ".png")
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if res.Index != 1 {
		t.Errorf("Index = %d, expected 1 (a .bmp should not block .png)", res.Index)
	}
}

func TestAllocateCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "user", "screenshot")

	res, err := Allocate(dir, ".png")
	if err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
	if res.Index != 1 {
		t.Errorf("Index = %d, expected 1", res.Index)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory %s was not created", dir)
	}
}

func TestAllocateExhausted(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= MaxIndex; i++ {
		touch(t, filepath.Join(dir, Name(i, ".png")))
	}

	_, err := Allocate(dir, ".png")
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("Allocate() error = %v, expected ErrExhausted", err)
	}
}

func TestAllocateDirectoryUnavailable(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "screenshot")
	touch(t, blocker)

	_, err := Allocate(filepath.Join(blocker, "inner"), ".png")
	if !errors.Is(err, ErrDirectoryUnavailable) {
		t.Errorf("Allocate() error = %v, expected ErrDirectoryUnavailable", err)
	}
}

func TestAllocateStatFailure(t *testing.T) {
	dir := t.TempDir()

	// Every candidate name is too long to stat.
	ext := "." + strings.Repeat("x", 300)
	_, err := Allocate(dir, ext)
	if !errors.Is(err, ErrDirectoryUnavailable) {
		t.Errorf("Allocate() error = %v, expected ErrDirectoryUnavailable", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Error("stat failure should not be reported as ErrExhausted")
	}
}
