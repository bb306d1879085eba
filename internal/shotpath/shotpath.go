// Package shotpath allocates numbered screenshot file names.
package shotpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MaxIndex is the highest screenshot number that will be handed out.
const MaxIndex = 999

var (
	// ErrDirectoryUnavailable is returned when the screenshot directory
	// cannot be created or its entries cannot be inspected.
	ErrDirectoryUnavailable = errors.New("shotpath: screenshot directory unavailable")

	// ErrExhausted is returned when every index up to MaxIndex is taken.
	ErrExhausted = errors.New("shotpath: too many saved screenshots")
)

// Result is a free screenshot slot.
type Result struct {
	Index int
	Path  string
}

// FileName returns the base name of the allocated path.
func (r Result) FileName() string {
	return filepath.Base(r.Path)
}

// Name returns the file name used for screenshot index i.
func Name(i int, ext string) string {
	return fmt.Sprintf("SCR%d%s", i, ext)
}

// Allocate ensures dir exists and returns the lowest index in 1..MaxIndex
// for which dir/SCR{index}{ext} does not exist yet.
func Allocate(dir, ext string) (Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrDirectoryUnavailable, dir, err)
	}

	for i := 1; i <= MaxIndex; i++ {
		path := filepath.Join(dir, Name(i, ext))
		_, err := os.Lstat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return Result{Index: i, Path: path}, nil
		case err != nil:
			return Result{}, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
		}
	}

	return Result{}, fmt.Errorf("%w in %s", ErrExhausted, dir)
}
