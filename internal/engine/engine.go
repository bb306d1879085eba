// Package engine provides a registry of headless engine backends.
// Backends register themselves in init() functions keyed by the file
// extensions they can load, so the capture driver can open a park file
// without hardcoding which simulation and renderer implement it.
package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/parkshot/internal/capture"
)

// Engine is a headless instance of the simulation and its renderer.
type Engine interface {
	capture.Renderer
	capture.PaletteSource
	capture.SpriteCache
	capture.World

	// Name returns the backend identifier (e.g., "sketch").
	Name() string

	// Load reads a park file into the engine.
	Load(path string) error

	// StartPlaying leaves any intro or title state so renders show the park.
	StartPlaying()

	// Update advances one frame of animation state.
	Update()

	// Close releases everything the engine holds.
	Close() error
}

// Info describes a registered backend.
type Info struct {
	Name       string
	Extensions []string
}

// Factory creates a fresh, unloaded engine.
type Factory func() Engine

// ErrNoBackend is returned when no backend handles a file extension.
var ErrNoBackend = errors.New("engine: no backend for file")

var (
	factories = make(map[string]Factory)
	names     = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a backend for the given extensions (e.g. ".park.yaml").
// Typically called from a backend's init() function.
// Panics if an extension is already registered.
func Register(f Factory, extensions ...string) {
	mu.Lock()
	defer mu.Unlock()

	name := f().Name()
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if _, exists := factories[ext]; exists {
			panic(fmt.Sprintf("engine: extension %q already registered", ext))
		}
		factories[ext] = f
		names[ext] = name
	}
}

// List returns the registered backends sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	byName := make(map[string][]string)
	for ext, name := range names {
		byName[name] = append(byName[name], ext)
	}

	result := make([]Info, 0, len(byName))
	for name, exts := range byName {
		sort.Strings(exts)
		result = append(result, Info{Name: name, Extensions: exts})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// lookup finds the factory with the longest extension matching path.
func lookup(path string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()

	base := strings.ToLower(filepath.Base(path))
	var (
		best    Factory
		bestLen int
	)
	for ext, f := range factories {
		if strings.HasSuffix(base, ext) && len(ext) > bestLen {
			best, bestLen = f, len(ext)
		}
	}
	return best, best != nil
}

// Open creates an engine for path and loads the file into it.
func Open(path string) (Engine, error) {
	f, ok := lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoBackend, path)
	}

	e := f()
	if err := e.Load(path); err != nil {
		e.Close()
		return nil, fmt.Errorf("engine: cannot load %s: %w", path, err)
	}
	return e, nil
}

// With opens path, forces the engine into the playing state and runs fn.
// The engine is closed on every return path.
func With(path string, fn func(Engine) error) (err error) {
	e, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("engine: close: %w", cerr)
		}
	}()

	e.StartPlaying()
	return fn(e)
}

// CaptureContext returns the capture collaborators backed by e.
func CaptureContext(e Engine) capture.Context {
	return capture.Context{
		Renderer: e,
		Palette:  e,
		Sprites:  e,
		World:    e,
	}
}
