package capture

import (
	"image/color"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// Renderer draws the isometric world into pixel buffers. RenderViewport is
// synchronous and runs on the goroutine that owns the rendering state.
type Renderer interface {
	RenderViewport(dst *core.PixelBuffer, vp core.Viewport)
	Rotation() iso.Rotation
	SetRotation(r iso.Rotation)
}

// PaletteSource exposes the renderer's live palette.
// The returned slice may be mutated on the next frame.
type PaletteSource interface {
	LivePalette() []color.NRGBA
}

// SpriteCache is the renderer's spatial partitioning of sprites.
type SpriteCache interface {
	// ResetQuadrantPlacements forces every sprite to be re-bucketed so
	// sprites appear in views the cache was not built for.
	ResetQuadrantPlacements()
}

// World is the loaded map.
type World interface {
	// MapSize returns the number of tiles along one edge of the square map.
	MapSize() int
	// ElevationAt returns the raw terrain height at world point (x, y).
	ElevationAt(x, y int) int
	// SavedView returns the persisted main-view position.
	SavedView() core.ViewState
}

// Display is the interactive window surface.
type Display interface {
	// Framebuffer returns the buffer currently shown on screen.
	Framebuffer() *core.PixelBuffer
	// MainViewport returns the main window's viewport, if there is one.
	MainViewport() (core.Viewport, bool)
}

// Notifier presents capture outcomes to the user.
type Notifier interface {
	CaptureFailed(err error)
	CaptureSaved(name string)
}

// Effects are the user-facing side effects of a standard dump.
type Effects interface {
	PlayShutter(pan int)
	Flash()
	SuppressRain()
	RestoreRain()
}

// Recorder persists successful captures.
type Recorder interface {
	RecordCapture(res Result) error
}

// Context carries the collaborators a Capturer calls into. Headless
// captures only need Renderer, Palette, Sprites and World.
type Context struct {
	Renderer Renderer
	Palette  PaletteSource
	Sprites  SpriteCache
	World    World
	Display  Display
	Notifier Notifier
	Effects  Effects
}

type nopNotifier struct{}

func (nopNotifier) CaptureFailed(error) {}
func (nopNotifier) CaptureSaved(string) {}

type nopEffects struct{}

func (nopEffects) PlayShutter(int) {}
func (nopEffects) Flash() {}
func (nopEffects) SuppressRain() {}
func (nopEffects) RestoreRain() {}
