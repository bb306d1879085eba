package core

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/parkshot/internal/iso"
)

// MaxZoom is the largest supported zoom level (each level halves detail).
const MaxZoom = 3

// ErrInvalidViewport is returned by Viewport.Validate.
var ErrInvalidViewport = errors.New("core: invalid viewport")

// Viewport describes the window into the projected world that a render
// fills. X/Y is the view origin in screen space, Width/Height the pixel
// size and ViewWidth/ViewHeight the logical size before zoom is applied.
type Viewport struct {
	X, Y       int
	Width      int
	Height     int
	ViewWidth  int
	ViewHeight int
	Zoom       int
	Rotation   iso.Rotation
}

// NewViewport creates a viewport whose logical size equals its pixel size.
func NewViewport(width, height, zoom int, rot iso.Rotation) Viewport {
	return Viewport{
		Width:      width,
		Height:     height,
		ViewWidth:  width,
		ViewHeight: height,
		Zoom:       zoom,
		Rotation:   rot,
	}
}

// Validate checks the sizes, zoom and rotation of the viewport.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: pixel size %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	if v.ViewWidth <= 0 || v.ViewHeight <= 0 {
		return fmt.Errorf("%w: view size %dx%d", ErrInvalidViewport, v.ViewWidth, v.ViewHeight)
	}
	if v.Zoom < 0 || v.Zoom > MaxZoom {
		return fmt.Errorf("%w: zoom %d", ErrInvalidViewport, v.Zoom)
	}
	if !v.Rotation.Valid() {
		return fmt.Errorf("%w: rotation %d", ErrInvalidViewport, v.Rotation)
	}
	return nil
}

// CentreOn moves the view origin so that the screen point (sx, sy) lies at
// the centre of the viewport.
func (v *Viewport) CentreOn(sx, sy int) {
	v.X, v.Y = iso.ViewOrigin(sx, sy, v.ViewWidth, v.ViewHeight, v.Zoom)
}

// ToPixel maps a screen-space point into buffer pixel coordinates.
func (v Viewport) ToPixel(sx, sy int) (int, int) {
	return (sx - v.X) >> v.Zoom, (sy - v.Y) >> v.Zoom
}

// ViewState is the persisted main-view position stored in a save file.
type ViewState struct {
	X, Y     int
	Zoom     int
	Rotation iso.Rotation
}

// UnpackZoomRotation splits the packed save-file field: zoom in the low
// byte, rotation in the high byte.
func UnpackZoomRotation(packed uint16) (zoom int, rot iso.Rotation) {
	return int(packed & 0xFF), iso.MaskRotation(int(packed >> 8))
}

// Viewport builds a viewport of the given pixel size positioned on the
// saved view: the saved point is the centre of the unzoomed logical area.
func (s ViewState) Viewport(width, height int) Viewport {
	v := NewViewport(width, height, s.Zoom, s.Rotation)
	v.X = s.X - v.ViewWidth/2
	v.Y = s.Y - v.ViewHeight/2
	return v
}
