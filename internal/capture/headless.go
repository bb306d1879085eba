package capture

import (
	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// Shot describes a headless capture supplied entirely by the caller.
type Shot struct {
	// Width and Height are the output size. Zero in either selects the
	// giant sizing for Zoom.
	Width, Height int

	// Custom selects an explicit location, zoom and rotation. Without it
	// the saved view of the loaded world is used.
	Custom bool

	// CentreX and CentreY replace X or Y with the map centre.
	CentreX, CentreY bool

	X, Y     int
	Zoom     int
	Rotation iso.Rotation
}

// Viewport resolves the shot against a loaded world.
func (s Shot) Viewport(w World) core.Viewport {
	mapSize := w.MapSize()

	width, height := s.Width, s.Height
	if width == 0 || height == 0 {
		width, height = iso.GiantSize(mapSize, s.Zoom)
	}

	if !s.Custom {
		return w.SavedView().Viewport(width, height)
	}

	x, y := s.X, s.Y
	cx, cy := iso.MapCentre(mapSize)
	if s.CentreX {
		x = cx
	}
	if s.CentreY {
		y = cy
	}

	vp := core.NewViewport(width, height, s.Zoom, s.Rotation)
	centreOn(&vp, w, x, y)
	return vp
}

// Headless renders shot into a PNG at exactly the given output path.
func (c *Capturer) Headless(shot Shot, output string) (Result, error) {
	if !c.acquire() {
		return Result{}, c.fail(ModeHeadless, ErrBusy)
	}
	defer c.release()

	vp := shot.Viewport(c.ctx.World)
	if err := c.renderToFile(vp, output, c.encoders[imageio.FormatPNG]); err != nil {
		return Result{}, c.fail(ModeHeadless, err)
	}

	return c.done(Result{
		Mode:     ModeHeadless,
		Path:     output,
		Width:    vp.Width,
		Height:   vp.Height,
		Zoom:     vp.Zoom,
		Rotation: vp.Rotation,
	}), nil
}
