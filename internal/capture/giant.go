package capture

import (
	"path/filepath"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/iso"
	"github.com/vovakirdan/parkshot/internal/shotpath"
)

// GiantViewport returns the viewport covering the whole map at the given
// zoom and rotation, centred on the map's middle tile.
func GiantViewport(w World, zoom int, rot iso.Rotation) core.Viewport {
	mapSize := w.MapSize()
	width, height := iso.GiantSize(mapSize, zoom)

	vp := core.NewViewport(width, height, zoom, rot)
	cx, cy := iso.MapCentre(mapSize)
	centreOn(&vp, w, cx, cy)
	return vp
}

// Giant renders the entire map at the current zoom and rotation into the
// next free numbered PNG. The outcome is always reported through the
// Notifier, since giant captures are user initiated.
func (c *Capturer) Giant() (Result, error) {
	res, err := c.giant()
	if err != nil {
		c.ctx.Notifier.CaptureFailed(err)
		return Result{}, err
	}
	c.ctx.Notifier.CaptureSaved(filepath.Base(res.Path))
	return res, nil
}

func (c *Capturer) giant() (Result, error) {
	if !c.acquire() {
		return Result{}, c.fail(ModeGiant, ErrBusy)
	}
	defer c.release()

	zoom := 0
	if c.ctx.Display != nil {
		if main, ok := c.ctx.Display.MainViewport(); ok {
			zoom = main.Zoom
		}
	}
	vp := GiantViewport(c.ctx.World, zoom, c.ctx.Renderer.Rotation())

	slot, err := shotpath.Allocate(c.dir, imageio.FormatPNG.Extension())
	if err != nil {
		return Result{}, c.fail(ModeGiant, err)
	}

	if err := c.renderToFile(vp, slot.Path, c.encoders[imageio.FormatPNG]); err != nil {
		return Result{}, c.fail(ModeGiant, err)
	}

	return c.done(Result{
		Mode:     ModeGiant,
		Index:    slot.Index,
		Path:     slot.Path,
		Width:    vp.Width,
		Height:   vp.Height,
		Zoom:     vp.Zoom,
		Rotation: vp.Rotation,
	}), nil
}
