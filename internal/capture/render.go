package capture

import (
	"fmt"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// centreOn positions vp so the world point (x, y), at its terrain
// elevation, sits in the middle of the view.
func centreOn(vp *core.Viewport, w World, x, y int) {
	z := iso.Elevation(w.ElevationAt(x, y))
	sx, sy := iso.Project(x, y, z, vp.Rotation)
	vp.CentreOn(sx, sy)
}

// renderToFile renders vp into a fresh buffer and writes it to path.
// The buffer is released before returning on every path.
func (c *Capturer) renderToFile(vp core.Viewport, path string, enc imageio.Encoder) error {
	if err := vp.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}

	c.ctx.Renderer.SetRotation(vp.Rotation)
	c.ctx.Sprites.ResetQuadrantPlacements()

	buf, err := core.NewPixelBuffer(vp.Width, vp.Height)
	if err != nil {
		return err
	}
	defer buf.Release()

	c.logger.Debug("rendering capture", "x", vp.X, "y", vp.Y,
		"width", vp.Width, "height", vp.Height, "zoom", vp.Zoom, "rotation", vp.Rotation)
	c.ctx.Renderer.RenderViewport(buf, vp)

	pal := core.SnapshotPalette(c.ctx.Palette.LivePalette())
	return imageio.WriteFile(path, enc, buf, &pal)
}
