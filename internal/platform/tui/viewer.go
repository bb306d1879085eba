package tui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/vovakirdan/parkshot/internal/capture"
	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/engine"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// Viewer effect tuning.
const (
	flashFrames  = 2
	statusFrames = 90
	rainDrops    = 48
	rainLength   = 3
	rainIndex    = 0xFA
)

// ViewerOptions configures a Viewer.
type ViewerOptions struct {
	Width, Height   int
	CountdownFrames int
	Rain            bool

	// Bell receives the shutter cue. Nil silences it.
	Bell io.Writer

	Capture capture.Options
}

type rainPixel struct {
	x, y int
	old  uint8
}

// Viewer owns the framebuffer and main viewport of an interactive session
// over one engine. It is the Display, Notifier and Effects the capturer
// reports to.
type Viewer struct {
	engine   engine.Engine
	fb       *core.PixelBuffer
	vp       core.Viewport
	capturer *capture.Capturer
	opts     ViewerOptions

	frame      uint64
	status     string
	statusLeft int
	flash      int

	rain           bool
	rainSuppressed bool
	underRain      []rainPixel
}

// NewViewer creates a viewer positioned on the engine's saved view.
func NewViewer(e engine.Engine, opts ViewerOptions) (*Viewer, error) {
	fb, err := core.NewPixelBuffer(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot allocate framebuffer: %w", err)
	}

	v := &Viewer{
		engine: e,
		fb:     fb,
		vp:     e.SavedView().Viewport(opts.Width, opts.Height),
		opts:   opts,
		rain:   opts.Rain,
	}
	e.SetRotation(v.vp.Rotation)

	ctx := engine.CaptureContext(e)
	ctx.Display = v
	ctx.Notifier = v
	ctx.Effects = v
	v.capturer = capture.New(ctx, opts.Capture)

	v.redraw()
	return v, nil
}

// Capturer returns the capturer bound to this viewer.
func (v *Viewer) Capturer() *capture.Capturer {
	return v.capturer
}

// Framebuffer implements capture.Display.
func (v *Viewer) Framebuffer() *core.PixelBuffer {
	return v.fb
}

// MainViewport implements capture.Display.
func (v *Viewer) MainViewport() (core.Viewport, bool) {
	return v.vp, true
}

// CaptureFailed implements capture.Notifier.
func (v *Viewer) CaptureFailed(err error) {
	v.setStatus("Screenshot failed: " + err.Error())
}

// CaptureSaved implements capture.Notifier.
func (v *Viewer) CaptureSaved(name string) {
	v.setStatus("Screenshot saved as " + name)
}

// PlayShutter implements capture.Effects with a terminal bell.
func (v *Viewer) PlayShutter(pan int) {
	if v.opts.Bell != nil {
		io.WriteString(v.opts.Bell, "\a")
	}
}

// Flash implements capture.Effects.
func (v *Viewer) Flash() {
	v.flash = flashFrames
}

// SuppressRain removes the rain overlay from the framebuffer.
func (v *Viewer) SuppressRain() {
	for i := len(v.underRain) - 1; i >= 0; i-- {
		p := v.underRain[i]
		v.fb.Set(p.x, p.y, p.old)
	}
	v.underRain = v.underRain[:0]
	v.rainSuppressed = true
}

// RestoreRain draws the rain overlay again.
func (v *Viewer) RestoreRain() {
	v.rainSuppressed = false
	v.drawRain()
}

func (v *Viewer) setStatus(s string) {
	v.status = s
	v.statusLeft = statusFrames
}

// Status returns the current status line, empty once it has expired.
func (v *Viewer) Status() string {
	if v.statusLeft == 0 {
		return ""
	}
	return v.status
}

// Flashing reports whether the screen is flashing after a dump.
func (v *Viewer) Flashing() bool {
	return v.flash > 0
}

// Viewport returns the main viewport.
func (v *Viewer) Viewport() core.Viewport {
	return v.vp
}

// Step advances one frame: animation, redraw, then any pending dump.
// It does nothing once the viewer is closed.
func (v *Viewer) Step() {
	if v.Closed() {
		return
	}
	v.frame++
	if v.flash > 0 {
		v.flash--
	}
	if v.statusLeft > 0 {
		v.statusLeft--
	}

	v.engine.Update()
	v.redraw()

	fired, res, err := v.capturer.Tick()
	if fired && err == nil {
		v.setStatus("Screenshot saved as " + filepath.Base(res.Path))
	}
}

// RequestScreenshot arms the standard dump countdown.
func (v *Viewer) RequestScreenshot() {
	v.capturer.Request(v.opts.CountdownFrames)
}

// GiantScreenshot renders the whole map. The outcome arrives through the
// Notifier methods.
func (v *Viewer) GiantScreenshot() {
	v.capturer.Giant()
	v.redraw()
}

// Pan moves the view by whole tiles at the current zoom.
func (v *Viewer) Pan(dx, dy int) {
	step := iso.TileSize << v.vp.Zoom
	v.vp.X += dx * step
	v.vp.Y += dy * step / 2
	v.redraw()
}

// Zoom changes the zoom level by delta, keeping the view centre.
func (v *Viewer) Zoom(delta int) {
	zoom := core.Clamp(v.vp.Zoom+delta, 0, core.MaxZoom)
	if zoom == v.vp.Zoom {
		return
	}
	sx := v.vp.X + (v.vp.ViewWidth<<v.vp.Zoom)/2
	sy := v.vp.Y + (v.vp.ViewHeight<<v.vp.Zoom)/2
	v.vp.Zoom = zoom
	v.vp.CentreOn(sx, sy)
	v.redraw()
}

// Rotate turns the view a quarter turn and recentres it on the map.
func (v *Viewer) Rotate(clockwise bool) {
	rot := v.vp.Rotation.Prev()
	if clockwise {
		rot = v.vp.Rotation.Next()
	}
	v.vp.Rotation = rot
	v.engine.SetRotation(rot)

	cx, cy := iso.MapCentre(v.engine.MapSize())
	z := iso.Elevation(v.engine.ElevationAt(cx, cy))
	sx, sy := iso.Project(cx, cy, z, rot)
	v.vp.CentreOn(sx, sy)
	v.redraw()
}

// ToggleRain switches the rain overlay on or off.
func (v *Viewer) ToggleRain() {
	v.rain = !v.rain
	v.redraw()
}

func (v *Viewer) redraw() {
	if v.Closed() {
		return
	}
	v.underRain = v.underRain[:0]
	v.engine.RenderViewport(v.fb, v.vp)
	v.drawRain()
}

func (v *Viewer) drawRain() {
	if !v.rain || v.rainSuppressed || v.Closed() {
		return
	}
	w, h := v.fb.Width(), v.fb.Height()
	for i := 0; i < rainDrops; i++ {
		x := (i*97 + int(v.frame)*3) % w
		y := (i*57 + int(v.frame)*7) % h
		for j := 0; j < rainLength; j++ {
			if y+j >= h {
				break
			}
			v.underRain = append(v.underRain, rainPixel{x: x, y: y + j, old: v.fb.At(x, y+j)})
			v.fb.Set(x, y+j, rainIndex)
		}
	}
}

// Close releases the framebuffer. The engine is owned by the caller.
func (v *Viewer) Close() {
	v.fb.Release()
}

// Closed reports whether Close has been called.
func (v *Viewer) Closed() bool {
	return v.fb.Released()
}
