package capture

import (
	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/shotpath"
)

// Dump writes the current framebuffer verbatim to the next free numbered
// file in the configured format.
func (c *Capturer) Dump() (Result, error) {
	if !c.acquire() {
		return Result{}, c.fail(ModeStandard, ErrBusy)
	}
	defer c.release()

	enc := c.encoders[c.format]
	slot, err := shotpath.Allocate(c.dir, c.format.Extension())
	if err != nil {
		return Result{}, c.fail(ModeStandard, err)
	}

	fb := c.ctx.Display.Framebuffer()
	pal := core.SnapshotPalette(c.ctx.Palette.LivePalette())
	if err := imageio.WriteFile(slot.Path, enc, fb, &pal); err != nil {
		return Result{}, c.fail(ModeStandard, err)
	}

	res := Result{
		Mode:   ModeStandard,
		Index:  slot.Index,
		Path:   slot.Path,
		Width:  fb.Width(),
		Height: fb.Height(),
	}
	if vp, ok := c.ctx.Display.MainViewport(); ok {
		res.Zoom = vp.Zoom
		res.Rotation = vp.Rotation
	}
	return c.done(res), nil
}

// Request schedules a standard dump after the given number of frames.
// The dump is taken by the Tick call that brings the countdown to zero.
func (c *Capturer) Request(frames int) {
	if frames < 1 {
		frames = 1
	}
	c.mu.Lock()
	c.countdown = frames
	c.mu.Unlock()
}

// Pending reports whether a requested dump has not been taken yet.
func (c *Capturer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown > 0
}

// Tick advances a pending countdown by one frame. When it expires the
// dump is taken with rain suppressed; success flashes the screen and plays
// the shutter cue, failure is reported through the Notifier.
// fired reports whether a dump was attempted on this tick.
func (c *Capturer) Tick() (fired bool, res Result, err error) {
	c.mu.Lock()
	if c.countdown == 0 {
		c.mu.Unlock()
		return false, Result{}, nil
	}
	c.countdown--
	due := c.countdown == 0
	c.mu.Unlock()

	if !due {
		return false, Result{}, nil
	}

	c.ctx.Effects.SuppressRain()
	defer c.ctx.Effects.RestoreRain()

	res, err = c.Dump()
	if err != nil {
		c.ctx.Notifier.CaptureFailed(err)
		return true, Result{}, err
	}

	c.ctx.Effects.Flash()
	c.ctx.Effects.PlayShutter(c.ctx.Display.Framebuffer().Width() / 2)
	return true, res, nil
}
