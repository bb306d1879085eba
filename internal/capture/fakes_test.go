package capture

import (
	"fmt"
	"image/color"
	"io"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/iso"
)

type fakeWorld struct {
	mapSize   int
	elevation int
	saved     core.ViewState
}

func (w *fakeWorld) MapSize() int { return w.mapSize }
func (w *fakeWorld) ElevationAt(_, _ int) int { return w.elevation }
func (w *fakeWorld) SavedView() core.ViewState { return w.saved }

type fakeSprites struct {
	resets int
}

func (s *fakeSprites) ResetQuadrantPlacements() { s.resets++ }

type fakeRenderer struct {
	rotation     iso.Rotation
	fill         uint8
	sprites      *fakeSprites
	rendered     []core.Viewport
	resetsBefore []int
	onRender     func()
}

func (r *fakeRenderer) RenderViewport(dst *core.PixelBuffer, vp core.Viewport) {
	r.rendered = append(r.rendered, vp)
	if r.sprites != nil {
		r.resetsBefore = append(r.resetsBefore, r.sprites.resets)
	}
	if dst.Width() != vp.Width || dst.Height() != vp.Height {
		panic(fmt.Sprintf("buffer %dx%d does not match viewport %dx%d",
			dst.Width(), dst.Height(), vp.Width, vp.Height))
	}
	dst.Fill(r.fill)
	if r.onRender != nil {
		r.onRender()
	}
}

func (r *fakeRenderer) Rotation() iso.Rotation { return r.rotation }
func (r *fakeRenderer) SetRotation(v iso.Rotation) { r.rotation = v }

type fakePalette struct {
	live []color.NRGBA
}

func newFakePalette() *fakePalette {
	live := make([]color.NRGBA, core.PaletteSize)
	for i := range live {
		live[i] = color.NRGBA{R: uint8(i), G: 0, B: uint8(255 - i), A: 255}
	}
	return &fakePalette{live: live}
}

func (p *fakePalette) LivePalette() []color.NRGBA { return p.live }

type fakeDisplay struct {
	fb    *core.PixelBuffer
	vp    core.Viewport
	hasVP bool
}

func (d *fakeDisplay) Framebuffer() *core.PixelBuffer { return d.fb }
func (d *fakeDisplay) MainViewport() (core.Viewport, bool) { return d.vp, d.hasVP }

type fakeNotifier struct {
	failed []error
	saved  []string
}

func (n *fakeNotifier) CaptureFailed(err error) { n.failed = append(n.failed, err) }
func (n *fakeNotifier) CaptureSaved(name string) { n.saved = append(n.saved, name) }

type fakeEffects struct {
	events []string
}

func (e *fakeEffects) PlayShutter(pan int) { e.events = append(e.events, fmt.Sprintf("shutter:%d", pan)) }
func (e *fakeEffects) Flash() { e.events = append(e.events, "flash") }
func (e *fakeEffects) SuppressRain() { e.events = append(e.events, "suppress") }
func (e *fakeEffects) RestoreRain() { e.events = append(e.events, "restore") }

type fakeRecorder struct {
	records []Result
}

func (r *fakeRecorder) RecordCapture(res Result) error {
	r.records = append(r.records, res)
	return nil
}

type failingEncoder struct{}

func (failingEncoder) Format() imageio.Format { return imageio.FormatPNG }

func (failingEncoder) Encode(io.Writer, *core.PixelBuffer, *core.Palette) error {
	return fmt.Errorf("%w: rejected", imageio.ErrEncodeFailed)
}

// harness bundles a Capturer with its fakes.
type harness struct {
	world    *fakeWorld
	renderer *fakeRenderer
	sprites  *fakeSprites
	palette  *fakePalette
	display  *fakeDisplay
	notifier *fakeNotifier
	effects  *fakeEffects
	recorder *fakeRecorder
	ctx      Context
}

func newHarness(fbWidth, fbHeight int) *harness {
	fb, err := core.NewPixelBuffer(fbWidth, fbHeight)
	if err != nil {
		panic(err)
	}
	fb.Fill(17)

	h := &harness{
		world:    &fakeWorld{mapSize: 8},
		sprites:  &fakeSprites{},
		palette:  newFakePalette(),
		display:  &fakeDisplay{fb: fb},
		notifier: &fakeNotifier{},
		effects:  &fakeEffects{},
		recorder: &fakeRecorder{},
	}
	h.renderer = &fakeRenderer{fill: 42, sprites: h.sprites}
	h.ctx = Context{
		Renderer: h.renderer,
		Palette:  h.palette,
		Sprites:  h.sprites,
		World:    h.world,
		Display:  h.display,
		Notifier: h.notifier,
		Effects:  h.effects,
	}
	return h
}

func (h *harness) capturer(dir string, format imageio.Format) *Capturer {
	return New(h.ctx, Options{
		Directory: dir,
		Format:    format,
		Recorder:  h.recorder,
	})
}
