// Package capture coordinates screenshot captures: it positions a viewport,
// has the renderer draw into an off-screen buffer, snapshots the palette
// and hands both to an image encoder.
//
// Three modes share the same machinery. Standard dumps write the on-screen
// framebuffer verbatim, giant captures render the whole map, and headless
// captures render a viewport described entirely by the caller.
package capture

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/iso"
	"github.com/vovakirdan/parkshot/internal/shotpath"
)

// Mode identifies how a capture was taken.
type Mode int

const (
	ModeStandard Mode = iota
	ModeGiant
	ModeHeadless
)

// String returns the mode name used in logs and history.
func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeGiant:
		return "giant"
	case ModeHeadless:
		return "headless"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	for m := ModeStandard; m <= ModeHeadless; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("capture: unknown mode %q", s)
}

var (
	// ErrCaptureFailed matches every capture error.
	ErrCaptureFailed = errors.New("capture: screenshot failed")

	// ErrBusy is returned when a capture is started while another one is
	// still in flight.
	ErrBusy = errors.New("capture: another capture is in progress")
)

// Failure causes, distinguishable with errors.Is.
var (
	ErrDirectoryUnavailable = shotpath.ErrDirectoryUnavailable
	ErrExhausted            = shotpath.ErrExhausted
	ErrEncodeFailed         = imageio.ErrEncodeFailed
	ErrAllocationFailed     = core.ErrAllocationFailed
)

// Error is the single failure outcome of a capture. The wrapped cause is
// kept for diagnostics.
type Error struct {
	Mode Mode
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture: %s screenshot failed: %v", e.Mode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCaptureFailed.
func (e *Error) Is(target error) bool {
	return target == ErrCaptureFailed
}

// Result describes a written screenshot.
type Result struct {
	Mode      Mode
	Index     int // Screenshot number; 0 for headless captures
	Path      string
	Width     int
	Height    int
	Zoom      int
	Rotation  iso.Rotation
	CreatedAt time.Time
}

// Options configures a Capturer.
type Options struct {
	// Directory receives numbered SCR{n} files.
	Directory string

	// Format selects the encoder for standard dumps.
	Format imageio.Format

	// PNGCompression is used for every PNG written.
	PNGCompression png.CompressionLevel

	// Encoders overrides the encoder per format.
	Encoders map[imageio.Format]imageio.Encoder

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger

	// Recorder, if set, is told about every successful capture.
	Recorder Recorder
}

// Capturer takes screenshots. At most one capture runs at a time.
type Capturer struct {
	ctx      Context
	dir      string
	format   imageio.Format
	encoders map[imageio.Format]imageio.Encoder
	logger   *log.Logger
	recorder Recorder

	mu        sync.Mutex
	busy      bool
	countdown int
}

// New creates a Capturer over the given collaborators.
func New(ctx Context, opts Options) *Capturer {
	if ctx.Notifier == nil {
		ctx.Notifier = nopNotifier{}
	}
	if ctx.Effects == nil {
		ctx.Effects = nopEffects{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	encoders := make(map[imageio.Format]imageio.Encoder, 2)
	for _, f := range []imageio.Format{imageio.FormatBMP, imageio.FormatPNG} {
		encoders[f] = imageio.ForFormat(f, opts.PNGCompression)
	}
	for f, enc := range opts.Encoders {
		encoders[f] = enc
	}

	return &Capturer{
		ctx:      ctx,
		dir:      opts.Directory,
		format:   opts.Format,
		encoders: encoders,
		logger:   logger,
		recorder: opts.Recorder,
	}
}

// Directory returns the directory numbered screenshots are written to.
func (c *Capturer) Directory() string {
	return c.dir
}

// acquire marks the capturer busy. It returns false if it already was.
func (c *Capturer) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Capturer) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// fail logs the distinguishing cause and wraps it as a capture error.
func (c *Capturer) fail(mode Mode, err error) error {
	c.logger.Error("screenshot failed", "mode", mode, "error", err)
	return &Error{Mode: mode, Err: err}
}

// done stamps, logs and records a successful capture.
func (c *Capturer) done(res Result) Result {
	res.CreatedAt = time.Now()
	c.logger.Info("screenshot saved", "mode", res.Mode, "path", res.Path,
		"width", res.Width, "height", res.Height)

	if c.recorder != nil {
		if err := c.recorder.RecordCapture(res); err != nil {
			c.logger.Warn("could not record capture", "error", err)
		}
	}
	return res
}
