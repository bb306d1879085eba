// Package imageio writes paletted capture buffers as BMP or PNG files.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/parkshot/internal/core"
)

// Format identifies a screenshot file format.
type Format int

const (
	FormatBMP Format = iota
	FormatPNG
)

// ErrEncodeFailed is returned when a buffer cannot be encoded or written.
var ErrEncodeFailed = errors.New("imageio: encode failed")

// ParseFormat converts a config string ("bmp" or "png") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "bmp":
		return FormatBMP, nil
	case "png":
		return FormatPNG, nil
	default:
		return 0, fmt.Errorf("imageio: unknown format %q", s)
	}
}

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatBMP:
		return "bmp"
	case FormatPNG:
		return "png"
	default:
		return "unknown"
	}
}

// Extension returns the file extension including the leading dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// Encoder writes a pixel buffer through a palette snapshot.
type Encoder interface {
	Format() Format
	Encode(w io.Writer, buf *core.PixelBuffer, pal *core.Palette) error
}

// BMPEncoder writes 8-bit indexed BMP files.
type BMPEncoder struct{}

// Format implements Encoder.
func (BMPEncoder) Format() Format { return FormatBMP }

// Encode implements Encoder.
func (BMPEncoder) Encode(w io.Writer, buf *core.PixelBuffer, pal *core.Palette) error {
	if err := bmp.Encode(w, buf.Paletted(pal)); err != nil {
		return fmt.Errorf("%w: bmp: %w", ErrEncodeFailed, err)
	}
	return nil
}

// PNGEncoder writes indexed PNG files.
type PNGEncoder struct {
	Compression png.CompressionLevel
}

// Format implements Encoder.
func (PNGEncoder) Format() Format { return FormatPNG }

// Encode implements Encoder.
func (e PNGEncoder) Encode(w io.Writer, buf *core.PixelBuffer, pal *core.Palette) error {
	enc := png.Encoder{CompressionLevel: e.Compression}
	if err := enc.Encode(w, buf.Paletted(pal)); err != nil {
		return fmt.Errorf("%w: png: %w", ErrEncodeFailed, err)
	}
	return nil
}

// ParseCompression maps a config string to a PNG compression level.
// The empty string selects the default level.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "fast", "best_speed":
		return png.BestSpeed, nil
	case "best", "best_compression":
		return png.BestCompression, nil
	default:
		return 0, fmt.Errorf("imageio: unknown png compression %q", s)
	}
}

// WriteFile encodes buf to path with enc. The file is removed again if
// encoding fails so a broken image never occupies a screenshot slot.
func WriteFile(path string, enc Encoder, buf *core.PixelBuffer, pal *core.Palette) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrEncodeFailed, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := enc.Encode(w, buf, pal); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return nil
}

// ForFormat returns the encoder for a format. Compression only applies
// to PNG.
func ForFormat(f Format, compression png.CompressionLevel) Encoder {
	if f == FormatBMP {
		return BMPEncoder{}
	}
	return PNGEncoder{Compression: compression}
}
