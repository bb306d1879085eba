package core

import (
	"errors"
	"fmt"
	"image"
)

// MaxPixels bounds the size of a single pixel buffer.
const MaxPixels = 1 << 30

// ErrAllocationFailed is returned when a pixel buffer cannot be obtained.
var ErrAllocationFailed = errors.New("core: pixel buffer allocation failed")

// PixelBuffer is a contiguous width*height buffer of palette indices.
// Row y starts at offset y*width.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocationFailed, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocationFailed, width, height, MaxPixels)
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Bounds returns the buffer extent as a rectangle at the origin.
func (b *PixelBuffer) Bounds() Rect {
	return Rect{W: b.width, H: b.height}
}

// Pix exposes the backing slice for renderers that write rows directly.
func (b *PixelBuffer) Pix() []uint8 {
	return b.pix
}

// Set writes a palette index at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (b *PixelBuffer) Set(x, y int, index uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = index
}

// At returns the palette index at (x, y), or 0 when out of bounds.
func (b *PixelBuffer) At(x, y int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.pix[y*b.width+x]
}

// Fill sets every pixel to the given index.
func (b *PixelBuffer) Fill(index uint8) {
	for i := range b.pix {
		b.pix[i] = index
	}
}

// FillRect fills the part of r that lies inside the buffer.
func (b *PixelBuffer) FillRect(r Rect, index uint8) {
	r = r.Intersect(b.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := b.pix[y*b.width : (y+1)*b.width]
		for x := r.X; x < r.Right(); x++ {
			row[x] = index
		}
	}
}

// HLine draws a horizontal run of length pixels starting at (x, y), clipped.
func (b *PixelBuffer) HLine(x, y, length int, index uint8) {
	b.FillRect(Rect{X: x, Y: y, W: length, H: 1}, index)
}

// Paletted wraps the buffer as an image.Paletted using p as its palette.
// The image shares the buffer's pixels; it must not outlive Release.
func (b *PixelBuffer) Paletted(p *Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     b.pix,
		Stride:  b.width,
		Rect:    image.Rect(0, 0, b.width, b.height),
		Palette: p.ColorPalette(),
	}
}

// Release drops the backing storage. The buffer is unusable afterwards.
func (b *PixelBuffer) Release() {
	b.pix = nil
	b.width = 0
	b.height = 0
}

// Released reports whether Release has been called.
func (b *PixelBuffer) Released() bool {
	return b.pix == nil
}
