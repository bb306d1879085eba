package core

import (
	"fmt"
	"image/color"
)

// PaletteSize is the number of entries in a palette table.
const PaletteSize = 256

// PaletteEntry is a single palette colour in RGBA order.
// Alpha is straight (not premultiplied), as the renderer stores it.
type PaletteEntry struct {
	R, G, B, A uint8
}

// Palette is an exportable 256-entry palette table.
// It is an array value, so copies never share storage with their source.
type Palette [PaletteSize]PaletteEntry

// SnapshotPalette copies the first 256 entries of the live renderer palette.
// A live palette with fewer entries is a programming error and panics.
func SnapshotPalette(live []color.NRGBA) Palette {
	if len(live) < PaletteSize {
		panic(fmt.Sprintf("core: live palette has %d entries, need %d", len(live), PaletteSize))
	}

	var p Palette
	for i := range p {
		c := live[i]
		p[i] = PaletteEntry{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return p
}

// ColorPalette converts the table to an image/color palette.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, PaletteSize)
	for i, e := range p {
		out[i] = color.NRGBA{R: e.R, G: e.G, B: e.B, A: e.A}
	}
	return out
}

// Hex returns the entry as a #rrggbb string (alpha dropped).
func (e PaletteEntry) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", e.R, e.G, e.B)
}
