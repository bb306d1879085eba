package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/parkshot/internal/core"
)

func testPalette() core.Palette {
	live := make([]color.NRGBA, core.PaletteSize)
	for i := range live {
		live[i] = color.NRGBA{R: uint8(i), G: uint8(255 - i), B: uint8(i / 2), A: 255}
	}
	return core.SnapshotPalette(live)
}

func testBuffer(t *testing.T) *core.PixelBuffer {
	t.Helper()
	buf, err := core.NewPixelBuffer(6, 4)
	if err != nil {
		t.Fatalf("NewPixelBuffer() failed: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			buf.Set(x, y, uint8(y*6+x))
		}
	}
	return buf
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"bmp", FormatBMP, true},
		{"PNG", FormatPNG, true},
		{".png", FormatPNG, true},
		{"gif", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseFormat(%q) error = %v, expected ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	if FormatBMP.Extension() != ".bmp" || FormatPNG.Extension() != ".png" {
		t.Error("unexpected extensions")
	}
}

func TestPNGRoundTripKeepsIndices(t *testing.T) {
	buf := testBuffer(t)
	pal := testPalette()

	var out bytes.Buffer
	if err := (PNGEncoder{Compression: png.BestSpeed}).Encode(&out, buf, &pal); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		t.Fatalf("decoded %T, expected *image.Paletted", img)
	}
	if p.Bounds().Dx() != 6 || p.Bounds().Dy() != 4 {
		t.Errorf("decoded size %v, expected 6x4", p.Bounds())
	}
	if got := p.ColorIndexAt(5, 3); got != 23 {
		t.Errorf("ColorIndexAt(5, 3) = %d, expected 23", got)
	}
	r, g, b, _ := p.At(5, 3).RGBA()
	if r>>8 != 23 || g>>8 != 232 || b>>8 != 11 {
		t.Errorf("At(5, 3) = (%d, %d, %d), expected (23, 232, 11)", r>>8, g>>8, b>>8)
	}
}

func TestBMPEncodes(t *testing.T) {
	buf := testBuffer(t)
	pal := testPalette()

	var out bytes.Buffer
	if err := (BMPEncoder{}).Encode(&out, buf, &pal); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("BM")) {
		t.Fatal("output does not start with BMP signature")
	}

	img, err := bmp.Decode(&out)
	if err != nil {
		t.Fatalf("bmp.Decode() failed: %v", err)
	}
	r, g, b, _ := img.At(1, 2).RGBA()
	if r>>8 != 13 || g>>8 != 242 || b>>8 != 6 {
		t.Errorf("At(1, 2) = (%d, %d, %d), expected (13, 242, 6)", r>>8, g>>8, b>>8)
	}
}

type failingEncoder struct{}

func (failingEncoder) Format() Format { return FormatPNG }

func (failingEncoder) Encode(_ io.Writer, _ *core.PixelBuffer, _ *core.Palette) error {
	return fmt.Errorf("%w: disk full", ErrEncodeFailed)
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SCR1.png")
	buf := testBuffer(t)
	pal := testPalette()

	err := WriteFile(path, failingEncoder{}, buf, &pal)
	if !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("WriteFile() error = %v, expected ErrEncodeFailed", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed encode should not leave a file behind")
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "SCR1.png")
	buf := testBuffer(t)
	pal := testPalette()

	err := WriteFile(path, ForFormat(FormatPNG, png.DefaultCompression), buf, &pal)
	if !errors.Is(err, ErrEncodeFailed) {
		t.Errorf("WriteFile() error = %v, expected ErrEncodeFailed", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SCR1.bmp")
	buf := testBuffer(t)
	pal := testPalette()

	if err := WriteFile(path, ForFormat(FormatBMP, png.DefaultCompression), buf, &pal); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("written file is empty")
	}
}

func TestForFormat(t *testing.T) {
	if _, ok := ForFormat(FormatBMP, png.BestSpeed).(BMPEncoder); !ok {
		t.Error("ForFormat(FormatBMP) should return a BMPEncoder")
	}
	enc, ok := ForFormat(FormatPNG, png.BestSpeed).(PNGEncoder)
	if !ok {
		t.Fatal("ForFormat(FormatPNG) should return a PNGEncoder")
	}
	if enc.Compression != png.BestSpeed {
		t.Errorf("Compression = %v, expected %v", enc.Compression, png.BestSpeed)
	}
}
