package sketch

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/engine"
	"github.com/vovakirdan/parkshot/internal/iso"
)

const islandPark = `
name: Island
map_size: 1
terrain: grass
heights:
  - [5]
sprites:
  - {x: 16, y: 16, z: 40, colour: 3}
`

func mustPark(t *testing.T, src string) *Park {
	t.Helper()
	p, err := ParsePark([]byte(src))
	if err != nil {
		t.Fatalf("ParsePark() error = %v", err)
	}
	return p
}

func playing(t *testing.T, src string) *Engine {
	t.Helper()
	e := New()
	e.SetPark(mustPark(t, src))
	e.StartPlaying()
	return e
}

// islandViewport centres the single tile's top face in a 64x64 view.
func islandViewport() core.Viewport {
	vp := core.NewViewport(64, 64, 0, 0)
	vp.CentreOn(0, 16-5*HeightUnit)
	return vp
}

func TestParseParkRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero map", "map_size: 0"},
		{"huge map", "map_size: 300"},
		{"too many rows", "map_size: 1\nheights: [[1], [2]]"},
		{"row too long", "map_size: 1\nheights: [[1, 2]]"},
		{"negative height", "map_size: 2\nheights: [[-1]]"},
		{"unknown terrain", "map_size: 2\nterrain: lava"},
		{"bad colour", "map_size: 2\npalette: ['#12345']"},
		{"bad zoom", "map_size: 2\nsaved_view: {zoom: 4}"},
		{"not yaml", "map_size: [1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePark([]byte(tt.src)); err == nil {
				t.Errorf("ParsePark(%q) expected error", tt.src)
			}
		})
	}
}

func TestParseParkNormalisesTerrain(t *testing.T) {
	p := mustPark(t, "map_size: 2\nterrain: Sand")
	if p.Terrain != "sand" {
		t.Errorf("Terrain = %q, expected %q", p.Terrain, "sand")
	}
}

func TestElevationAt(t *testing.T) {
	e := New()
	e.SetPark(mustPark(t, "map_size: 2\nterrain: sand\nheights: [[0, 2], [3, 4]]"))

	tests := []struct {
		x, y     int
		expected int
	}{
		{0, 0, 0},
		{40, 0, 2 * HeightUnit},
		{0, 40, 3 * HeightUnit},
		{63, 63, 4 * HeightUnit},
		{-5, 0, 0},
		{500, 500, 0},
	}

	for _, tt := range tests {
		raw := e.ElevationAt(tt.x, tt.y)
		if got := iso.Elevation(raw); got != tt.expected {
			t.Errorf("Elevation(ElevationAt(%d, %d)) = %d, expected %d", tt.x, tt.y, got, tt.expected)
		}
		if style := raw >> 16; style != 1 {
			t.Errorf("ElevationAt(%d, %d) style = %d, expected 1", tt.x, tt.y, style)
		}
	}
}

func TestSavedView(t *testing.T) {
	e := New()
	e.SetPark(mustPark(t, "map_size: 2\nsaved_view: {x: 100, y: -20, zoom: 2, rotation: 7}"))

	got := e.SavedView()
	expected := core.ViewState{X: 100, Y: -20, Zoom: 2, Rotation: 3}
	if got != expected {
		t.Errorf("SavedView() = %+v, expected %+v", got, expected)
	}
	if e.Rotation() != 3 {
		t.Errorf("Rotation() = %d, expected 3", e.Rotation())
	}
}

func TestSavedViewDefaultsToCentre(t *testing.T) {
	e := New()
	e.SetPark(mustPark(t, "map_size: 2\nheights: [[0, 0], [0, 4]]"))

	// Centre tile (1, 1) is at world (48, 48) with z = 32.
	got := e.SavedView()
	if got.X != 0 || got.Y != 16 {
		t.Errorf("SavedView() = (%d, %d), expected (0, 16)", got.X, got.Y)
	}
}

func TestRenderBeforePlayingShowsIntro(t *testing.T) {
	e := New()
	e.SetPark(mustPark(t, islandPark))

	buf, _ := core.NewPixelBuffer(16, 16)
	e.RenderViewport(buf, islandViewport())
	for i, px := range buf.Pix() {
		if px != indexIntro {
			t.Fatalf("pixel %d = %d, expected intro %d", i, px, indexIntro)
		}
	}
}

func TestRenderTerrainAndSprites(t *testing.T) {
	e := playing(t, islandPark)

	buf, _ := core.NewPixelBuffer(64, 64)
	e.RenderViewport(buf, islandViewport())

	if got := buf.At(0, 0); got != indexBackground {
		t.Errorf("At(0, 0) = %d, expected background %d", got, indexBackground)
	}
	if got := buf.At(32, 40); got != rampGrass+5 {
		t.Errorf("At(32, 40) = %d, expected grass shade %d", got, rampGrass+5)
	}
	if got := buf.At(32, 31); got != rampSprite+3 {
		t.Errorf("At(32, 31) = %d, expected sprite %d", got, rampSprite+3)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	e := playing(t, "map_size: 4\nheights: [[1, 2, 3, 4], [0, 1, 2, 3], [0, 0, 1, 2], [0, 0, 0, 1]]")

	for rot := iso.Rotation(0); rot < iso.RotationCount; rot++ {
		w, h := iso.GiantSize(4, 1)
		vp := core.NewViewport(w, h, 1, rot)
		cx, cy := iso.MapCentre(4)
		sx, sy := iso.Project(cx, cy, 0, rot)
		vp.CentreOn(sx, sy)

		a, _ := core.NewPixelBuffer(w, h)
		b, _ := core.NewPixelBuffer(w, h)
		e.RenderViewport(a, vp)
		e.RenderViewport(b, vp)
		for i := range a.Pix() {
			if a.Pix()[i] != b.Pix()[i] {
				t.Fatalf("rotation %d: pixel %d differs between renders", rot, i)
			}
		}
	}
}

func TestQuadrantCache(t *testing.T) {
	e := playing(t, islandPark)
	buf, _ := core.NewPixelBuffer(64, 64)

	e.RenderViewport(buf, islandViewport())
	first := e.Placements()
	if first == 0 {
		t.Fatal("Placements() = 0 after first render")
	}

	e.RenderViewport(buf, islandViewport())
	if got := e.Placements(); got != first {
		t.Errorf("Placements() = %d after cached render, expected %d", got, first)
	}

	e.ResetQuadrantPlacements()
	e.RenderViewport(buf, islandViewport())
	if got := e.Placements(); got != 2*first {
		t.Errorf("Placements() = %d after reset, expected %d", got, 2*first)
	}
}

func TestUpdateCyclesWater(t *testing.T) {
	e := New()
	before := make([]color.NRGBA, len(e.LivePalette()))
	copy(before, e.LivePalette())

	e.Update()

	after := e.LivePalette()
	if after[waterFirst] != before[waterFirst+1] {
		t.Errorf("water[0] = %v, expected %v", after[waterFirst], before[waterFirst+1])
	}
	if after[waterFirst+waterCount-1] != before[waterFirst] {
		t.Errorf("water[last] = %v, expected %v", after[waterFirst+waterCount-1], before[waterFirst])
	}
	if after[0] != before[0] {
		t.Errorf("entry 0 changed by Update")
	}
	if e.Frame() != 1 {
		t.Errorf("Frame() = %d, expected 1", e.Frame())
	}
}

func TestPaletteOverride(t *testing.T) {
	e := New()
	e.SetPark(mustPark(t, "map_size: 1\npalette: ['#ff0000', '00ff00']"))

	pal := e.LivePalette()
	if len(pal) != core.PaletteSize {
		t.Fatalf("len(LivePalette()) = %d, expected %d", len(pal), core.PaletteSize)
	}
	if pal[0] != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("pal[0] = %v, expected red", pal[0])
	}
	if pal[1] != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("pal[1] = %v, expected green", pal[1])
	}
}

func TestOpenThroughRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.PARK.yaml")
	if err := os.WriteFile(path, []byte(islandPark), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := engine.Open(path)
	if err != nil {
		t.Fatalf("engine.Open() error = %v", err)
	}
	defer e.Close()

	if e.Name() != Name {
		t.Errorf("Name() = %q, expected %q", e.Name(), Name)
	}
	if e.MapSize() != 1 {
		t.Errorf("MapSize() = %d, expected 1", e.MapSize())
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := engine.Open(filepath.Join(t.TempDir(), "missing.park.yml")); err == nil {
		t.Error("engine.Open() expected error for missing file")
	}
}
