// Package sketch is a lightweight engine backend that loads parks described
// in YAML and renders them as flat-shaded isometric tiles with sprite
// markers. It is enough to drive every capture mode without the full
// simulation.
package sketch

import (
	"image/color"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/engine"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// Name is the backend identifier.
const Name = "sketch"

// maxQuadrants bounds the sprite placement cache.
const maxQuadrants = 1024

func init() {
	engine.Register(func() engine.Engine { return New() }, ".park.yaml", ".park.yml")
}

// Engine is the sketch backend.
type Engine struct {
	mu sync.Mutex

	park     *Park
	style    int
	base     uint8
	palette  []color.NRGBA
	rotation iso.Rotation
	playing  bool
	frame    uint64
	closed   bool

	// Sprite indices bucketed by screen quadrant, keyed by quadrantKey.
	quadrants *lru.Cache
	placed    int // Number of quadrants bucketed since creation
}

// New creates an unloaded sketch engine. Until Load is called it renders an
// empty one-tile map.
func New() *Engine {
	return &Engine{
		park:      &Park{MapSize: 1},
		base:      rampGrass,
		palette:   defaultPalette(),
		quadrants: lru.New(maxQuadrants),
	}
}

// Name returns the backend identifier.
func (e *Engine) Name() string {
	return Name
}

// Load reads a park file and resets view and animation state.
func (e *Engine) Load(path string) error {
	p, err := LoadPark(path)
	if err != nil {
		return err
	}
	e.SetPark(p)
	return nil
}

// SetPark installs an already parsed park.
func (e *Engine) SetPark(p *Park) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.park = p
	e.base = terrainBases[p.Terrain]
	e.style = terrainStyles[e.base]
	e.palette = defaultPalette()
	for i, hex := range p.Palette {
		rgb, _ := parseHex(hex) // Validated on load
		e.palette[i] = color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
	}
	e.rotation = iso.MaskRotation(p.View.Rotation)
	e.playing = false
	e.frame = 0
	e.quadrants.Clear()
}

// StartPlaying leaves the intro state.
func (e *Engine) StartPlaying() {
	e.mu.Lock()
	e.playing = true
	e.mu.Unlock()
}

// Playing reports whether the engine left the intro state.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Update advances palette animation by one frame.
func (e *Engine) Update() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frame++
	cycleWater(e.palette)
}

// Close drops the loaded park. Closing twice is a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.quadrants.Clear()
	e.park = &Park{MapSize: 1}
	return nil
}

// Rotation returns the current view rotation.
func (e *Engine) Rotation() iso.Rotation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rotation
}

// SetRotation changes the current view rotation.
func (e *Engine) SetRotation(r iso.Rotation) {
	e.mu.Lock()
	e.rotation = iso.MaskRotation(int(r))
	e.mu.Unlock()
}

// LivePalette returns the palette used for the next frame. The slice is
// mutated by Update.
func (e *Engine) LivePalette() []color.NRGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.palette
}

// ResetQuadrantPlacements drops every cached sprite bucket.
func (e *Engine) ResetQuadrantPlacements() {
	e.mu.Lock()
	e.quadrants.Clear()
	e.mu.Unlock()
}

// MapSize returns the number of tiles along one map edge.
func (e *Engine) MapSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.park.MapSize
}

// ElevationAt returns the terrain height under world point (x, y). The low
// 16 bits hold the height, the high bits the terrain style.
func (e *Engine) ElevationAt(x, y int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elevationAt(x, y)
}

func (e *Engine) elevationAt(x, y int) int {
	h := 0
	if x >= 0 && y >= 0 {
		h = e.park.Height(x/iso.TileSize, y/iso.TileSize) * HeightUnit
	}
	return h | e.style<<16
}

// SavedView returns the park's saved view. A park without one is viewed from
// its centre tile.
func (e *Engine) SavedView() core.ViewState {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.park.View
	rot := iso.MaskRotation(v.Rotation)
	if v.X == 0 && v.Y == 0 {
		cx, cy := iso.MapCentre(e.park.MapSize)
		sx, sy := iso.Project(cx, cy, iso.Elevation(e.elevationAt(cx, cy)), rot)
		return core.ViewState{X: sx, Y: sy, Zoom: v.Zoom, Rotation: rot}
	}
	return core.ViewState{X: v.X, Y: v.Y, Zoom: v.Zoom, Rotation: rot}
}

// Frame returns the number of Update calls since the park was loaded.
func (e *Engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}
