package sketch

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/parkshot/internal/core"
)

// MaxMapSize is the largest supported map edge in tiles.
const MaxMapSize = 256

// HeightUnit is the world-space z of one terrain height step.
const HeightUnit = 8

// Park is the on-disk description of a sketch park.
type Park struct {
	Name    string      `yaml:"name"`
	MapSize int         `yaml:"map_size"`
	Terrain string      `yaml:"terrain"` // "grass", "sand" or "dirt"
	Heights [][]int     `yaml:"heights"` // Rows of tile heights; missing tiles are 0
	View    SavedView   `yaml:"saved_view"`
	Sprites []SpriteDef `yaml:"sprites"`
	Palette []string    `yaml:"palette"` // Optional "#rrggbb" overrides from index 0
}

// SavedView is the persisted main-view position.
type SavedView struct {
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
	Zoom     int `yaml:"zoom"`
	Rotation int `yaml:"rotation"`
}

// SpriteDef places a sprite at a world position.
type SpriteDef struct {
	X      int   `yaml:"x"`
	Y      int   `yaml:"y"`
	Z      int   `yaml:"z"`
	Colour uint8 `yaml:"colour"`
}

// LoadPark reads and validates a park file.
func LoadPark(path string) (*Park, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sketch: failed to read park %s: %w", path, err)
	}
	return ParsePark(data)
}

// ParsePark decodes and validates park YAML.
func ParsePark(data []byte) (*Park, error) {
	var p Park
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("sketch: failed to parse park: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the park and normalises the terrain name.
func (p *Park) Validate() error {
	if p.MapSize <= 0 || p.MapSize > MaxMapSize {
		return fmt.Errorf("sketch: map_size %d out of range 1..%d", p.MapSize, MaxMapSize)
	}
	if len(p.Heights) > p.MapSize {
		return fmt.Errorf("sketch: %d height rows for map size %d", len(p.Heights), p.MapSize)
	}
	for y, row := range p.Heights {
		if len(row) > p.MapSize {
			return fmt.Errorf("sketch: height row %d has %d tiles for map size %d", y, len(row), p.MapSize)
		}
		for x, h := range row {
			if h < 0 || h > 255 {
				return fmt.Errorf("sketch: height %d at (%d, %d) out of range 0..255", h, x, y)
			}
		}
	}
	if p.View.Zoom < 0 || p.View.Zoom > core.MaxZoom {
		return fmt.Errorf("sketch: saved_view zoom %d out of range 0..%d", p.View.Zoom, core.MaxZoom)
	}
	p.Terrain = strings.ToLower(p.Terrain)
	if _, ok := terrainBases[p.Terrain]; !ok {
		return fmt.Errorf("sketch: unknown terrain %q", p.Terrain)
	}
	if len(p.Palette) > 256 {
		return fmt.Errorf("sketch: palette has %d entries, at most 256 allowed", len(p.Palette))
	}
	for i, hex := range p.Palette {
		if _, err := parseHex(hex); err != nil {
			return fmt.Errorf("sketch: palette entry %d: %w", i, err)
		}
	}
	return nil
}

// Height returns the terrain height of tile (tx, ty), 0 outside the data.
func (p *Park) Height(tx, ty int) int {
	if ty < 0 || ty >= len(p.Heights) {
		return 0
	}
	row := p.Heights[ty]
	if tx < 0 || tx >= len(row) {
		return 0
	}
	return row[tx]
}

// parseHex parses "#rrggbb".
func parseHex(s string) ([3]uint8, error) {
	var rgb [3]uint8
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb, fmt.Errorf("invalid colour %q", s)
	}
	rgb[0] = uint8(v >> 16)
	rgb[1] = uint8(v >> 8)
	rgb[2] = uint8(v)
	return rgb, nil
}
