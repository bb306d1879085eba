package sketch

import (
	"sort"

	"github.com/vovakirdan/parkshot/internal/core"
	"github.com/vovakirdan/parkshot/internal/iso"
)

// quadrantSize is the edge of a sprite bucket in screen units.
const quadrantSize = 256

// Sprite marker size in screen units at zoom 0.
const (
	spriteWidth  = 8
	spriteHeight = 12
)

type quadrantKey struct {
	rot    iso.Rotation
	qx, qy int
}

type tile struct {
	sx, sy int // Projected centre, elevation applied
	depth  int
	index  uint8
}

// RenderViewport draws the park as seen through vp into dst.
func (e *Engine) RenderViewport(dst *core.PixelBuffer, vp core.Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		dst.Fill(indexIntro)
		return
	}

	dst.Fill(indexBackground)
	e.drawTerrain(dst, vp)
	e.drawSprites(dst, vp)
}

// screenRect returns the screen-space area covered by vp.
func screenRect(vp core.Viewport) core.Rect {
	return core.NewRect(vp.X, vp.Y, vp.Width<<vp.Zoom, vp.Height<<vp.Zoom)
}

func (e *Engine) drawTerrain(dst *core.PixelBuffer, vp core.Viewport) {
	size := e.park.MapSize
	area := screenRect(vp)
	// Grow by one tile plus the tallest possible column so edge tiles are kept.
	margin := iso.TileSize * 2
	area = core.NewRect(area.X-margin, area.Y-margin, area.W+2*margin, area.H+2*margin+255*HeightUnit)

	tiles := make([]tile, 0, size*size)
	for ty := 0; ty < size; ty++ {
		for tx := 0; tx < size; tx++ {
			wx := tx*iso.TileSize + iso.HalfTileSize
			wy := ty*iso.TileSize + iso.HalfTileSize
			h := e.park.Height(tx, ty)
			sx, ground := iso.Project(wx, wy, 0, vp.Rotation)
			if !area.Contains(sx, ground) {
				continue
			}
			tiles = append(tiles, tile{
				sx:    sx,
				sy:    ground - h*HeightUnit,
				depth: ground,
				index: e.tileIndex(tx, ty, h),
			})
		}
	}
	sort.SliceStable(tiles, func(i, j int) bool {
		return tiles[i].depth < tiles[j].depth
	})

	hw := core.Max(iso.TileSize>>vp.Zoom, 1)
	hh := core.Max(iso.HalfTileSize>>vp.Zoom, 1)
	for _, t := range tiles {
		cx, cy := vp.ToPixel(t.sx, t.sy)
		drawDiamond(dst, cx, cy, hw, hh, t.index)
	}
}

// tileIndex picks the palette index of a tile. Flat ground at height 0 is
// water and uses the animated range.
func (e *Engine) tileIndex(tx, ty, h int) uint8 {
	if h == 0 {
		return uint8(waterFirst + (tx+ty)%waterCount)
	}
	shade := core.Clamp(h, 1, 15)
	return e.base + uint8(shade)
}

func drawDiamond(dst *core.PixelBuffer, cx, cy, hw, hh int, index uint8) {
	for dy := -hh; dy <= hh; dy++ {
		span := hw * (hh - abs(dy)) / hh
		dst.HLine(cx-span, cy+dy, 2*span+1, index)
	}
	dst.Set(cx-hw, cy, indexEdge)
	dst.Set(cx+hw, cy, indexEdge)
}

func (e *Engine) drawSprites(dst *core.PixelBuffer, vp core.Viewport) {
	area := screenRect(vp)
	qx0 := floorDiv(area.X-spriteWidth, quadrantSize)
	qy0 := floorDiv(area.Y-spriteHeight, quadrantSize)
	qx1 := floorDiv(area.Right()+spriteWidth, quadrantSize)
	qy1 := floorDiv(area.Bottom()+spriteHeight, quadrantSize)

	var visible []int
	for qy := qy0; qy <= qy1; qy++ {
		for qx := qx0; qx <= qx1; qx++ {
			visible = append(visible, e.quadrant(quadrantKey{rot: vp.Rotation, qx: qx, qy: qy})...)
		}
	}
	sort.Ints(visible)

	w := core.Max(spriteWidth>>vp.Zoom, 1)
	h := core.Max(spriteHeight>>vp.Zoom, 1)
	for _, i := range visible {
		s := e.park.Sprites[i]
		sx, sy := iso.Project(s.X, s.Y, s.Z, vp.Rotation)
		px, py := vp.ToPixel(sx, sy)
		dst.FillRect(core.NewRect(px-w/2, py-h, w, h), rampSprite+s.Colour%16)
	}
}

// quadrant returns the sprites anchored in the quadrant, bucketing them on
// a cache miss.
func (e *Engine) quadrant(key quadrantKey) []int {
	if v, ok := e.quadrants.Get(key); ok {
		return v.([]int)
	}

	var bucket []int
	for i, s := range e.park.Sprites {
		sx, sy := iso.Project(s.X, s.Y, s.Z, key.rot)
		if floorDiv(sx, quadrantSize) == key.qx && floorDiv(sy, quadrantSize) == key.qy {
			bucket = append(bucket, i)
		}
	}
	e.quadrants.Add(key, bucket)
	e.placed++
	return bucket
}

// Placements returns how many quadrants have been bucketed.
func (e *Engine) Placements() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.placed
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
