// Package iso implements the fixed four-way isometric world-to-screen
// projection used to position map coordinates on a render surface.
//
// Everything here is pure: identical inputs always produce identical
// outputs, which keeps screenshot renders reproducible.
package iso

import "fmt"

// Rotation is one of the four view rotations, 0 through 3.
type Rotation uint8

// RotationCount is the number of distinct rotations.
const RotationCount = 4

// Map geometry in world units.
const (
	TileSize     = 32 // World units per map tile edge
	HalfTileSize = TileSize / 2
)

// Padding added to giant capture buffers for UI chrome and borders.
const (
	GiantPadX = 8
	GiantPadY = 128
)

// MaskRotation reduces an arbitrary integer to a rotation by keeping its
// low two bits.
func MaskRotation(r int) Rotation {
	return Rotation(r & 3)
}

// Valid reports whether r is one of the four rotations.
func (r Rotation) Valid() bool {
	return r < RotationCount
}

// Next returns the rotation a quarter turn clockwise.
func (r Rotation) Next() Rotation {
	return MaskRotation(int(r) + 1)
}

// Prev returns the rotation a quarter turn anticlockwise.
func (r Rotation) Prev() Rotation {
	return MaskRotation(int(r) + 3)
}

// Elevation masks a raw terrain height to its 16-bit fixed-point value.
func Elevation(raw int) int {
	return raw & 0xFFFF
}

// Project converts a world point at elevation z to screen space for the
// given rotation. z is expected to already be masked with Elevation.
// Project panics on an unmasked rotation.
func Project(wx, wy, z int, r Rotation) (sx, sy int) {
	switch r {
	case 0:
		return wy - wx, (wx+wy)/2 - z
	case 1:
		return -wy - wx, (-wx+wy)/2 - z
	case 2:
		return -wy + wx, (-wx-wy)/2 - z
	case 3:
		return wy + wx, (wx-wy)/2 - z
	}
	panic(fmt.Sprintf("iso: rotation %d out of range", r))
}

// ViewOrigin returns the view origin that centres the screen point
// (sx, sy) in a view of the given logical size at the given zoom level.
func ViewOrigin(sx, sy, logicalW, logicalH, zoom int) (vx, vy int) {
	return sx - (logicalW<<zoom)/2, sy - (logicalH<<zoom)/2
}

// MapCentre returns the world coordinates of the centre tile of a square
// map with mapSize tiles per side.
func MapCentre(mapSize int) (x, y int) {
	c := (mapSize/2)*TileSize + HalfTileSize
	return c, c
}

// GiantSize returns the pixel size of a buffer covering a whole map of
// mapSize tiles per side at the given zoom level.
func GiantSize(mapSize, zoom int) (width, height int) {
	width = (mapSize*TileSize*2)>>zoom + GiantPadX
	height = (mapSize*TileSize)>>zoom + GiantPadY
	return width, height
}
