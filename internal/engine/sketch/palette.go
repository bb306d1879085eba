package sketch

import "image/color"

// Palette layout.
const (
	indexBackground = 1
	indexIntro      = 2
	indexEdge       = 3
	rampGrass       = 16 // 16 shades each
	rampSand        = 32
	rampDirt        = 48
	rampSprite      = 64
	waterFirst      = 230 // Animated range
	waterCount      = 8
)

var terrainBases = map[string]uint8{
	"":      rampGrass,
	"grass": rampGrass,
	"sand":  rampSand,
	"dirt":  rampDirt,
}

// terrainStyles is stored in the high 16 bits of ElevationAt.
var terrainStyles = map[uint8]int{
	rampGrass: 0,
	rampSand:  1,
	rampDirt:  2,
}

func ramp(p []color.NRGBA, base int, r, g, b uint8) {
	for i := 0; i < 16; i++ {
		k := 96 + i*10
		p[base+i] = color.NRGBA{
			R: uint8(int(r) * k / 256),
			G: uint8(int(g) * k / 256),
			B: uint8(int(b) * k / 256),
			A: 255,
		}
	}
}

// defaultPalette builds the sketch palette. Entries without a role form a
// grey gradient so every index renders as something visible.
func defaultPalette() []color.NRGBA {
	p := make([]color.NRGBA, 256)
	for i := range p {
		v := uint8(i)
		p[i] = color.NRGBA{R: v, G: v, B: v, A: 255}
	}
	p[0] = color.NRGBA{A: 255}
	p[indexBackground] = color.NRGBA{R: 24, G: 28, B: 40, A: 255}
	p[indexIntro] = color.NRGBA{R: 120, G: 20, B: 24, A: 255}
	p[indexEdge] = color.NRGBA{R: 16, G: 16, B: 16, A: 255}

	ramp(p, rampGrass, 90, 200, 70)
	ramp(p, rampSand, 230, 210, 140)
	ramp(p, rampDirt, 160, 110, 70)

	sprites := [][3]uint8{
		{230, 40, 40}, {240, 150, 30}, {240, 230, 40}, {60, 200, 60},
		{40, 200, 220}, {50, 90, 230}, {160, 60, 220}, {230, 80, 180},
		{250, 250, 250}, {120, 80, 40}, {20, 120, 40}, {200, 200, 200},
		{90, 90, 90}, {255, 200, 160}, {30, 30, 120}, {140, 0, 0},
	}
	for i, c := range sprites {
		p[rampSprite+i] = color.NRGBA{R: c[0], G: c[1], B: c[2], A: 255}
	}

	for i := 0; i < waterCount; i++ {
		p[waterFirst+i] = color.NRGBA{R: 20, G: uint8(80 + i*12), B: uint8(160 + i*10), A: 255}
	}
	return p
}

// cycleWater rotates the animated water entries by one step.
func cycleWater(p []color.NRGBA) {
	first := p[waterFirst]
	copy(p[waterFirst:waterFirst+waterCount-1], p[waterFirst+1:waterFirst+waterCount])
	p[waterFirst+waterCount-1] = first
}
