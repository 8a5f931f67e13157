package render

import (
	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// Sticker is one colored facelet carried by a cubie.
type Sticker struct {
	Slot  int
	Face  cube.Face // face the sticker points at before Orientation
	Color cube.Color
}

// Cubie is one of the 26 visible sub-cubes, derived from facelet state.
type Cubie struct {
	// Position is the lattice position, each coordinate in {-1, 0, 1}.
	Position geom.Vec3
	// Orientation is the rotation applied for display: identity at rest,
	// the in-flight layer rotation while a turn animates.
	Orientation geom.Mat3
	Stickers    []Sticker
	// Moving marks cubies in the turning layer.
	Moving bool
}

// Cubies derives the 26 cubies from the facelet state. When active is not
// nil the cubies of the turning layer carry its rotation.
func Cubies(c cube.Cube, active *anim.Active) []Cubie {
	index := make(map[geom.Vec3]int, 26)
	cubies := make([]Cubie, 0, 26)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				p := geom.Vec3{float64(x), float64(y), float64(z)}
				cb := Cubie{Position: p, Orientation: geom.Identity()}
				if active != nil && inLayer(p, active.Turn.Face) {
					cb.Orientation = active.Rotation
					cb.Moving = true
				}
				index[p] = len(cubies)
				cubies = append(cubies, cb)
			}
		}
	}

	for slot := 0; slot < cube.NumFacelets; slot++ {
		f, _, _ := cube.Position(slot)
		i := index[CubiePosition(slot)]
		cubies[i].Stickers = append(cubies[i].Stickers, Sticker{
			Slot:  slot,
			Face:  f,
			Color: c.At(slot),
		})
	}
	return cubies
}
