// Package cube provides the 3x3 Rubik's cube state model and the face-turn
// permutation engine.
//
// State is a flat array of 54 facelet slots. Slot index is face*9 + row*3 +
// col with faces ordered U, D, F, B, R, L and each face laid out as
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// as seen from outside the cube. Cube is a value type: turning returns a new
// Cube and never modifies the receiver.
package cube

import (
	"fmt"
	"strings"
)

// NumFacelets is the number of facelet slots on a cube.
const NumFacelets = 54

// Cube is the facelet state of a 3x3 cube.
type Cube struct {
	facelets [NumFacelets]Color
}

// Index returns the slot index of a facelet.
func Index(f Face, row, col int) int {
	return int(f)*9 + row*3 + col
}

// Position returns the face, row and column of a slot index.
func Position(slot int) (Face, int, int) {
	return Face(slot / 9), (slot % 9) / 3, slot % 3
}

// New creates a solved cube with standard orientation:
// White on top, Green in front.
func New() Cube {
	var c Cube
	for _, face := range Faces {
		color := face.SolvedColor()
		for i := 0; i < 9; i++ {
			c.facelets[int(face)*9+i] = color
		}
	}
	return c
}

// FromFacelets builds a cube from raw facelet colors. Every slot must hold one
// of the six sticker colors.
func FromFacelets(facelets [NumFacelets]Color) (Cube, error) {
	for i, col := range facelets {
		if !col.Valid() {
			face, row, c := Position(i)
			return Cube{}, fmt.Errorf("%w: %v at %v[%d][%d]", ErrInvalidColor, col, face, row, c)
		}
	}
	return Cube{facelets: facelets}, nil
}

// Facelets returns a copy of the raw facelet colors.
func (c Cube) Facelets() [NumFacelets]Color {
	return c.facelets
}

// At returns the color at a slot index.
func (c Cube) At(slot int) Color {
	if slot < 0 || slot >= NumFacelets {
		return Empty
	}
	return c.facelets[slot]
}

// Face returns the 3x3 grid of colors on a face, as seen from outside.
func (c Cube) Face(f Face) ([3][3]Color, error) {
	var grid [3][3]Color
	if !f.Valid() {
		return grid, fmt.Errorf("%w: %d", ErrInvalidFace, int(f))
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			grid[row][col] = c.facelets[Index(f, row, col)]
		}
	}
	return grid, nil
}

// Center returns the center color of a face.
func (c Cube) Center(f Face) Color {
	if !f.Valid() {
		return Empty
	}
	return c.facelets[Index(f, 1, 1)]
}

// IsSolved returns true if every face shows a single color.
func (c Cube) IsSolved() bool {
	for _, face := range Faces {
		base := int(face) * 9
		want := c.facelets[base]
		if want == Empty {
			return false
		}
		for i := 1; i < 9; i++ {
			if c.facelets[base+i] != want {
				return false
			}
		}
	}
	return true
}

// ColorCounts returns how many facelets hold each color, indexed by Color.
func (c Cube) ColorCounts() [Orange + 1]int {
	var counts [Orange + 1]int
	for _, col := range c.facelets {
		if int(col) < len(counts) {
			counts[col]++
		}
	}
	return counts
}

// Net is the unfolded layout used by String: U above, L F R B across the
// middle and D below, each cell a facelet slot or -1.
func Net() [9][12]int {
	var net [9][12]int
	for r := range net {
		for c := range net[r] {
			net[r][c] = -1
		}
	}
	place := func(f Face, top, left int) {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				net[top+row][left+col] = Index(f, row, col)
			}
		}
	}
	place(U, 0, 3)
	place(L, 3, 0)
	place(F, 3, 3)
	place(R, 3, 6)
	place(B, 3, 9)
	place(D, 6, 3)
	return net
}

// String returns the unfolded net as text.
func (c Cube) String() string {
	var sb strings.Builder
	for _, line := range Net() {
		row := make([]string, 0, len(line))
		for _, slot := range line {
			if slot < 0 {
				row = append(row, " ")
				continue
			}
			row = append(row, c.facelets[slot].String())
		}
		sb.WriteString(strings.TrimRight(strings.Join(row, " "), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
