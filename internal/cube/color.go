package cube

import "fmt"

// Color represents a facelet color. The zero value is Empty, used for
// facelets that have not been assigned.
type Color byte

const (
	Empty  Color = iota
	White        // Up face when solved
	Yellow       // Down face when solved
	Green        // Front face when solved
	Blue         // Back face when solved
	Red          // Right face when solved
	Orange       // Left face when solved
)

// Colors lists the six sticker colors in face order.
var Colors = [6]Color{White, Yellow, Green, Blue, Red, Orange}

func (c Color) String() string {
	switch c {
	case Empty:
		return "."
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Name returns the lower-case color name, e.g. "white".
func (c Color) Name() string {
	switch c {
	case Empty:
		return "empty"
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Orange:
		return "orange"
	default:
		return fmt.Sprintf("color(%d)", byte(c))
	}
}

// Valid reports whether c is one of the six sticker colors.
func (c Color) Valid() bool {
	return c >= White && c <= Orange
}

// Face identifies one of the six cube faces.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

// Faces lists all faces in index order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// Name returns the long face name, e.g. "front".
func (f Face) Name() string {
	switch f {
	case U:
		return "up"
	case D:
		return "down"
	case F:
		return "front"
	case B:
		return "back"
	case R:
		return "right"
	case L:
		return "left"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= U && f <= L
}

// SolvedColor returns the color of a face when solved.
func (f Face) SolvedColor() Color {
	if !f.Valid() {
		return Empty
	}
	return Colors[f]
}

// ParseFace parses a face letter (U, D, F, B, R, L; either case).
func ParseFace(s string) (Face, error) {
	switch s {
	case "U", "u":
		return U, nil
	case "D", "d":
		return D, nil
	case "F", "f":
		return F, nil
	case "B", "b":
		return B, nil
	case "R", "r":
		return R, nil
	case "L", "l":
		return L, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
}

// Normal returns the outward unit normal of a face in cube space: x to the
// right, y up and z towards the viewer looking at F.
func (f Face) Normal() [3]float64 {
	switch f {
	case U:
		return [3]float64{0, 1, 0}
	case D:
		return [3]float64{0, -1, 0}
	case F:
		return [3]float64{0, 0, 1}
	case B:
		return [3]float64{0, 0, -1}
	case R:
		return [3]float64{1, 0, 0}
	case L:
		return [3]float64{-1, 0, 0}
	}
	return [3]float64{}
}
