package cube

import (
	"fmt"
	"strings"
)

// Direction is the direction and amount of a face turn, as seen looking at
// the face from outside the cube.
type Direction int

const (
	CW   Direction = 1  // Clockwise (90 degrees)
	CCW  Direction = -1 // Counter-clockwise (90 degrees)
	Half Direction = 2  // Half turn (180 degrees)
)

func (d Direction) String() string {
	switch d {
	case CW:
		return "cw"
	case CCW:
		return "ccw"
	case Half:
		return "half"
	default:
		return "?"
	}
}

// Valid reports whether d is CW, CCW or Half.
func (d Direction) Valid() bool {
	return d == CW || d == CCW || d == Half
}

// Turn is a single face turn.
type Turn struct {
	Face Face
	Dir  Direction
}

// Validate checks the face and direction.
func (t Turn) Validate() error {
	if !t.Face.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFace, int(t.Face))
	}
	if !t.Dir.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(t.Dir))
	}
	return nil
}

// Notation returns the standard notation for the turn.
// Examples: R, R', R2
func (t Turn) Notation() string {
	suffix := ""
	switch t.Dir {
	case CCW:
		suffix = "'"
	case Half:
		suffix = "2"
	}
	return t.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (t Turn) String() string {
	return t.Notation()
}

// Inverse returns the turn that undoes t.
// R becomes R', R' becomes R, R2 stays R2.
func (t Turn) Inverse() Turn {
	inv := t
	switch t.Dir {
	case CW:
		inv.Dir = CCW
	case CCW:
		inv.Dir = CW
	}
	return inv
}

// Angle returns the signed rotation of the turned layer in degrees about the
// face's outward normal. Clockwise, viewed from outside, is negative.
func (t Turn) Angle() float64 {
	switch t.Dir {
	case CW:
		return -90
	case CCW:
		return 90
	case Half:
		return -180
	default:
		return 0
	}
}

// ParseTurn parses a standard notation string into a Turn.
// Examples: R, R', R2, u, U2'
func ParseTurn(s string) (Turn, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Turn{}, fmt.Errorf("%w: empty", ErrInvalidNotation)
	}

	face, err := ParseFace(s[:1])
	if err != nil {
		return Turn{}, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, s, err)
	}

	dir := CW
	switch s[1:] {
	case "":
	case "'", "`":
		dir = CCW
	case "2", "2'", "2`":
		dir = Half
	default:
		return Turn{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return Turn{Face: face, Dir: dir}, nil
}

// ParseTurns parses a whitespace separated move sequence, e.g. "R U R' U'".
func ParseTurns(s string) ([]Turn, error) {
	fields := strings.Fields(s)
	turns := make([]Turn, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTurn(f)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// FormatTurns joins turns in standard notation.
func FormatTurns(turns []Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.Notation()
	}
	return strings.Join(parts, " ")
}

// InvertTurns returns the sequence that undoes turns.
func InvertTurns(turns []Turn) []Turn {
	inv := make([]Turn, len(turns))
	for i, t := range turns {
		inv[len(turns)-1-i] = t.Inverse()
	}
	return inv
}
