package protocol

import (
	"github.com/SeamusWaldron/gocube3d/internal/cube"
)

// FaceOf returns the face whose center has color c in the standard
// orientation: white up, green front.
func FaceOf(c cube.Color) (cube.Face, bool) {
	for _, f := range cube.Faces {
		if f.SolvedColor() == c {
			return f, true
		}
	}
	return 0, false
}

// RotationToTurn converts a GoCube rotation event to a quarter turn.
func RotationToTurn(rot RotationEvent) (cube.Turn, bool) {
	face, ok := FaceOf(rot.Color)
	if !ok {
		return cube.Turn{}, false
	}
	dir := cube.CCW
	if rot.Clockwise {
		dir = cube.CW
	}
	return cube.Turn{Face: face, Dir: dir}, true
}

// RotationsToTurns converts one notification's rotations to turns, merging
// adjacent same-face quarter turns (R R becomes R2, R R' cancels).
func RotationsToTurns(rotations []RotationEvent) []cube.Turn {
	turns := make([]cube.Turn, 0, len(rotations))
	for _, rot := range rotations {
		if t, ok := RotationToTurn(rot); ok {
			turns = append(turns, t)
		}
	}
	return MergeTurns(turns)
}

// quarters returns a turn as signed quarter turns.
func quarters(t cube.Turn) int {
	switch t.Dir {
	case cube.CW:
		return 1
	case cube.CCW:
		return -1
	case cube.Half:
		return 2
	}
	return 0
}

// MergeTurns merges adjacent same-face turns.
// For example: R R becomes R2, R R R becomes R', R R R R cancels out.
func MergeTurns(turns []cube.Turn) []cube.Turn {
	if len(turns) <= 1 {
		return turns
	}

	result := make([]cube.Turn, 0, len(turns))
	for _, t := range turns {
		if len(result) == 0 || result[len(result)-1].Face != t.Face {
			result = append(result, t)
			continue
		}

		last := &result[len(result)-1]
		switch ((quarters(*last)+quarters(t))%4 + 4) % 4 {
		case 0:
			// Turns cancelled out
			result = result[:len(result)-1]
		case 1:
			last.Dir = cube.CW
		case 2:
			last.Dir = cube.Half
		case 3:
			last.Dir = cube.CCW
		}
	}
	return result
}
