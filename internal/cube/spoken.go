package cube

import "strings"

// spoken maps each face to its CW, CCW and Half phrases.
// Reference frame: white on top, green in front, facing the cube.
//
//	R  -> "R up"            R' -> "R down"
//	U  -> "T rotate right"  U' -> "T rotate left"
//	F  -> "F rotate clockwise"
var spoken = map[Face][3]string{
	R: {"R up", "R down", "R up x 2"},
	L: {"L down", "L up", "L down x 2"},
	U: {"T rotate right", "T rotate left", "T rotate right x 2"},
	D: {"B rotate right", "B rotate left", "B rotate right x 2"},
	F: {"F rotate clockwise", "F rotate anti-clockwise", "F rotate x 2"},
	B: {"Back rotate clockwise", "Back rotate anti-clockwise", "Back rotate x 2"},
}

// Spoken describes the turn the way a person holding the cube would say it.
func (t Turn) Spoken() string {
	phrases, ok := spoken[t.Face]
	if !ok {
		return t.Notation()
	}
	switch t.Dir {
	case CW:
		return phrases[0]
	case CCW:
		return phrases[1]
	case Half:
		return phrases[2]
	}
	return t.Notation()
}

// FormatSpoken joins the spoken form of turns with commas.
func FormatSpoken(turns []Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.Spoken()
	}
	return strings.Join(parts, ", ")
}
