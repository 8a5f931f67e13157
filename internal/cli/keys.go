package cli

import (
	"strings"

	"github.com/SeamusWaldron/gocube3d"
)

// turnKeys maps a lower-case key to its face.
var turnKeys = map[string]gocube3d.Face{
	"f": gocube3d.Front,
	"b": gocube3d.Back,
	"r": gocube3d.Right,
	"l": gocube3d.Left,
	"u": gocube3d.Up,
	"d": gocube3d.Down,
}

// keyTurn maps a key to a turn: lower case is clockwise, upper case is
// counter-clockwise and alt+ is a half turn.
func keyTurn(key string) (gocube3d.TurnCommand, bool) {
	double := false
	if rest, ok := strings.CutPrefix(key, "alt+"); ok {
		key = rest
		double = true
	}
	if len(key) != 1 {
		return gocube3d.TurnCommand{}, false
	}

	face, ok := turnKeys[strings.ToLower(key)]
	if !ok {
		return gocube3d.TurnCommand{}, false
	}
	return gocube3d.TurnCommand{
		Face:      face,
		Clockwise: key == strings.ToLower(key),
		Double:    double,
	}, true
}

// arrowDelta maps an arrow key to a camera change of step degrees.
func arrowDelta(key string, step float64) (gocube3d.CameraDelta, bool) {
	switch key {
	case "up":
		return gocube3d.CameraDelta{Pitch: -step}, true
	case "down":
		return gocube3d.CameraDelta{Pitch: step}, true
	case "left":
		return gocube3d.CameraDelta{Yaw: -step}, true
	case "right":
		return gocube3d.CameraDelta{Yaw: step}, true
	}
	return gocube3d.CameraDelta{}, false
}
