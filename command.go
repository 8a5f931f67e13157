package gocube3d

import (
	"fmt"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

// Face identifies one of the six faces.
type Face = cube.Face

// Face identifiers.
const (
	Up    = cube.U
	Down  = cube.D
	Front = cube.F
	Back  = cube.B
	Right = cube.R
	Left  = cube.L
)

type (
	// Event is emitted once for every committed turn.
	Event = anim.Event
	// Frame is the ordered polygon output of one render.
	Frame = render.Frame
	// Polygon is a filled screen-space quadrilateral.
	Polygon = render.Polygon
)

// TurnCommand asks for one face turn. Double wins over Clockwise.
type TurnCommand struct {
	Face      Face
	Clockwise bool
	Double    bool
}

// Turn converts the command to a cube turn.
func (c TurnCommand) Turn() (cube.Turn, error) {
	if !c.Face.Valid() {
		return cube.Turn{}, fmt.Errorf("turn command face %d: %w", int(c.Face), ErrInvalidFace)
	}
	dir := cube.CCW
	switch {
	case c.Double:
		dir = cube.Half
	case c.Clockwise:
		dir = cube.CW
	}
	return cube.Turn{Face: c.Face, Dir: dir}, nil
}

// Notation returns the command in standard notation, e.g. "R'".
func (c TurnCommand) Notation() string {
	t, err := c.Turn()
	if err != nil {
		return "?"
	}
	return t.Notation()
}

// CommandFor converts a cube turn back to a command.
func CommandFor(t cube.Turn) TurnCommand {
	return TurnCommand{
		Face:      t.Face,
		Clockwise: t.Dir != cube.CCW,
		Double:    t.Dir == cube.Half,
	}
}

// ParseTurnCommand parses a single turn in standard notation.
func ParseTurnCommand(s string) (TurnCommand, error) {
	t, err := cube.ParseTurn(s)
	if err != nil {
		return TurnCommand{}, err
	}
	return CommandFor(t), nil
}

// ParseTurnCommands parses a space-separated turn sequence.
func ParseTurnCommands(s string) ([]TurnCommand, error) {
	turns, err := cube.ParseTurns(s)
	if err != nil {
		return nil, err
	}
	cmds := make([]TurnCommand, len(turns))
	for i, t := range turns {
		cmds[i] = CommandFor(t)
	}
	return cmds, nil
}

// CameraDelta is a camera rotation in degrees, applied once per tick while
// its input is held.
type CameraDelta struct {
	Pitch float64
	Yaw   float64
}

// IsZero reports whether d rotates nothing.
func (d CameraDelta) IsZero() bool {
	return d.Pitch == 0 && d.Yaw == 0
}
