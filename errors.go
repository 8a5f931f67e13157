package gocube3d

import (
	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// Sentinel errors for the gocube3d package.
var (
	// Turn errors
	ErrInvalidFace       = cube.ErrInvalidFace
	ErrInvalidNotation   = cube.ErrInvalidNotation
	ErrAnimationConflict = anim.ErrAnimationConflict

	// Rendering errors
	ErrDegenerateProjection = geom.ErrDegenerateProjection
)
