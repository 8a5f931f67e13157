package cube

import "errors"

// Sentinel errors for the cube package.
var (
	ErrInvalidFace      = errors.New("cube: invalid face")
	ErrInvalidDirection = errors.New("cube: invalid turn direction")
	ErrInvalidNotation  = errors.New("cube: invalid move notation")
	ErrInvalidTable     = errors.New("cube: invalid permutation table")
	ErrInvalidColor     = errors.New("cube: invalid color")
)
