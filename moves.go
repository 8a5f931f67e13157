package gocube3d

// Predefined turn commands for convenience.
//
// Example:
//
//	v.Turn(gocube3d.R)
var (
	// Right face turns
	R      = TurnCommand{Face: Right, Clockwise: true}
	RPrime = TurnCommand{Face: Right}
	R2     = TurnCommand{Face: Right, Clockwise: true, Double: true}

	// Left face turns
	L      = TurnCommand{Face: Left, Clockwise: true}
	LPrime = TurnCommand{Face: Left}
	L2     = TurnCommand{Face: Left, Clockwise: true, Double: true}

	// Up face turns
	U      = TurnCommand{Face: Up, Clockwise: true}
	UPrime = TurnCommand{Face: Up}
	U2     = TurnCommand{Face: Up, Clockwise: true, Double: true}

	// Down face turns
	D      = TurnCommand{Face: Down, Clockwise: true}
	DPrime = TurnCommand{Face: Down}
	D2     = TurnCommand{Face: Down, Clockwise: true, Double: true}

	// Front face turns
	F      = TurnCommand{Face: Front, Clockwise: true}
	FPrime = TurnCommand{Face: Front}
	F2     = TurnCommand{Face: Front, Clockwise: true, Double: true}

	// Back face turns
	B      = TurnCommand{Face: Back, Clockwise: true}
	BPrime = TurnCommand{Face: Back}
	B2     = TurnCommand{Face: Back, Clockwise: true, Double: true}
)

// SexyMove is R U R' U'.
var SexyMove = []TurnCommand{R, U, RPrime, UPrime}

// TPerm swaps two adjacent corners and two edges of the top layer.
var TPerm = []TurnCommand{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
