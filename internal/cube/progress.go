package cube

// Progress detection for the layer-by-layer method, measured against the
// face centers so it holds for any color scheme.

// Phase is a stage of the layer-by-layer method. Phases are ordered from
// Scrambled to Solved and can be compared with < and >.
type Phase int

const (
	PhaseScrambled Phase = iota
	PhaseWhiteCross
	PhaseTopLayer
	PhaseMiddleLayer
	PhaseBottomCross
	PhaseCornersPositioned
	PhaseCornersOriented
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseWhiteCross:
		return "white_cross"
	case PhaseTopLayer:
		return "top_layer"
	case PhaseMiddleLayer:
		return "middle_layer"
	case PhaseBottomCross:
		return "bottom_cross"
	case PhaseCornersPositioned:
		return "corners_positioned"
	case PhaseCornersOriented:
		return "corners_oriented"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// ParsePhase parses a phase key as returned by String.
func ParsePhase(key string) (Phase, bool) {
	for p := PhaseScrambled; p <= PhaseSolved; p++ {
		if p.String() == key {
			return p, true
		}
	}
	return PhaseScrambled, false
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseWhiteCross:
		return "White Cross"
	case PhaseTopLayer:
		return "Top Layer"
	case PhaseMiddleLayer:
		return "Middle Layer"
	case PhaseBottomCross:
		return "Bottom Cross"
	case PhaseCornersPositioned:
		return "Bottom Corners Positioned"
	case PhaseCornersOriented:
		return "Bottom Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// sides are the four side faces in U-turn order.
var sides = [4]Face{F, R, B, L}

// crossEdges pairs each edge slot on U with its neighbour on a side face.
var crossEdges = [4][2]int{
	{Index(U, 0, 1), Index(B, 0, 1)},
	{Index(U, 1, 0), Index(L, 0, 1)},
	{Index(U, 1, 2), Index(R, 0, 1)},
	{Index(U, 2, 1), Index(F, 0, 1)},
}

// bottomCorners lists the three slots of each D-layer corner.
var bottomCorners = [4][3]int{
	{Index(F, 2, 2), Index(R, 2, 0), Index(D, 0, 2)},
	{Index(R, 2, 2), Index(B, 2, 0), Index(D, 2, 2)},
	{Index(B, 2, 2), Index(L, 2, 0), Index(D, 2, 0)},
	{Index(L, 2, 2), Index(F, 2, 0), Index(D, 0, 0)},
}

// matches reports whether a slot shows its own face's center color.
func (c Cube) matches(slot int) bool {
	face, _, _ := Position(slot)
	return c.facelets[slot] == c.Center(face)
}

// faceDone reports whether every slot on a face matches its center.
func (c Cube) faceDone(f Face) bool {
	for i := 0; i < 9; i++ {
		if !c.matches(int(f)*9 + i) {
			return false
		}
	}
	return true
}

// IsWhiteCrossComplete checks the four U edges and their side neighbours.
func (c Cube) IsWhiteCrossComplete() bool {
	for _, e := range crossEdges {
		if !c.matches(e[0]) || !c.matches(e[1]) {
			return false
		}
	}
	return true
}

// IsTopLayerComplete checks the whole U face and the top row of every side.
func (c Cube) IsTopLayerComplete() bool {
	if !c.IsWhiteCrossComplete() || !c.faceDone(U) {
		return false
	}
	for _, f := range sides {
		for col := 0; col < 3; col++ {
			if !c.matches(Index(f, 0, col)) {
				return false
			}
		}
	}
	return true
}

// IsMiddleLayerComplete checks the middle row of every side face.
func (c Cube) IsMiddleLayerComplete() bool {
	if !c.IsTopLayerComplete() {
		return false
	}
	for _, f := range sides {
		if !c.matches(Index(f, 1, 0)) || !c.matches(Index(f, 1, 2)) {
			return false
		}
	}
	return true
}

// IsBottomCrossComplete checks that the four D edges show the D color. It
// does not require the edges to be in their final positions.
func (c Cube) IsBottomCrossComplete() bool {
	if !c.IsMiddleLayerComplete() {
		return false
	}
	for _, pos := range []int{1, 3, 5, 7} {
		if !c.matches(int(D)*9 + pos) {
			return false
		}
	}
	return true
}

// AreBottomCornersPositioned checks that each D corner holds the right
// colors in any orientation.
func (c Cube) AreBottomCornersPositioned() bool {
	if !c.IsBottomCrossComplete() {
		return false
	}
	for _, corner := range bottomCorners {
		var have, want [3]Color
		for i, slot := range corner {
			have[i] = c.facelets[slot]
			face, _, _ := Position(slot)
			want[i] = c.Center(face)
		}
		if !sameColors(have, want) {
			return false
		}
	}
	return true
}

// AreBottomCornersOriented checks that the D face and the bottom corner
// stickers of every side match their centers.
func (c Cube) AreBottomCornersOriented() bool {
	if !c.AreBottomCornersPositioned() || !c.faceDone(D) {
		return false
	}
	for _, f := range sides {
		if !c.matches(Index(f, 2, 0)) || !c.matches(Index(f, 2, 2)) {
			return false
		}
	}
	return true
}

func sameColors(a, b [3]Color) bool {
	var count [Orange + 1]int
	for i := range a {
		count[a[i]]++
		count[b[i]]--
	}
	for _, v := range count {
		if v != 0 {
			return false
		}
	}
	return true
}

// DetectPhase returns the furthest layer-by-layer phase the state has
// reached.
func (c Cube) DetectPhase() Phase {
	switch {
	case c.IsSolved():
		return PhaseSolved
	case c.AreBottomCornersOriented():
		return PhaseCornersOriented
	case c.AreBottomCornersPositioned():
		return PhaseCornersPositioned
	case c.IsBottomCrossComplete():
		return PhaseBottomCross
	case c.IsMiddleLayerComplete():
		return PhaseMiddleLayer
	case c.IsTopLayerComplete():
		return PhaseTopLayer
	case c.IsWhiteCrossComplete():
		return PhaseWhiteCross
	}
	return PhaseScrambled
}

// Progress reports which phases are complete.
type Progress struct {
	WhiteCross        bool
	TopLayer          bool
	MiddleLayer       bool
	BottomCross       bool
	CornersPositioned bool
	CornersOriented   bool
	Solved            bool
}

// Progress returns the current progress through all phases.
func (c Cube) Progress() Progress {
	return Progress{
		WhiteCross:        c.IsWhiteCrossComplete(),
		TopLayer:          c.IsTopLayerComplete(),
		MiddleLayer:       c.IsMiddleLayerComplete(),
		BottomCross:       c.IsBottomCrossComplete(),
		CornersPositioned: c.AreBottomCornersPositioned(),
		CornersOriented:   c.AreBottomCornersOriented(),
		Solved:            c.IsSolved(),
	}
}

// Next returns the first phase not yet complete, or PhaseSolved.
func (p Progress) Next() Phase {
	switch {
	case !p.WhiteCross:
		return PhaseWhiteCross
	case !p.TopLayer:
		return PhaseTopLayer
	case !p.MiddleLayer:
		return PhaseMiddleLayer
	case !p.BottomCross:
		return PhaseBottomCross
	case !p.CornersPositioned:
		return PhaseCornersPositioned
	case !p.CornersOriented:
		return PhaseCornersOriented
	}
	return PhaseSolved
}
