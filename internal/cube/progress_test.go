package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolvedCubeHasAllPhases(t *testing.T) {
	c := New()
	assert.Equal(t, PhaseSolved, c.DetectPhase())
	assert.Equal(t, Progress{true, true, true, true, true, true, true}, c.Progress())
	assert.Equal(t, PhaseSolved, c.Progress().Next())
}

func TestWhiteCrossDetection(t *testing.T) {
	c := mustApply(t, New(), Turn{R, CW})
	if c.IsWhiteCrossComplete() {
		t.Error("White cross should be broken after R")
		t.Log(c.String())
	}
	assert.Equal(t, PhaseScrambled, c.DetectPhase())
}

func TestBottomLayerTurnsKeepTopLayers(t *testing.T) {
	// D only disturbs the bottom layer.
	c := mustApply(t, New(), Turn{D, CW})
	assert.True(t, c.IsMiddleLayerComplete())
	assert.True(t, c.IsBottomCrossComplete())
	assert.False(t, c.AreBottomCornersPositioned())
	assert.Equal(t, PhaseBottomCross, c.DetectPhase())
	assert.Equal(t, PhaseCornersPositioned, c.Progress().Next())
}

func TestTopTurnBreaksTopLayer(t *testing.T) {
	c := mustApply(t, New(), Turn{U, CW})
	assert.False(t, c.IsWhiteCrossComplete())
	assert.Equal(t, PhaseScrambled, c.DetectPhase())
}

func TestSuneKeepsFirstTwoLayers(t *testing.T) {
	// Sune on the D layer (cube held upside down relative to U): only the
	// last layer is affected, so the first two layers stay complete.
	seq, err := ParseTurns("L D L' D L D2 L'")
	require.NoError(t, err)
	c := mustApply(t, New(), seq...)
	assert.True(t, c.IsMiddleLayerComplete())
	assert.False(t, c.IsSolved())
	assert.GreaterOrEqual(t, c.DetectPhase(), PhaseMiddleLayer)
}

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "white_cross", PhaseWhiteCross.String())
	assert.Equal(t, "Solved", PhaseSolved.DisplayName())
	assert.Equal(t, "unknown", Phase(99).String())

	p, ok := ParsePhase("middle_layer")
	assert.True(t, ok)
	assert.Equal(t, PhaseMiddleLayer, p)
	_, ok = ParsePhase("f2l")
	assert.False(t, ok)
}

func TestNewTrackerStartsUnearned(t *testing.T) {
	tr := NewTracker()
	assert.True(t, tr.Cube().IsSolved())
	assert.Equal(t, PhaseSolved, tr.CurrentPhase())
	assert.Equal(t, PhaseScrambled, tr.HighestPhase())

	var reached []Phase
	tr.SetPhaseCallback(func(p Phase) { reached = append(reached, p) })
	for _, turn := range []Turn{{R, CW}, {U, CW}, {U, CCW}, {R, CCW}} {
		require.NoError(t, tr.Apply(turn))
	}
	assert.Equal(t, PhaseSolved, tr.HighestPhase())
	require.NotEmpty(t, reached)
	assert.Equal(t, PhaseSolved, reached[len(reached)-1])

	from := NewTrackerFrom(New(), nil)
	assert.Equal(t, PhaseSolved, from.HighestPhase(), "an explicit start state counts as reached")
}

func TestTrackerPhaseCallbackIsMonotonic(t *testing.T) {
	tr := NewTracker()

	var reached []Phase
	tr.SetPhaseCallback(func(p Phase) { reached = append(reached, p) })

	require.NoError(t, tr.Apply(Turn{D, CW}))
	assert.Equal(t, PhaseBottomCross, tr.CurrentPhase())
	assert.Equal(t, []Phase{PhaseBottomCross}, reached)

	require.NoError(t, tr.Apply(Turn{R, CW}))
	assert.Equal(t, PhaseScrambled, tr.CurrentPhase())
	assert.Equal(t, PhaseBottomCross, tr.HighestPhase())

	require.NoError(t, tr.Apply(Turn{R, CCW}))
	require.NoError(t, tr.Apply(Turn{D, CCW}))
	assert.Equal(t, PhaseSolved, tr.CurrentPhase())
	assert.Equal(t, []Phase{PhaseBottomCross, PhaseSolved}, reached)
	assert.Equal(t, 4, tr.Turns())
}

func TestTrackerRejectsInvalidTurn(t *testing.T) {
	tr := NewTracker()
	err := tr.Apply(Turn{Face(8), CW})
	assert.ErrorIs(t, err, ErrInvalidFace)
	assert.Zero(t, tr.Turns())
	assert.True(t, tr.Cube().IsSolved())
}

func TestTrackerSync(t *testing.T) {
	tr := NewTracker()
	c := mustApply(t, New(), Turn{D, Half})
	tr.Sync(c)
	assert.Equal(t, c, tr.Cube())
	assert.Equal(t, PhaseBottomCross, tr.HighestPhase())
}
