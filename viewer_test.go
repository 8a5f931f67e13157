package gocube3d

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

func newViewer(t *testing.T, opts ...Option) *Viewer {
	t.Helper()
	v, err := New(opts...)
	require.NoError(t, err)
	return v
}

func TestTurnCommandConversion(t *testing.T) {
	tests := []struct {
		cmd  TurnCommand
		want cube.Turn
	}{
		{TurnCommand{Face: Front, Clockwise: true}, cube.Turn{Face: cube.F, Dir: cube.CW}},
		{TurnCommand{Face: Right}, cube.Turn{Face: cube.R, Dir: cube.CCW}},
		{TurnCommand{Face: Up, Double: true}, cube.Turn{Face: cube.U, Dir: cube.Half}},
		{TurnCommand{Face: Back, Clockwise: true, Double: true}, cube.Turn{Face: cube.B, Dir: cube.Half}},
	}
	for _, tt := range tests {
		got, err := tt.cmd.Turn()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.want.Notation(), tt.cmd.Notation())
	}
}

func TestParseTurnCommands(t *testing.T) {
	cmds, err := ParseTurnCommands("R U R' U'")
	require.NoError(t, err)
	assert.Equal(t, SexyMove, cmds)

	_, err = ParseTurnCommand("X")
	assert.ErrorIs(t, err, ErrInvalidNotation)
	assert.ErrorIs(t, err, ErrInvalidFace)
}

func TestTurnInvalidFace(t *testing.T) {
	v := newViewer(t)
	err := v.Turn(TurnCommand{Face: Face(9), Clockwise: true})
	assert.ErrorIs(t, err, ErrInvalidFace)
	assert.False(t, v.Animating())
	assert.True(t, v.Cube().IsSolved())
}

func TestTickCommitsAndNotifies(t *testing.T) {
	v := newViewer(t)
	var got []Event
	v.OnCommit(func(ev Event) { got = append(got, ev) })

	require.NoError(t, v.Turn(F))
	assert.True(t, v.Animating())

	ticks := 0
	for v.Animating() {
		v.Tick()
		ticks++
		require.Less(t, ticks, 100)
	}
	assert.Equal(t, 10, ticks)
	require.Len(t, got, 1)
	assert.Equal(t, cube.Turn{Face: cube.F, Dir: cube.CW}, got[0].Turn)

	want, err := cube.New().Apply(got[0].Turn)
	require.NoError(t, err)
	assert.Equal(t, want, v.Cube())
}

func TestConflictRejected(t *testing.T) {
	logger, hook := test.NewNullLogger()
	v := newViewer(t, WithPolicy(anim.Reject), WithLogger(logger))

	require.NoError(t, v.Turn(F))
	v.Tick()
	assert.ErrorIs(t, v.Turn(R), ErrAnimationConflict)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	v.Finish()
	want, _ := cube.New().Apply(cube.Turn{Face: cube.F, Dir: cube.CW})
	assert.Equal(t, want, v.Cube())
}

func TestConflictQueued(t *testing.T) {
	v := newViewer(t)
	require.NoError(t, v.Turn(F))
	require.NoError(t, v.Turn(RPrime))
	assert.ErrorIs(t, v.Turn(U), ErrAnimationConflict)

	ev, ok := v.Finish()
	require.True(t, ok)
	assert.Equal(t, cube.F, ev.Turn.Face)
	a, ok := v.Active()
	require.True(t, ok)
	assert.Equal(t, cube.Turn{Face: cube.R, Dir: cube.CCW}, a.Turn)

	v.Finish()
	want, _ := cube.Scramble("F R'")
	assert.Equal(t, want, v.Cube())
}

func TestFrameDefaultView(t *testing.T) {
	v := newViewer(t)
	frame, err := v.Frame()
	require.NoError(t, err)
	stickers := 0
	for _, p := range frame.Polygons {
		if p.Kind == render.KindSticker {
			stickers++
		}
	}
	assert.Equal(t, 27, stickers)
}

func TestFrameDuringAnimation(t *testing.T) {
	v := newViewer(t)
	require.NoError(t, v.Turn(R))
	v.Tick()
	v.Tick()
	frame, err := v.Frame()
	require.NoError(t, err)
	assert.NotEmpty(t, frame.Polygons)
	assert.True(t, v.Cube().IsSolved(), "frames never commit")
}

func TestCameraControls(t *testing.T) {
	v := newViewer(t, WithCamera(0, 0))
	assert.Equal(t, geom.Identity(), v.Camera().Orientation)

	v.Rotate(CameraDelta{Yaw: 30})
	v.Rotate(CameraDelta{Pitch: -20})
	assert.NotEqual(t, geom.Identity(), v.Camera().Orientation)

	v.SnapCamera()
	assert.Equal(t, geom.Identity(), v.Camera().Orientation)

	v.Rotate(CameraDelta{Yaw: 10})
	v.ResetCamera()
	assert.Equal(t, geom.Identity(), v.Camera().Orientation)

	v.SetCubeOrientation(geom.Quat{W: math.Sqrt(0.5), V: geom.Vec3{0, math.Sqrt(0.5), 0}})
	assert.True(t, geom.ApproxEqualMat(v.Camera().Orientation, geom.RotationMatrix(geom.AxisY, 90), 1e-9))
}

func TestAbortAndReset(t *testing.T) {
	start, err := cube.Scramble("R U")
	require.NoError(t, err)
	v := newViewer(t, WithState(start))

	require.NoError(t, v.Turn(D))
	v.Tick()
	assert.True(t, v.Abort())
	assert.False(t, v.Animating())
	assert.Equal(t, start, v.Cube())

	require.NoError(t, v.Turn(L))
	v.Reset()
	assert.False(t, v.Animating())
	assert.True(t, v.Cube().IsSolved())
	assert.True(t, v.Progress().Solved)
	assert.Equal(t, cube.PhaseSolved, v.Progress().Next())
}

func TestNewRejectsBadSpeed(t *testing.T) {
	_, err := New(WithSpeed(0))
	assert.Error(t, err)
}

func TestScriptRunsEachTurnSeparately(t *testing.T) {
	v := newViewer(t, WithPolicy(anim.Reject))
	var commits int
	v.OnCommit(func(Event) { commits++ })

	ticks, err := NewScript(TPerm).Run(v)
	require.NoError(t, err)
	assert.Equal(t, len(TPerm), commits)

	// R2 takes 20 ticks, every quarter turn 10.
	assert.Equal(t, 10*(len(TPerm)-1)+20, ticks)

	want, err := cube.Scramble("R U R' U' R' F R2 U' R' U' R U R' F'")
	require.NoError(t, err)
	assert.Equal(t, want, v.Cube())
}

func TestScriptAppendWhileRunning(t *testing.T) {
	v := newViewer(t)
	s := NewScript(nil)
	assert.True(t, s.Done())

	s.Append(R)
	started, err := s.Feed(v)
	require.NoError(t, err)
	assert.True(t, started)

	s.Append(U, RPrime)
	started, err = s.Feed(v)
	require.NoError(t, err)
	assert.False(t, started, "waits for the turn in flight")
	assert.Equal(t, 2, s.Remaining())

	_, err = s.Run(v)
	require.NoError(t, err)
	want, _ := cube.Scramble("R U R'")
	assert.Equal(t, want, v.Cube())
}

func TestScriptClear(t *testing.T) {
	v := newViewer(t)
	s := NewScript([]TurnCommand{R, U, F})
	_, err := s.Feed(v)
	require.NoError(t, err)

	s.Clear()
	assert.True(t, s.Done())
	assert.Equal(t, 0, s.Remaining())

	_, err = s.Run(v)
	require.NoError(t, err)
	want, _ := cube.Scramble("R")
	assert.Equal(t, want, v.Cube())
}
