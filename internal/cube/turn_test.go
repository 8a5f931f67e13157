package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTurn(t *testing.T) {
	tests := []struct {
		in   string
		want Turn
	}{
		{"R", Turn{R, CW}},
		{"R'", Turn{R, CCW}},
		{"R`", Turn{R, CCW}},
		{"R2", Turn{R, Half}},
		{"R2'", Turn{R, Half}},
		{"u", Turn{U, CW}},
		{" F' ", Turn{F, CCW}},
		{"D", Turn{D, CW}},
		{"B2", Turn{B, Half}},
		{"L'", Turn{L, CCW}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTurn(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTurnErrors(t *testing.T) {
	for _, in := range []string{"", "X", "R3", "R''", "M", "2R"} {
		_, err := ParseTurn(in)
		assert.ErrorIs(t, err, ErrInvalidNotation, "%q", in)
	}

	_, err := ParseTurn("X'")
	assert.ErrorIs(t, err, ErrInvalidFace)
}

func TestFormatParseTurnsRoundTrip(t *testing.T) {
	const seq = "R U R' U' F2 B L' D2"
	turns, err := ParseTurns(seq)
	require.NoError(t, err)
	assert.Len(t, turns, 8)
	assert.Equal(t, seq, FormatTurns(turns))

	_, err = ParseTurns("R U Q")
	assert.ErrorIs(t, err, ErrInvalidNotation)

	empty, err := ParseTurns("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInvertTurnsUndoes(t *testing.T) {
	turns, err := ParseTurns("R U2 F' L D' B")
	require.NoError(t, err)
	assert.Equal(t, "B' D L' F U2 R'", FormatTurns(InvertTurns(turns)))

	c, err := New().ApplyAll(turns...)
	require.NoError(t, err)
	c, err = c.ApplyAll(InvertTurns(turns)...)
	require.NoError(t, err)
	assert.True(t, c.IsSolved())
}

func TestTurnAngle(t *testing.T) {
	assert.Equal(t, -90.0, Turn{F, CW}.Angle())
	assert.Equal(t, 90.0, Turn{F, CCW}.Angle())
	assert.Equal(t, -180.0, Turn{F, Half}.Angle())
}

func TestParseFace(t *testing.T) {
	for _, f := range Faces {
		got, err := ParseFace(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFace("front")
	assert.ErrorIs(t, err, ErrInvalidFace)
}

func TestSpoken(t *testing.T) {
	assert.Equal(t, "R up", Turn{R, CW}.Spoken())
	assert.Equal(t, "T rotate left", Turn{U, CCW}.Spoken())
	assert.Equal(t, "Back rotate x 2", Turn{B, Half}.Spoken())

	turns, err := ParseTurns("R U R'")
	require.NoError(t, err)
	assert.Equal(t, "R up, T rotate right, R down", FormatSpoken(turns))

	for _, f := range Faces {
		for _, d := range []Direction{CW, CCW, Half} {
			assert.NotEqual(t, Turn{f, d}.Notation(), Turn{f, d}.Spoken())
		}
	}
}
