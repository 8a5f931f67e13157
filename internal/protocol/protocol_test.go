package protocol

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

func TestParseMessageRoundTrip(t *testing.T) {
	frame := BuildMessage(MsgTypeRotation, []byte{0x04, 0x00, 0x09, 0x03})
	msg, err := ParseMessage(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x04, 0x00, 0x09, 0x03}, msg.Payload)
	assert.NotEmpty(t, msg.RawBase64)
	assert.Equal(t, "rotation", MessageTypeName(msg.Type))
}

func TestParseMessageErrors(t *testing.T) {
	good := BuildMessage(MsgTypeBattery, []byte{80})

	_, err := ParseMessage(good[:3])
	assert.ErrorIs(t, err, ErrMessageTooShort)

	bad := append([]byte(nil), good...)
	bad[0] = 0x00
	_, err = ParseMessage(bad)
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	bad = append([]byte(nil), good...)
	bad[len(bad)-3]++
	_, err = ParseMessage(bad)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	bad = append([]byte(nil), good...)
	bad[len(bad)-1] = 0x00
	_, err = ParseMessage(bad)
	assert.ErrorIs(t, err, ErrInvalidSuffix)

	_, err = ParseMessage(good[:len(good)-1])
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(CmdRequestBattery)
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, cmd)
}

func TestDecodeRotation(t *testing.T) {
	events, err := DecodeRotation([]byte{0x04, 0x00, 0x09, 0x03})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, cube.White, events[0].Color)
	assert.True(t, events[0].Clockwise)
	assert.Equal(t, cube.Red, events[1].Color)
	assert.False(t, events[1].Clockwise)

	_, err = DecodeRotation([]byte{0x04})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestRotationColorsMapToFaces(t *testing.T) {
	want := []cube.Face{cube.B, cube.F, cube.U, cube.D, cube.R, cube.L}
	for code := byte(0); code < 12; code++ {
		events, err := DecodeRotation([]byte{code, 0})
		require.NoError(t, err)
		turn, ok := RotationToTurn(events[0])
		require.True(t, ok)
		assert.Equal(t, want[code/2], turn.Face, "code %d", code)
		if code%2 == 0 {
			assert.Equal(t, cube.CW, turn.Dir)
		} else {
			assert.Equal(t, cube.CCW, turn.Dir)
		}
	}
}

func TestMergeTurns(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R R", "R2"},
		{"R R R", "R'"},
		{"R R R R", ""},
		{"R R'", ""},
		{"R U U F", "R U2 F"},
		{"R2 R", "R'"},
		{"U R R' U'", ""},
	}
	for _, tt := range tests {
		turns, err := cube.ParseTurns(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cube.FormatTurns(MergeTurns(turns)), tt.in)
	}
}

func TestDecodeOrientation(t *testing.T) {
	ev, err := DecodeOrientation([]byte("0#0#0#1000\x99"))
	require.NoError(t, err)
	assert.Equal(t, geom.Quat{W: 1}, ev.Quat)
	assert.Equal(t, cube.U, ev.UpFace)
	assert.Equal(t, cube.F, ev.FrontFace)

	// 90 degrees about x tips the top towards the solver.
	s := math.Sqrt(0.5) * 1000
	ev, err = DecodeOrientation([]byte(
		formatFloat(s) + "#0#0#" + formatFloat(s),
	))
	require.NoError(t, err)
	assert.InDelta(t, 1, ev.Quat.Len(), 1e-9)
	assert.Equal(t, cube.B, ev.UpFace)
	assert.Equal(t, cube.U, ev.FrontFace)

	_, err = DecodeOrientation([]byte("1#2#3"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = DecodeOrientation([]byte("0#0#0#0"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = DecodeOrientation([]byte("a#0#0#1"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func TestDecodeSmallMessages(t *testing.T) {
	b, err := DecodeBattery([]byte{87})
	require.NoError(t, err)
	assert.Equal(t, 87, b.Level)
	_, err = DecodeBattery(nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	ct, err := DecodeCubeType([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "edge", ct.TypeName)

	st, err := DecodeOfflineStats([]byte("120#95#3"))
	require.NoError(t, err)
	assert.Equal(t, OfflineStatsEvent{Moves: 120, Time: 95, Solves: 3}, *st)
	_, err = DecodeOfflineStats([]byte("1#x#3"))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
