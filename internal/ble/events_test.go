package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/protocol"
)

func TestDecodeRotationFrame(t *testing.T) {
	// red clockwise twice, then white counter-clockwise
	frame := protocol.BuildMessage(protocol.MsgTypeRotation, []byte{0x08, 0, 0x08, 0, 0x05, 0})
	ev, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgTypeRotation, ev.Type)
	assert.Equal(t, "R2 U'", cube.FormatTurns(ev.Turns))
	assert.Nil(t, ev.Orientation)
}

func TestDecodeOrientationFrame(t *testing.T) {
	frame := protocol.BuildMessage(protocol.MsgTypeOrientation, []byte("0#0#0#1"))
	ev, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, ev.Orientation)
	assert.Equal(t, cube.U, ev.Orientation.UpFace)
	assert.Empty(t, ev.Turns)
}

func TestDecodeBatteryFrame(t *testing.T) {
	ev, err := DecodeFrame(protocol.BuildMessage(protocol.MsgTypeBattery, []byte{42}))
	require.NoError(t, err)
	require.NotNil(t, ev.Battery)
	assert.Equal(t, 42, ev.Battery.Level)
}

func TestDecodeIgnoresOtherTypes(t *testing.T) {
	ev, err := DecodeFrame(protocol.BuildMessage(protocol.MsgTypeCubeType, []byte{0}))
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgTypeCubeType, ev.Type)
	assert.Empty(t, ev.Turns)
	assert.Nil(t, ev.Orientation)
	assert.Nil(t, ev.Battery)
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeFrame([]byte{0x2A})
	assert.ErrorIs(t, err, protocol.ErrMessageTooShort)

	_, err = DecodeFrame(protocol.BuildMessage(protocol.MsgTypeRotation, []byte{0x08}))
	assert.ErrorIs(t, err, protocol.ErrInvalidPayload)

	_, err = DecodeFrame(protocol.BuildMessage(protocol.MsgTypeOrientation, []byte("1#2")))
	assert.ErrorIs(t, err, protocol.ErrInvalidPayload)
}
