package ble

import (
	"fmt"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/protocol"
)

// Event is one decoded cube notification.
type Event struct {
	Type        byte
	Turns       []cube.Turn
	Orientation *protocol.OrientationEvent
	Battery     *protocol.BatteryEvent

	// Dropped counts rotation notifications lost to a full queue since the
	// previous delivered event. Any non-zero value means a mirrored cube no
	// longer matches the physical one.
	Dropped int
}

// Decode turns a parsed message into an Event. Message types the viewer
// has no use for decode to an Event with only Type set.
func Decode(msg *protocol.Message) (Event, error) {
	ev := Event{Type: msg.Type}
	switch msg.Type {
	case protocol.MsgTypeRotation:
		rotations, err := protocol.DecodeRotation(msg.Payload)
		if err != nil {
			return ev, fmt.Errorf("decode rotation: %w", err)
		}
		ev.Turns = protocol.RotationsToTurns(rotations)
	case protocol.MsgTypeOrientation:
		o, err := protocol.DecodeOrientation(msg.Payload)
		if err != nil {
			return ev, fmt.Errorf("decode orientation: %w", err)
		}
		ev.Orientation = o
	case protocol.MsgTypeBattery:
		b, err := protocol.DecodeBattery(msg.Payload)
		if err != nil {
			return ev, fmt.Errorf("decode battery: %w", err)
		}
		ev.Battery = b
	}
	return ev, nil
}

// DecodeFrame parses and decodes a raw notification.
func DecodeFrame(data []byte) (Event, error) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return Event{}, err
	}
	return Decode(msg)
}
