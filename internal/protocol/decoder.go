package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// RotationEvent represents a single face rotation from the cube.
type RotationEvent struct {
	FaceCode          byte       // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte       // Center piece orientation
	Clockwise         bool       // Direction of rotation
	Color             cube.Color // Center color of the turned face
}

// BatteryEvent represents a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// CubeTypeEvent represents a cube type notification.
type CubeTypeEvent struct {
	TypeCode byte
	TypeName string
}

// OrientationEvent represents a cube orientation notification.
type OrientationEvent struct {
	// Quat is the normalized physical orientation of the cube.
	Quat geom.Quat

	// Derived discrete orientation
	UpFace    cube.Face // Which face is pointing up
	FrontFace cube.Face // Which face is facing the solver
}

// OfflineStatsEvent represents offline statistics.
type OfflineStatsEvent struct {
	Moves  int
	Time   int // seconds
	Solves int
}

// GoCube color order in rotation face codes.
var colorOrder = [6]cube.Color{cube.Blue, cube.Green, cube.White, cube.Yellow, cube.Red, cube.Orange}

// DecodeRotation decodes a rotation message payload into rotation events.
// Rotation payloads contain pairs of bytes: [face_dir] [center_orientation]
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload must have even length, got %d", ErrInvalidPayload, len(payload))
	}

	var events []RotationEvent
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]

		// Even codes are clockwise, odd codes counter-clockwise.
		colorIdx := int(faceCode / 2)
		if colorIdx >= len(colorOrder) {
			return nil, fmt.Errorf("%w: unknown color index %d from face code 0x%02X", ErrInvalidPayload, colorIdx, faceCode)
		}

		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: payload[i+1],
			Clockwise:         faceCode%2 == 0,
			Color:             colorOrder[colorIdx],
		})
	}

	return events, nil
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("%w: battery payload too short", ErrInvalidPayload)
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeCubeType decodes a cube type message payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("%w: cube type payload too short", ErrInvalidPayload)
	}

	typeName := "standard"
	if payload[0] == 0x01 {
		typeName = "edge"
	}

	return &CubeTypeEvent{TypeCode: payload[0], TypeName: typeName}, nil
}

// DecodeOrientation decodes an orientation message payload.
// Format: ASCII string "x#y#z#w" where the last part may carry trailing
// bytes.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: orientation payload must have 4 parts, got %d", ErrInvalidPayload, len(parts))
	}
	parts[3] = extractNumeric(parts[3])

	var v [4]float64
	for i, name := range []string{"x", "y", "z", "w"} {
		f, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s value: %v", ErrInvalidPayload, name, err)
		}
		v[i] = f
	}

	// GoCube sends raw integer components.
	q := geom.Quat{W: v[3], V: geom.Vec3{v[0], v[1], v[2]}}
	if q.Len() == 0 {
		return nil, fmt.Errorf("%w: zero orientation quaternion", ErrInvalidPayload)
	}
	q = q.Normalize()

	up, front := quaternionToFaces(q)
	return &OrientationEvent{Quat: q, UpFace: up, FrontFace: front}, nil
}

// extractNumeric extracts the leading numeric portion (including optional
// minus sign) from a string.
func extractNumeric(s string) string {
	var result strings.Builder
	for i, r := range s {
		if (r == '-' && i == 0) || (r >= '0' && r <= '9') || r == '.' {
			result.WriteRune(r)
			continue
		}
		break
	}
	return result.String()
}

// quaternionToFaces returns which cube face points up and which faces the
// solver: the world directions taken back into cube space.
func quaternionToFaces(q geom.Quat) (up, front cube.Face) {
	inv := q.Conjugate()
	return vectorToFace(inv.Rotate(geom.AxisY)), vectorToFace(inv.Rotate(geom.AxisZ))
}

// vectorToFace determines which cube face a vector points to.
func vectorToFace(v geom.Vec3) cube.Face {
	x, y, z := v[0], v[1], v[2]
	absX, absY, absZ := math.Abs(x), math.Abs(y), math.Abs(z)

	if absY >= absX && absY >= absZ {
		if y > 0 {
			return cube.U
		}
		return cube.D
	}
	if absZ >= absX && absZ >= absY {
		if z > 0 {
			return cube.F
		}
		return cube.B
	}
	if x > 0 {
		return cube.R
	}
	return cube.L
}

// DecodeOfflineStats decodes an offline stats message payload.
func DecodeOfflineStats(payload []byte) (*OfflineStatsEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: offline stats payload must have 3 parts, got %d", ErrInvalidPayload, len(parts))
	}

	var v [3]int
	for i, name := range []string{"moves", "time", "solves"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s value: %v", ErrInvalidPayload, name, err)
		}
		v[i] = n
	}

	return &OfflineStatsEvent{Moves: v[0], Time: v[1], Solves: v[2]}, nil
}
