package render

import "github.com/SeamusWaldron/gocube3d/internal/geom"

// Default viewing angles in degrees.
const (
	DefaultPitch = 30.0
	DefaultYaw   = -45.0
)

// Delta is a change of viewing angle in degrees. Pitch turns about the
// screen x axis, yaw about the screen y axis.
type Delta struct {
	Pitch float64
	Yaw   float64
}

// Camera is the viewing orientation: a rotation taking cube space to camera
// space. Camera space has x right, y up and z towards the viewer.
type Camera struct {
	Orientation geom.Mat3
}

// NewCamera returns a camera that first yaws the cube and then pitches it
// towards the viewer.
func NewCamera(pitch, yaw float64) Camera {
	return Camera{Orientation: geom.Compose(
		geom.RotationMatrix(geom.AxisX, pitch),
		geom.RotationMatrix(geom.AxisY, yaw),
	)}
}

// DefaultCamera shows the U, F and R faces.
func DefaultCamera() Camera {
	return NewCamera(DefaultPitch, DefaultYaw)
}

// Rotate applies a delta on top of the current orientation. Both rotations
// are about screen axes, so they pre-multiply: pitch first, then yaw.
func (c Camera) Rotate(d Delta) Camera {
	m := c.Orientation
	if d.Pitch != 0 {
		m = geom.Compose(geom.RotationMatrix(geom.AxisX, d.Pitch), m)
	}
	if d.Yaw != 0 {
		m = geom.Compose(geom.RotationMatrix(geom.AxisY, d.Yaw), m)
	}
	return Camera{Orientation: m}
}

// Snap returns the camera turned to the nearest axis-aligned view.
func (c Camera) Snap() Camera {
	return Camera{Orientation: geom.SnapRotation(c.Orientation)}
}

// WithCubeRotation returns a camera that shows the cube after it has been
// physically rotated by q, e.g. the orientation reported by a smart cube.
func (c Camera) WithCubeRotation(q geom.Quat) Camera {
	return Camera{Orientation: geom.Compose(c.Orientation, geom.QuatMatrix(q))}
}

// toCamera maps a cube-space point into camera space.
func (c Camera) toCamera(p geom.Vec3) geom.Vec3 {
	return c.Orientation.Mul3x1(p)
}
