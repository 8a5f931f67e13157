// Package geom provides the small amount of 3D math the cube viewer needs:
// axis-angle rotation, matrix composition, snapping and perspective
// projection. All functions are pure.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector and matrix types are the mgl64 ones so callers can use their
// methods (Add, Cross, Mul3, Transpose, ...) directly.
type (
	Vec2 = mgl64.Vec2
	Vec3 = mgl64.Vec3
	Mat3 = mgl64.Mat3
	Quat = mgl64.Quat
)

// Epsilon is the default tolerance for approximate comparisons.
const Epsilon = 1e-9

// Unit axes.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 {
	return mgl64.Ident3()
}

// sinCosDeg returns sin and cos of an angle in degrees. Multiples of 90
// degrees return exact values so quarter turns stay on the integer lattice.
func sinCosDeg(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) {
		switch ((int64(q) % 4) + 4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	rad := mgl64.DegToRad(deg)
	return math.Sin(rad), math.Cos(rad)
}

// RotationMatrix returns the matrix rotating by angle degrees about axis
// (right-hand rule) using Rodrigues' formula. The axis need not be unit
// length; a zero axis yields the identity.
func RotationMatrix(axis Vec3, deg float64) Mat3 {
	l := axis.Len()
	if l == 0 {
		return Identity()
	}
	k := axis.Mul(1 / l)
	x, y, z := k[0], k[1], k[2]
	s, c := sinCosDeg(deg)
	t := 1 - c

	return mgl64.Mat3FromRows(
		Vec3{c + x*x*t, x*y*t - z*s, x*z*t + y*s},
		Vec3{y*x*t + z*s, c + y*y*t, y*z*t - x*s},
		Vec3{z*x*t - y*s, z*y*t + x*s, c + z*z*t},
	)
}

// RotatePoint rotates p by angle degrees about axis through the origin,
// using the vector form of Rodrigues' formula.
func RotatePoint(p, axis Vec3, deg float64) Vec3 {
	l := axis.Len()
	if l == 0 {
		return p
	}
	k := axis.Mul(1 / l)
	s, c := sinCosDeg(deg)

	return p.Mul(c).
		Add(k.Cross(p).Mul(s)).
		Add(k.Mul(k.Dot(p) * (1 - c)))
}

// Compose returns next*acc: the rotation acc followed by next. A new
// rotation always pre-multiplies the accumulated one.
func Compose(next, acc Mat3) Mat3 {
	return next.Mul3(acc)
}

// Snap rounds every entry of m to the nearest integer. Applied to a rotation
// that is within rounding error of an axis-aligned one it returns that exact
// rotation.
func Snap(m Mat3) Mat3 {
	var out Mat3
	for i := range m {
		out[i] = math.Round(m[i])
	}
	return out
}

// SnapVec rounds every component of v to the nearest integer.
func SnapVec(v Vec3) Vec3 {
	return Vec3{math.Round(v[0]), math.Round(v[1]), math.Round(v[2])}
}

// ApproxEqual reports whether every component of a and b differs by at most
// tol. Unlike mgl64's ApproxEqualThreshold the tolerance is absolute, so
// components that should be exactly zero compare sensibly.
func ApproxEqual(a, b Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// ApproxEqualMat is ApproxEqual for matrices.
func ApproxEqualMat(a, b Mat3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// IsRotation reports whether m is orthonormal with determinant +1 within tol.
func IsRotation(m Mat3, tol float64) bool {
	if math.Abs(m.Det()-1) > tol {
		return false
	}
	return ApproxEqualMat(m.Mul3(m.Transpose()), Identity(), tol)
}

// SnapRotation returns the axis-aligned rotation closest to m: each column
// is replaced by the signed unit axis it is most aligned with. The result is
// a proper rotation whenever m is close to one.
func SnapRotation(m Mat3) Mat3 {
	var out Mat3
	for col := 0; col < 3; col++ {
		best, bestAbs := 0, -1.0
		for row := 0; row < 3; row++ {
			if a := math.Abs(m.At(row, col)); a > bestAbs {
				best, bestAbs = row, a
			}
		}
		out.Set(best, col, math.Copysign(1, m.At(best, col)))
	}
	// Two columns can pick the same axis for a matrix far from any
	// axis-aligned rotation; rebuild the third from the first two then.
	if math.Abs(out.Det()-1) > Epsilon {
		c0, c1 := out.Col(0), out.Col(1)
		c2 := c0.Cross(c1)
		if c2.Len() == 0 {
			return Identity()
		}
		out.SetCol(2, c2)
	}
	return out
}

// QuatMatrix converts a (not necessarily normalised) quaternion into a
// rotation matrix. A zero quaternion yields the identity.
func QuatMatrix(q Quat) Mat3 {
	if q.Len() == 0 {
		return Identity()
	}
	return q.Normalize().Mat4().Mat3()
}
