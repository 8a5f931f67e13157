package geom

import (
	"errors"
	"math"
)

// ErrDegenerateProjection is returned when the perspective denominator falls
// below MinDenominator. The returned point is still usable: it is projected
// with the clamped denominator.
var ErrDegenerateProjection = errors.New("geom: degenerate projection")

// MinDenominator is the smallest perspective denominator Project will divide
// by.
const MinDenominator = 1e-3

// Viewport is the target drawing area in screen units.
type Viewport struct {
	Width  float64
	Height float64
}

// Center returns the screen-space centre of the viewport.
func (v Viewport) Center() Vec2 {
	return Vec2{v.Width / 2, v.Height / 2}
}

// Project maps a camera-space point to screen space with a perspective
// divide. Camera-space z grows away from the viewer. Screen y grows downward,
// so camera y is flipped:
//
//	scale  = f / (f + z + depthOffset)
//	screen = (x*scale + cx, -y*scale + cy)
//
// When the denominator is smaller than MinDenominator it is clamped and
// ErrDegenerateProjection is returned alongside the clamped point.
func Project(p Vec3, focal, depthOffset float64, vp Viewport) (Vec2, error) {
	var err error
	den := focal + p[2] + depthOffset
	if den < MinDenominator || math.IsNaN(den) {
		den = MinDenominator
		err = ErrDegenerateProjection
	}
	scale := focal / den
	c := vp.Center()
	return Vec2{p[0]*scale + c[0], -p[1]*scale + c[1]}, err
}
