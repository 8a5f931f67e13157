package render

import (
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// faceFrame places a face's 3x3 grid in cube space. Looking at the face
// from outside, u points along increasing column and v along increasing
// row. u x v is the inward normal for every face, so corners listed as
// top-left, top-right, bottom-right, bottom-left wind the same way on all
// faces.
type faceFrame struct {
	normal geom.Vec3
	u, v   geom.Vec3
	// origin is the lattice position of the cubie under (row 0, col 0).
	origin geom.Vec3
}

var faceFrames = [6]faceFrame{
	cube.U: {normal: geom.Vec3{0, 1, 0}, u: geom.Vec3{1, 0, 0}, v: geom.Vec3{0, 0, 1}, origin: geom.Vec3{-1, 1, -1}},
	cube.D: {normal: geom.Vec3{0, -1, 0}, u: geom.Vec3{1, 0, 0}, v: geom.Vec3{0, 0, -1}, origin: geom.Vec3{-1, -1, 1}},
	cube.F: {normal: geom.Vec3{0, 0, 1}, u: geom.Vec3{1, 0, 0}, v: geom.Vec3{0, -1, 0}, origin: geom.Vec3{-1, 1, 1}},
	cube.B: {normal: geom.Vec3{0, 0, -1}, u: geom.Vec3{-1, 0, 0}, v: geom.Vec3{0, -1, 0}, origin: geom.Vec3{1, 1, -1}},
	cube.R: {normal: geom.Vec3{1, 0, 0}, u: geom.Vec3{0, 0, -1}, v: geom.Vec3{0, -1, 0}, origin: geom.Vec3{1, 1, 1}},
	cube.L: {normal: geom.Vec3{-1, 0, 0}, u: geom.Vec3{0, 0, 1}, v: geom.Vec3{0, -1, 0}, origin: geom.Vec3{-1, 1, -1}},
}

// directions lists the six outward unit directions in face order.
var directions = [6]geom.Vec3{
	cube.U: faceFrames[cube.U].normal,
	cube.D: faceFrames[cube.D].normal,
	cube.F: faceFrames[cube.F].normal,
	cube.B: faceFrames[cube.B].normal,
	cube.R: faceFrames[cube.R].normal,
	cube.L: faceFrames[cube.L].normal,
}

// CubiePosition returns the lattice position of the cubie carrying a
// facelet slot.
func CubiePosition(slot int) geom.Vec3 {
	f, row, col := cube.Position(slot)
	fr := faceFrames[f]
	return fr.origin.Add(fr.u.Mul(float64(col))).Add(fr.v.Mul(float64(row)))
}

// StickerCenter returns the point on the cube surface at the centre of a
// facelet slot. Cubie centres sit on the integer lattice and the surface is
// at +-1.5.
func StickerCenter(slot int) geom.Vec3 {
	f, _, _ := cube.Position(slot)
	return CubiePosition(slot).Add(faceFrames[f].normal.Mul(0.5))
}

// StickerNormal returns the outward normal of a facelet slot.
func StickerNormal(slot int) geom.Vec3 {
	f, _, _ := cube.Position(slot)
	return faceFrames[f].normal
}

// quad returns the four corners of a square centred on c in the plane of
// face f with the given half-size, ordered top-left, top-right,
// bottom-right, bottom-left as seen from outside.
func quad(c geom.Vec3, f cube.Face, half float64) [4]geom.Vec3 {
	u := faceFrames[f].u.Mul(half)
	v := faceFrames[f].v.Mul(half)
	return [4]geom.Vec3{
		c.Sub(u).Sub(v),
		c.Add(u).Sub(v),
		c.Add(u).Add(v),
		c.Sub(u).Add(v),
	}
}

// inGrid reports whether a lattice point lies inside the 3x3x3 grid.
func inGrid(p geom.Vec3) bool {
	for _, x := range p {
		if x < -1.5 || x > 1.5 {
			return false
		}
	}
	return true
}

// inLayer reports whether a lattice point belongs to the layer turned by
// face f.
func inLayer(p geom.Vec3, f cube.Face) bool {
	return p.Dot(faceFrames[f].normal) > 0.5
}
