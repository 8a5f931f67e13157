// Package render turns cube state into depth-sorted screen polygons.
//
// The cube is drawn as 26 cubies: a black body face wherever a cubie face is
// exposed, and a slightly smaller sticker floating just off each colored
// facelet. Polygons are sorted back to front so they can be painted in
// order without a depth buffer.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// Kind tells body faces and stickers apart.
type Kind int

const (
	KindBody Kind = iota
	KindSticker
)

// Polygon is one filled quadrilateral in screen space.
type Polygon struct {
	Vertices [4]geom.Vec2
	Color    colorful.Color
	// Depth is the mean distance from the viewer; larger is farther.
	Depth float64
	Kind  Kind
	// Slot is the facelet slot of a sticker, -1 for body faces.
	Slot int
}

// Frame is the ordered output of one render: paint Polygons in order.
type Frame struct {
	Viewport geom.Viewport
	Polygons []Polygon
	// Clamped counts vertices whose projection had to be clamped.
	Clamped int
}

// Config holds the rendering parameters.
type Config struct {
	Viewport        geom.Viewport
	Scale           float64 // screen units per cubie
	FocalLength     float64
	DepthOffset     float64
	StickerScale    float64 // sticker size relative to a cubie face
	StickerOffset   float64 // sticker lift along the face normal, in cubies
	BackfaceCulling bool
	Shading         bool
	Palette         Palette
}

// DefaultConfig returns the standard rendering parameters.
func DefaultConfig() Config {
	return Config{
		Viewport:        geom.Viewport{Width: 800, Height: 600},
		Scale:           100,
		FocalLength:     500,
		DepthOffset:     300,
		StickerScale:    0.9,
		StickerOffset:   0.002,
		BackfaceCulling: true,
		Shading:         true,
		Palette:         DefaultPalette(),
	}
}

// ambient is the light level of a face turned away from the light.
const ambient = 0.55

// light is the direction towards the light in camera space.
var light = geom.Vec3{-0.3, 0.5, 1}.Normalize()

// Renderer projects cube state to a Frame.
type Renderer struct {
	cfg Config
	log logrus.FieldLogger
}

// New creates a renderer. A nil logger discards output.
func New(cfg Config, log logrus.FieldLogger) *Renderer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Renderer{cfg: cfg, log: log}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// SetViewport changes the output viewport.
func (r *Renderer) SetViewport(vp geom.Viewport) {
	r.cfg.Viewport = vp
}

// Render draws c from cam. A non-nil active turn rotates its layer. When a
// projection had to be clamped the frame is still complete and the error
// wraps geom.ErrDegenerateProjection.
func (r *Renderer) Render(c cube.Cube, cam Camera, active *anim.Active) (Frame, error) {
	frame := Frame{Viewport: r.cfg.Viewport}
	var turning *cube.Face
	if active != nil {
		f := active.Turn.Face
		turning = &f
	}

	for _, cb := range Cubies(c, active) {
		for f, n := range directions {
			if !r.bodyExposed(cb.Position, n, turning) {
				continue
			}
			center := cb.Position.Add(n.Mul(0.5))
			r.emit(&frame, cam, cb.Orientation, quad(center, cube.Face(f), 0.5), n, r.cfg.Palette.Body, KindBody, -1)
		}
		for _, s := range cb.Stickers {
			n := faceFrames[s.Face].normal
			center := cb.Position.Add(n.Mul(0.5 + r.cfg.StickerOffset))
			corners := quad(center, s.Face, 0.5*r.cfg.StickerScale)
			r.emit(&frame, cam, cb.Orientation, corners, n, r.cfg.Palette.Color(s.Color), KindSticker, s.Slot)
		}
	}

	// Far to near; equal depths keep emission order so a sticker follows
	// its body face.
	sort.SliceStable(frame.Polygons, func(i, j int) bool {
		return frame.Polygons[i].Depth > frame.Polygons[j].Depth
	})

	if frame.Clamped > 0 {
		r.log.WithField("vertices", frame.Clamped).Debug("projection clamped")
		return frame, fmt.Errorf("render: %d vertices clamped: %w", frame.Clamped, geom.ErrDegenerateProjection)
	}
	return frame, nil
}

// bodyExposed reports whether the body face of the cubie at p facing n can
// be seen: on the outside of the cube, or on the cut between the turning
// layer and the rest while a turn animates.
func (r *Renderer) bodyExposed(p, n geom.Vec3, turning *cube.Face) bool {
	q := p.Add(n)
	if !inGrid(q) {
		return true
	}
	if turning == nil {
		return false
	}
	return inLayer(p, *turning) != inLayer(q, *turning)
}

func (r *Renderer) emit(frame *Frame, cam Camera, orient geom.Mat3, corners [4]geom.Vec3, normal geom.Vec3, col colorful.Color, kind Kind, slot int) {
	var (
		poly  = Polygon{Kind: kind, Slot: slot}
		depth float64
	)
	for i, c := range corners {
		p := cam.toCamera(orient.Mul3x1(c)).Mul(r.cfg.Scale)
		// Camera z grows towards the viewer; projection depth grows away.
		d := -p[2]
		depth += d
		v, err := geom.Project(geom.Vec3{p[0], p[1], d}, r.cfg.FocalLength, r.cfg.DepthOffset, r.cfg.Viewport)
		if err != nil {
			frame.Clamped++
		}
		poly.Vertices[i] = v
	}
	if r.cfg.BackfaceCulling && signedArea(poly.Vertices) <= 0 {
		return
	}

	poly.Depth = depth / 4
	poly.Color = col
	if r.cfg.Shading {
		n := cam.toCamera(orient.Mul3x1(normal))
		lambert := math.Max(0, n.Dot(light))
		poly.Color = shade(col, ambient+(1-ambient)*lambert)
	}
	frame.Polygons = append(frame.Polygons, poly)
}

// shade darkens c towards black in Lab space; k=1 leaves it unchanged.
func shade(c colorful.Color, k float64) colorful.Color {
	return c.BlendLab(colorful.Color{}, 1-math.Min(1, k)).Clamped()
}

// signedArea is twice the signed area of a screen-space polygon. Screen y
// grows downward, so a face seen from outside comes out positive.
func signedArea(v [4]geom.Vec2) float64 {
	var a float64
	for i := range v {
		j := (i + 1) % len(v)
		a += v[i][0]*v[j][1] - v[j][0]*v[i][1]
	}
	return a
}
