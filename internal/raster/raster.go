// Package raster paints rendered frames into images.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/SeamusWaldron/gocube3d/internal/render"
)

// Background is the default fill behind the cube.
var Background = color.RGBA{R: 0x20, G: 0x22, B: 0x2a, A: 0xff}

// Canvas paints frames into a fixed-size RGBA image. It keeps its
// rasterizer between frames.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
	bg  image.Image
}

// NewCanvas creates a w x h canvas.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
		bg:  image.NewUniform(Background),
	}
}

// Image returns the painted image. It is overwritten by the next Paint.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// fit returns the uniform scale and offset that centre the frame viewport
// in the canvas.
func (c *Canvas) fit(f render.Frame) (scale, dx, dy float64) {
	w, h := c.Size()
	vw, vh := f.Viewport.Width, f.Viewport.Height
	if vw <= 0 || vh <= 0 {
		return 1, 0, 0
	}
	scale = float64(w) / vw
	if s := float64(h) / vh; s < scale {
		scale = s
	}
	return scale, (float64(w) - vw*scale) / 2, (float64(h) - vh*scale) / 2
}

// Paint clears the canvas and paints the polygons of f in order.
func (c *Canvas) Paint(f render.Frame) *image.RGBA {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)

	w, h := c.Size()
	scale, dx, dy := c.fit(f)
	// Clamped projections can land far off canvas.
	limit := float64(4 * max(w, h))
	for _, p := range f.Polygons {
		c.z.Reset(w, h)
		c.z.DrawOp = draw.Over
		for i, v := range p.Vertices {
			x := float32(clamp(v[0]*scale+dx, limit))
			y := float32(clamp(v[1]*scale+dy, limit))
			if i == 0 {
				c.z.MoveTo(x, y)
				continue
			}
			c.z.LineTo(x, y)
		}
		c.z.ClosePath()
		c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(p.Color.Clamped()), image.Point{})
	}
	return c.img
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// Draw paints f into a new w x h image.
func Draw(f render.Frame, w, h int) *image.RGBA {
	return NewCanvas(w, h).Paint(f)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
