package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

func square(x0, y0, x1, y1 float64, c colorful.Color) render.Polygon {
	return render.Polygon{
		Vertices: [4]geom.Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}},
		Color:    c,
		Kind:     render.KindSticker,
	}
}

func TestPaintScalesViewportToCanvas(t *testing.T) {
	red := colorful.Color{R: 1}
	frame := render.Frame{
		Viewport: geom.Viewport{Width: 100, Height: 100},
		Polygons: []render.Polygon{square(25, 25, 75, 75, red)},
	}

	img := Draw(frame, 200, 200)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(100, 100))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(60, 60))
	assert.Equal(t, Background, img.RGBAAt(20, 20))
	assert.Equal(t, Background, img.RGBAAt(180, 100))
}

func TestPaintLetterboxes(t *testing.T) {
	blue := colorful.Color{B: 1}
	frame := render.Frame{
		Viewport: geom.Viewport{Width: 100, Height: 100},
		Polygons: []render.Polygon{square(0, 0, 100, 100, blue)},
	}

	// A 300x100 canvas fits the viewport at scale 1, centred horizontally.
	img := Draw(frame, 300, 100)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, img.RGBAAt(150, 50))
	assert.Equal(t, Background, img.RGBAAt(50, 50))
	assert.Equal(t, Background, img.RGBAAt(250, 50))
}

func TestPaintOrderIsPainters(t *testing.T) {
	frame := render.Frame{
		Viewport: geom.Viewport{Width: 10, Height: 10},
		Polygons: []render.Polygon{
			square(0, 0, 10, 10, colorful.Color{R: 1}),
			square(2, 2, 8, 8, colorful.Color{G: 1}),
		},
	}
	img := Draw(frame, 10, 10)
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(1, 1))
}

func TestPaintSurvivesFarOffVertices(t *testing.T) {
	frame := render.Frame{
		Viewport: geom.Viewport{Width: 10, Height: 10},
		Polygons: []render.Polygon{square(-1e9, -1e9, 1e9, 1e9, colorful.Color{R: 1})},
	}
	img := Draw(frame, 16, 16)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(8, 8))
}

func TestCanvasReuse(t *testing.T) {
	c := NewCanvas(40, 30)
	w, h := c.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	r := render.New(render.DefaultConfig(), nil)
	frame, err := r.Render(cube.New(), render.DefaultCamera(), nil)
	require.NoError(t, err)
	c.Paint(frame)
	assert.NotEqual(t, Background, c.Image().RGBAAt(20, 15), "cube should cover the centre")

	c.Paint(render.Frame{Viewport: frame.Viewport})
	assert.Equal(t, Background, c.Image().RGBAAt(20, 15), "paint clears the previous frame")
}

func TestSavePNG(t *testing.T) {
	r := render.New(render.DefaultConfig(), nil)
	frame, err := r.Render(cube.New(), render.DefaultCamera(), nil)
	require.NoError(t, err)
	img := Draw(frame, 64, 48)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	path := filepath.Join(t.TempDir(), "cube.png")
	require.NoError(t, SavePNG(path, img))
	assert.FileExists(t, path)
}
