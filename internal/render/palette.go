package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
)

// Palette maps facelet colors to display colors.
type Palette struct {
	Stickers [cube.Orange + 1]colorful.Color
	Body     colorful.Color
}

// DefaultPalette returns the standard sticker colors on a black body.
func DefaultPalette() Palette {
	var p Palette
	for c, hex := range map[cube.Color]string{
		cube.Empty:  "#3a3a3a",
		cube.White:  "#ffffff",
		cube.Yellow: "#ffd500",
		cube.Green:  "#009e60",
		cube.Blue:   "#0051ba",
		cube.Red:    "#c41e3a",
		cube.Orange: "#ff5800",
	} {
		p.Stickers[c], _ = colorful.Hex(hex)
	}
	p.Body, _ = colorful.Hex("#111111")
	return p
}

// WithOverrides returns a copy of p with colors replaced from a map of
// color name ("white", ..., "body") to hex string.
func (p Palette) WithOverrides(hex map[string]string) (Palette, error) {
	out := p
	for name, value := range hex {
		col, err := colorful.Hex(value)
		if err != nil {
			return p, fmt.Errorf("palette %s: %w", name, err)
		}
		if strings.EqualFold(name, "body") {
			out.Body = col
			continue
		}
		found := false
		for _, c := range cube.Colors {
			if strings.EqualFold(name, c.Name()) {
				out.Stickers[c] = col
				found = true
			}
		}
		if !found {
			return p, fmt.Errorf("palette: unknown color %q", name)
		}
	}
	return out, nil
}

// Color returns the display color of a facelet color.
func (p Palette) Color(c cube.Color) colorful.Color {
	if int(c) >= len(p.Stickers) {
		return p.Stickers[cube.Empty]
	}
	return p.Stickers[c]
}

// Hex returns the display color of a facelet color as #rrggbb.
func (p Palette) Hex(c cube.Color) string {
	return p.Color(c).Clamped().Hex()
}
