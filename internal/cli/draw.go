package cli

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// halfBlocks draws img with one "▀" per pair of pixel rows: the upper pixel
// is the foreground and the lower one the background. Runs of identical
// cells share one style.
func halfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var (
			run    int
			fg, bg color.RGBA
		)
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexOf(fg))).
				Background(lipgloss.Color(hexOf(bg)))
			sb.WriteString(style.Render(strings.Repeat("▀", run)))
			run = 0
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			if run > 0 && (top != fg || bottom != bg) {
				flush()
			}
			fg, bg = top, bottom
			run++
		}
		flush()
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// colorNet draws the unfolded net with each facelet as a colored cell.
func colorNet(c cube.Cube, p render.Palette) string {
	var sb strings.Builder
	for i, line := range cube.Net() {
		for _, slot := range line {
			if slot < 0 {
				sb.WriteString("  ")
				continue
			}
			style := lipgloss.NewStyle().Background(lipgloss.Color(p.Hex(c.At(slot))))
			sb.WriteString(style.Render("  "))
		}
		if i < len(cube.Net())-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
