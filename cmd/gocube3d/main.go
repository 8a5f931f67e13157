// gocube3d - animated 3D Rubik's Cube viewer for the terminal.
package main

import (
	"github.com/SeamusWaldron/gocube3d/internal/cli"
)

func main() {
	cli.Execute()
}
