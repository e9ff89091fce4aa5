// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package heatmap implements a command to draw
// a distance matrix as a heat map.
package heatmap

import (
	"image/color"

	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/project"
	"github.com/js-arias/blind"
	"github.com/js-arias/command"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `heatmap [--size <value>] [-o|--output <file>]
	[<project-file>]`,
	Short: "draw a distance matrix as a heat map",
	Long: `
Command heatmap reads the distance matrix of a betadiv project and draws it
as a heat map, using a color blind safe color scale. Darker colors indicate
larger distances.

The argument of the command is the name of the project file. If the flag
--matrix is defined, the project file is not required, and the matrix is read
from the indicated distance file.

By default, the image is saved as 'distances.png'. Use the flag --output, or
-o, to set a different file name. The format of the image is defined by the
file extension, valid extensions are .png, .svg, .pdf, .jpg, .tif, and .eps.

The flag --size sets the width and height of the image, in inches. The
default size is 6.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var matrixFile string
var output string
var size float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&matrixFile, "matrix", "", "")
	c.Flags().StringVar(&output, "output", "distances.png", "")
	c.Flags().StringVar(&output, "o", "distances.png", "")
	c.Flags().Float64Var(&size, "size", 6, "")
}

func run(c *command.Command, args []string) error {
	var dm *distmat.Matrix
	if matrixFile != "" {
		var err error
		dm, err = distmat.Read(matrixFile)
		if err != nil {
			return err
		}
	} else {
		if len(args) < 1 {
			return c.UsageError("expecting project file")
		}
		p, err := project.Read(args[0])
		if err != nil {
			return err
		}
		dm, err = p.Distances()
		if err != nil {
			return err
		}
	}
	if size <= 0 {
		return c.UsageError("flag --size must be positive")
	}

	return draw(dm, output, vg.Length(size)*vg.Inch)
}

// Grid implements the plotter.GridXYZ interface.
type grid struct {
	dm *distmat.Matrix
}

func (g grid) Dims() (c, r int) {
	return g.dm.Len(), g.dm.Len()
}

func (g grid) Z(c, r int) float64 {
	return g.dm.At(r, c)
}

func (g grid) X(c int) float64 {
	return float64(c)
}

// Rows are drawn from top to bottom.
func (g grid) Y(r int) float64 {
	return float64(g.dm.Len() - 1 - r)
}

const numColors = 64

// Gradient implements the palette.Palette interface.
type gradient []color.Color

func (g gradient) Colors() []color.Color {
	return g
}

func newGradient() gradient {
	g := make(gradient, numColors)
	for i := range g {
		g[i] = blind.Sequential(blind.Iridescent, float64(i)/float64(numColors-1))
	}
	return g
}

func draw(dm *distmat.Matrix, name string, size vg.Length) error {
	p := plot.New()
	p.HideAxes()

	hm := plotter.NewHeatMap(grid{dm: dm}, newGradient())
	hm.Min = 0
	hm.Max = dm.Max()
	if hm.Max == 0 {
		hm.Max = 1
	}
	p.Add(hm)

	ids := dm.IDs()
	xTicks := make([]plot.Tick, len(ids))
	yTicks := make([]plot.Tick, len(ids))
	for i, id := range ids {
		xTicks[i] = plot.Tick{Value: float64(i), Label: id}
		yTicks[i] = plot.Tick{Value: float64(len(ids) - 1 - i), Label: id}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Tick.Label.Rotation = 1.5708
	p.X.Tick.Label.XAlign = -1

	return p.Save(size, size, name)
}
