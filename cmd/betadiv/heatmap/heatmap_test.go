// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package heatmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/betadiv/distmat"
	"gonum.org/v1/plot/vg"
)

func TestGrid(t *testing.T) {
	ids := []string{"S1", "S2", "S3"}
	dm, err := distmat.New(ids, [][]float64{
		{0, 0.6, 1},
		{0.6, 0, 0.5},
		{1, 0.5, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := grid{dm: dm}
	c, r := g.Dims()
	if c != 3 || r != 3 {
		t.Errorf("dims: got %d x %d, want 3 x 3", c, r)
	}
	if z := g.Z(2, 0); z != 1 {
		t.Errorf("z(2, 0): got %.3f, want 1", z)
	}
	if y := g.Y(0); y != 2 {
		t.Errorf("y(0): got %.3f, want 2", y)
	}

	if len(newGradient().Colors()) != numColors {
		t.Errorf("gradient: got %d colors, want %d", len(newGradient().Colors()), numColors)
	}

	name := filepath.Join(t.TempDir(), "distances.svg")
	if err := draw(dm, name, 3*vg.Inch); err != nil {
		t.Fatalf("draw: unexpected error: %v", err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("draw: %v", err)
	}
}
