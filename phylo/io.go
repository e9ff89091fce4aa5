// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/timetree"
)

const millionYears = 1_000_000

// Newick reads a single tree in newick format.
// Every node,
// except the root,
// must have a branch length.
func Newick(r io.Reader, name string) (*Tree, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty newick input", ErrInvalidTree)
	}

	src, err := newick.NewParser(bytes.NewReader(b)).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}

	t := newTree(name)
	ids := make(map[*tree.Node]int)
	src.PreOrder(func(cur, prev *tree.Node, e *tree.Edge) bool {
		if prev == nil {
			ids[cur] = t.add(-1, 0, cur.Name())
			return true
		}
		length := math.NaN()
		if e != nil && e.Length() != tree.NIL_LENGTH {
			length = e.Length()
		}
		ids[cur] = t.add(ids[prev], length, cur.Name())
		return true
	})

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadNewick reads a newick tree from a file.
// The file name is used as the name of the tree.
func ReadNewick(name string) (*Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Newick(f, name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// FromTimeTree creates a tree from a time-calibrated tree.
// Branch lengths are the difference between the age
// of the parent and the age of the node,
// in million years.
func FromTimeTree(src *timetree.Tree) (*Tree, error) {
	t := newTree(src.Name())
	root := src.Root()
	copySource(t, src, root, -1)

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("tree %q: %w", src.Name(), err)
	}
	return t, nil
}

func copySource(t *Tree, src *timetree.Tree, id, parent int) {
	var length float64
	var label string
	if !src.IsRoot(id) {
		length = float64(src.Age(src.Parent(id))-src.Age(id)) / millionYears
	}
	if src.IsTerm(id) {
		label = src.Taxon(id)
	}
	nID := t.add(parent, length, label)
	for _, c := range src.Children(id) {
		copySource(t, src, c, nID)
	}
}
