// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/timetree"
)

const testTree = "((O1:0.25,O2:0.50):0.25,O3:0.75)root;"

func TestNewick(t *testing.T) {
	tr, err := phylo.Newick(strings.NewReader(testTree), "test")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	testPhylo(t, "newick", tr)

	if l := tr.Label(tr.Root()); l != "root" {
		t.Errorf("newick: root label: got %q, want %q", l, "root")
	}
}

func TestFromTimeTree(t *testing.T) {
	c, err := timetree.Newick(strings.NewReader("((O1:0.25,O2:0.50):0.25,O3:0.75);"), "test", 0)
	if err != nil {
		t.Fatalf("unable to read time tree: %v", err)
	}
	tr, err := phylo.FromTimeTree(c.Tree("test"))
	if err != nil {
		t.Fatalf("unable to convert tree: %v", err)
	}
	testPhylo(t, "time tree", tr)
}

func TestNewickErrors(t *testing.T) {
	tests := map[string]struct {
		in  string
		err error
	}{
		"missing length": {
			in:  "((O1:0.25,O2):0.25,O3:0.75);",
			err: phylo.ErrMissingLength,
		},
		"repeated terminal": {
			in:  "((O1:0.25,O1:0.5):0.25,O3:0.75);",
			err: phylo.ErrInvalidTree,
		},
		"empty": {
			in:  "  ",
			err: phylo.ErrInvalidTree,
		},
	}

	for name, test := range tests {
		_, err := phylo.Newick(strings.NewReader(test.in), name)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", name, err, test.err)
		}
	}
}

func testPhylo(t testing.TB, name string, tr *phylo.Tree) {
	t.Helper()

	if n := tr.Len(); n != 5 {
		t.Errorf("%s: nodes: got %d, want %d", name, n, 5)
	}

	terms := []string{"O1", "O2", "O3"}
	if tm := tr.Terms(); !reflect.DeepEqual(tm, terms) {
		t.Errorf("%s: terms: got %v, want %v", name, tm, terms)
	}

	lengths := map[string]float64{
		"O1": 0.25,
		"O2": 0.50,
		"O3": 0.75,
	}
	depths := map[string]float64{
		"O1": 0.50,
		"O2": 0.75,
		"O3": 0.75,
	}
	for tx, l := range lengths {
		id, ok := tr.Term(tx)
		if !ok {
			t.Errorf("%s: terminal %q not found", name, tx)
			continue
		}
		if !tr.IsTerm(id) {
			t.Errorf("%s: node %d (%s) is not a terminal", name, id, tx)
		}
		if g := tr.Length(id); math.Abs(g-l) > 1e-9 {
			t.Errorf("%s: length of %q: got %.6f, want %.6f", name, tx, g, l)
		}
		if g := tr.Depth(id); math.Abs(g-depths[tx]) > 1e-9 {
			t.Errorf("%s: depth of %q: got %.6f, want %.6f", name, tx, g, depths[tx])
		}
	}

	o1, _ := tr.Term("O1")
	o2, _ := tr.Term("O2")
	p := tr.Parent(o1)
	if tr.Parent(o2) != p {
		t.Errorf("%s: O1 and O2 should be sisters", name)
	}
	if g := tr.Length(p); math.Abs(g-0.25) > 1e-9 {
		t.Errorf("%s: length of internal node: got %.6f, want %.6f", name, g, 0.25)
	}
	if tr.Parent(p) != tr.Root() {
		t.Errorf("%s: parent of internal node: got %d, want %d", name, tr.Parent(p), tr.Root())
	}

	seen := make(map[int]bool)
	for _, id := range tr.PostOrder() {
		for _, c := range tr.Children(id) {
			if !seen[c] {
				t.Errorf("%s: post-order: node %d before its child %d", name, id, c)
			}
		}
		seen[id] = true
	}
}
