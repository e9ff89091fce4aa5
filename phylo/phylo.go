// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements rooted phylogenetic trees
// with branch lengths,
// as used by phylogenetic diversity metrics.
//
// Trees can be read from newick strings
// or converted from time-calibrated trees.
package phylo

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Errors returned when building a tree.
var (
	ErrInvalidTree   = errors.New("invalid phylogeny")
	ErrMissingLength = errors.New("missing branch length")
)

// A Tree is a rooted phylogenetic tree.
// Node IDs are assigned in pre-order,
// so the root is always 0
// and a parent always has a smaller ID than its children.
type Tree struct {
	name  string
	nodes []*node
	terms map[string]int
}

type node struct {
	id       int
	parent   int
	children []int
	length   float64
	label    string
}

func newTree(name string) *Tree {
	return &Tree{
		name:  name,
		terms: make(map[string]int),
	}
}

// add adds a node as a child of the indicated parent.
// The parent of the root is -1.
func (t *Tree) add(parent int, length float64, label string) int {
	n := &node{
		id:     len(t.nodes),
		parent: parent,
		length: length,
		label:  strings.TrimSpace(label),
	}
	t.nodes = append(t.nodes, n)
	if parent >= 0 {
		p := t.nodes[parent]
		p.children = append(p.children, n.id)
	}
	return n.id
}

// validate checks branch lengths and terminal names,
// and builds the terminal index.
func (t *Tree) validate() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidTree)
	}
	for _, n := range t.nodes {
		if n.parent >= 0 {
			if math.IsNaN(n.length) {
				if n.label != "" {
					return fmt.Errorf("%w: node %q", ErrMissingLength, n.label)
				}
				return fmt.Errorf("%w: node %d", ErrMissingLength, n.id)
			}
			if n.length < 0 || math.IsInf(n.length, 0) {
				return fmt.Errorf("%w: node %d: invalid branch length %v", ErrInvalidTree, n.id, n.length)
			}
		}
		if len(n.children) > 0 {
			continue
		}
		if n.label == "" {
			return fmt.Errorf("%w: terminal %d without name", ErrInvalidTree, n.id)
		}
		if _, dup := t.terms[n.label]; dup {
			return fmt.Errorf("%w: repeated terminal %q", ErrInvalidTree, n.label)
		}
		t.terms[n.label] = n.id
	}
	return nil
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Parent returns the ID of the parent of a node.
// The root returns -1.
func (t *Tree) Parent(id int) int {
	return t.nodes[id].parent
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.nodes[id].children)
}

// IsRoot returns true if the node is the root.
func (t *Tree) IsRoot(id int) bool {
	return t.nodes[id].parent < 0
}

// IsTerm returns true if the node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	return len(t.nodes[id].children) == 0
}

// Length returns the length of the branch
// that connects a node with its parent.
// The root returns 0.
func (t *Tree) Length(id int) float64 {
	n := t.nodes[id]
	if n.parent < 0 {
		return 0
	}
	return n.length
}

// Label returns the label of a node.
// For terminals,
// it is the taxon name.
func (t *Tree) Label(id int) string {
	return t.nodes[id].label
}

// Term returns the ID of the terminal
// with the given name.
func (t *Tree) Term(name string) (int, bool) {
	id, ok := t.terms[strings.TrimSpace(name)]
	return id, ok
}

// Terms returns the names of the terminals,
// sorted alphabetically.
func (t *Tree) Terms() []string {
	terms := make([]string, 0, len(t.terms))
	for tx := range t.terms {
		terms = append(terms, tx)
	}
	slices.Sort(terms)
	return terms
}

// Depth returns the sum of the branch lengths
// between the node and the root.
func (t *Tree) Depth(id int) float64 {
	var d float64
	for n := t.nodes[id]; n.parent >= 0; n = t.nodes[n.parent] {
		d += n.length
	}
	return d
}

// PostOrder returns the node IDs
// with every node after all of its descendants.
func (t *Tree) PostOrder() []int {
	// node IDs are in pre-order,
	// so reversing them puts children before parents.
	ids := make([]int, len(t.nodes))
	for i := range ids {
		ids[i] = len(t.nodes) - 1 - i
	}
	return ids
}
