// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package beta

import (
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/pairwise"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/betadiv/table"
	"github.com/js-arias/betadiv/unifrac"
)

// Kind is the set to which a metric belongs.
type Kind int

// Metric kinds.
const (
	// Plain metrics only use the abundance table.
	Plain Kind = iota + 1

	// Phylo metrics use the abundance table
	// and a phylogeny.
	Phylo
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Phylo:
		return "phylogenetic"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// A PlainFunc is a distance routine
// for plain metrics.
type PlainFunc func(t *table.Table, metric string, p param.Params) (*distmat.Matrix, error)

// A PhyloFunc is a distance routine
// for phylogenetic metrics.
type PhyloFunc func(t *table.Table, tree *phylo.Tree, metric string, p param.Params) (*distmat.Matrix, error)

type entry struct {
	kind  Kind
	plain PlainFunc
	phylo PhyloFunc
}

var registry = make(map[string]entry)

func init() {
	for _, m := range pairwise.Metrics() {
		RegisterPlain(m, pairwise.Compute)
	}
	for _, m := range unifrac.Metrics() {
		RegisterPhylo(m, unifrac.Compute)
	}
}

func checkName(name string) {
	if name == "" || name != strings.TrimSpace(name) {
		panic(fmt.Sprintf("beta: invalid metric name %q", name))
	}
	if e, dup := registry[name]; dup {
		panic(fmt.Sprintf("beta: metric %q already registered as %s", name, e.kind))
	}
}

// RegisterPlain registers a plain metric.
//
// It panics if the name is empty,
// the function is nil,
// or the name is already registered
// in any set.
// It is expected to be called during initialization,
// and is not safe to call concurrently with Beta or Phylogenetic.
func RegisterPlain(name string, fn PlainFunc) {
	checkName(name)
	if fn == nil {
		panic(fmt.Sprintf("beta: nil function for metric %q", name))
	}
	registry[name] = entry{kind: Plain, plain: fn}
}

// RegisterPhylo registers a phylogenetic metric.
//
// It panics if the name is empty,
// the function is nil,
// or the name is already registered
// in any set.
// It is expected to be called during initialization,
// and is not safe to call concurrently with Beta or Phylogenetic.
func RegisterPhylo(name string, fn PhyloFunc) {
	checkName(name)
	if fn == nil {
		panic(fmt.Sprintf("beta: nil function for metric %q", name))
	}
	registry[name] = entry{kind: Phylo, phylo: fn}
}

// Lookup returns the kind of a metric.
func Lookup(name string) (Kind, bool) {
	e, ok := registry[name]
	return e.kind, ok
}

// Metrics returns the names of the metrics
// of the given kind,
// sorted alphabetically.
func Metrics(k Kind) []string {
	var ms []string
	for m, e := range registry {
		if e.kind == k {
			ms = append(ms, m)
		}
	}
	slices.Sort(ms)
	return ms
}
