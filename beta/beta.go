// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package beta computes beta diversity distance matrices
// from abundance tables.
//
// Metrics are divided in two disjoint sets:
// plain metrics,
// that only use the abundance table,
// and phylogenetic metrics,
// that also require a phylogeny.
// Use Beta for plain metrics,
// and Phylogenetic for phylogenetic metrics.
//
// Both functions validate the metric name
// before any computation is done,
// and return the result of the distance routine
// without modification.
package beta

import (
	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/betadiv/table"
)

// Beta returns the distance matrix
// between the samples of an abundance table
// using a plain (non-phylogenetic) metric.
//
// Parameters are passed to the distance routine
// without modification.
func Beta(t *table.Table, metric string, p param.Params) (*distmat.Matrix, error) {
	const op = "beta"

	e, ok := registry[metric]
	if !ok {
		return nil, &Error{Kind: Unknown, Op: op, Metric: metric}
	}
	if e.kind != Plain {
		return nil, &Error{Kind: WrongDispatch, Op: op, Metric: metric}
	}
	if t == nil {
		return nil, &Error{Kind: MissingInput, Op: op, Metric: metric, Input: "abundance table"}
	}

	return e.plain(t, metric, p)
}

// Phylogenetic returns the distance matrix
// between the samples of an abundance table
// using a phylogenetic metric
// on the given phylogeny.
//
// Parameters are passed to the distance routine
// without modification.
func Phylogenetic(t *table.Table, tree *phylo.Tree, metric string, p param.Params) (*distmat.Matrix, error) {
	const op = "phylogenetic"

	e, ok := registry[metric]
	if !ok {
		return nil, &Error{Kind: Unknown, Op: op, Metric: metric}
	}
	if e.kind != Phylo {
		return nil, &Error{Kind: WrongDispatch, Op: op, Metric: metric}
	}
	if t == nil {
		return nil, &Error{Kind: MissingInput, Op: op, Metric: metric, Input: "abundance table"}
	}
	if tree == nil {
		return nil, &Error{Kind: MissingInput, Op: op, Metric: metric, Input: "phylogeny"}
	}

	return e.phylo(t, tree, metric, p)
}
