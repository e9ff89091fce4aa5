// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package unifrac implements UniFrac distances,
// phylogenetic distances between the samples
// of an abundance table.
//
// The abundance of a branch in a sample
// is the sum of the abundances of the features
// at the terminals descendant of the branch.
// Every node except the root defines a branch.
package unifrac

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/betadiv/table"
)

// Errors returned by the distance routine.
var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrUnknownFeature = errors.New("features not found in phylogeny")
)

// Metric names.
const (
	Unweighted         = "unweighted_unifrac"
	Weighted           = "weighted_unifrac"
	WeightedNormalized = "weighted_normalized_unifrac"
)

// Metrics returns the names of the metrics
// implemented by the package,
// sorted alphabetically.
func Metrics() []string {
	ms := []string{Unweighted, Weighted, WeightedNormalized}
	slices.Sort(ms)
	return ms
}

// Compute returns the distance matrix
// between all the samples of an abundance table,
// using the indicated UniFrac metric
// on the given phylogeny.
//
// All features of the table must be terminals
// of the phylogeny.
// Terminals without features in the table
// have an abundance of 0.
//
// Recognized parameters:
//
//   - normalized, if true, weighted_unifrac is normalized
//     (default false)
//   - workers, the number of goroutines used (default 1)
func Compute(t *table.Table, tree *phylo.Tree, metric string, p param.Params) (*distmat.Matrix, error) {
	var normalized bool
	switch metric {
	case Unweighted:
	case Weighted:
		var err error
		normalized, err = p.Bool("normalized", false)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %v", metric, err)
		}
	case WeightedNormalized:
		normalized = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	workers, err := p.Int("workers", 1)
	if err != nil {
		return nil, err
	}

	b, err := newBranches(t, tree)
	if err != nil {
		return nil, err
	}

	samples := t.Samples()
	return distmat.Fill(samples, workers, func(i, j int) (float64, error) {
		if metric == Unweighted {
			return b.unweighted(i, j), nil
		}
		return b.weighted(i, j, normalized), nil
	})
}

// branches stores the abundance of each sample
// at each node of the tree.
type branches struct {
	tree   *phylo.Tree
	abund  [][]float64 // sample x node
	total  []float64   // total abundance of each sample
	terms  []int       // terminals with features
	depth  []float64   // distance to the root of each terminal
	length []float64   // branch length of each node
}

func newBranches(t *table.Table, tree *phylo.Tree) (*branches, error) {
	features := t.Features()
	terms := make([]int, len(features))
	depth := make([]float64, len(features))
	var missing []string
	for i, f := range features {
		id, ok := tree.Term(f)
		if !ok {
			missing = append(missing, f)
			continue
		}
		terms[i] = id
		depth[i] = tree.Depth(id)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, strings.Join(missing, ", "))
	}

	length := make([]float64, tree.Len())
	for id := range length {
		length[id] = tree.Length(id)
	}

	post := tree.PostOrder()
	b := &branches{
		tree:   tree,
		abund:  make([][]float64, t.NumSamples()),
		total:  make([]float64, t.NumSamples()),
		terms:  terms,
		depth:  depth,
		length: length,
	}
	for s := range b.abund {
		col := t.Column(s)
		ab := make([]float64, tree.Len())
		for i, id := range terms {
			ab[id] = col[i]
		}
		for _, id := range post {
			if tree.IsRoot(id) {
				continue
			}
			ab[tree.Parent(id)] += ab[id]
		}
		b.abund[s] = ab
		b.total[s] = ab[tree.Root()]
	}
	return b, nil
}

// Unweighted returns the fraction of the observed branch length
// that is unique to one of the samples.
func (b *branches) unweighted(i, j int) float64 {
	u, v := b.abund[i], b.abund[j]
	var unique, observed float64
	for id, l := range b.length {
		if b.tree.IsRoot(id) {
			continue
		}
		pu, pv := u[id] > 0, v[id] > 0
		if pu || pv {
			observed += l
		}
		if pu != pv {
			unique += l
		}
	}
	if observed == 0 {
		return 0
	}
	return unique / observed
}

// Weighted returns the sum of the branch lengths
// weighted by the difference in the relative abundance
// of each sample.
func (b *branches) weighted(i, j int, normalized bool) float64 {
	u, v := b.abund[i], b.abund[j]
	tu, tv := b.total[i], b.total[j]

	var d float64
	for id, l := range b.length {
		if b.tree.IsRoot(id) {
			continue
		}
		d += l * math.Abs(prop(u[id], tu)-prop(v[id], tv))
	}
	if !normalized {
		return d
	}

	var norm float64
	for i, id := range b.terms {
		norm += b.depth[i] * (prop(u[id], tu) + prop(v[id], tv))
	}
	if norm == 0 {
		return 0
	}
	return d / norm
}

func prop(x, total float64) float64 {
	if total == 0 {
		return 0
	}
	return x / total
}
