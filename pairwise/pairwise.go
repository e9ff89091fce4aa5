// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pairwise implements non-phylogenetic distances
// between the samples of an abundance table.
//
// Metric names follow the names used by SciPy
// and scikit-bio,
// so distance files produced by other tools
// can be compared directly.
package pairwise

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/table"
)

// Errors returned by the distance routine.
var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrUndefined     = errors.New("undefined distance")
)

// A Func returns the distance between two vectors
// of the same length.
// It returns NaN if the distance is undefined.
type Func func(u, v []float64) float64

// A builder returns a distance function
// using the given parameters.
type builder func(p param.Params) (Func, error)

func fixed(fn Func) builder {
	return func(param.Params) (Func, error) {
		return fn, nil
	}
}

var metrics = map[string]builder{
	"braycurtis":     fixed(brayCurtis),
	"canberra":       fixed(canberra),
	"chebyshev":      fixed(chebyshev),
	"cityblock":      fixed(cityBlock),
	"correlation":    fixed(correlation),
	"cosine":         fixed(cosine),
	"dice":           fixed(dice),
	"euclidean":      fixed(euclidean),
	"hamming":        fixed(hamming),
	"jaccard":        fixed(jaccard),
	"matching":       fixed(matching),
	"minkowski":      minkowski,
	"rogerstanimoto": fixed(rogersTanimoto),
	"russellrao":     fixed(russellRao),
	"sokalmichener":  fixed(sokalMichener),
	"sokalsneath":    fixed(sokalSneath),
	"sqeuclidean":    fixed(sqEuclidean),
	"yule":           fixed(yule),
}

// Metrics returns the names of the metrics
// implemented by the package,
// sorted alphabetically.
func Metrics() []string {
	ms := make([]string, 0, len(metrics))
	for m := range metrics {
		ms = append(ms, m)
	}
	slices.Sort(ms)
	return ms
}

// Distance returns the distance function
// of the given metric.
func Distance(metric string, p param.Params) (Func, error) {
	b, ok := metrics[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	fn, err := b(p)
	if err != nil {
		return nil, fmt.Errorf("metric %q: %v", metric, err)
	}
	return fn, nil
}

// Compute returns the distance matrix
// between all the samples of an abundance table,
// using the indicated metric.
//
// Recognized parameters:
//
//   - p, the order of the minkowski metric (default 2)
//   - workers, the number of goroutines used (default 1)
func Compute(t *table.Table, metric string, p param.Params) (*distmat.Matrix, error) {
	fn, err := Distance(metric, p)
	if err != nil {
		return nil, err
	}
	workers, err := p.Int("workers", 1)
	if err != nil {
		return nil, err
	}

	samples := t.Samples()
	cols := make([][]float64, len(samples))
	for j := range samples {
		cols[j] = t.Column(j)
	}

	return distmat.Fill(samples, workers, func(i, j int) (float64, error) {
		d := fn(cols[i], cols[j])
		if math.IsNaN(d) {
			return 0, fmt.Errorf("%w: metric %q: samples %q and %q", ErrUndefined, metric, samples[i], samples[j])
		}
		return d, nil
	})
}
