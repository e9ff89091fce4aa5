// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package table implements abundance tables:
// matrices of non-negative counts
// of features (for example OTUs or taxa)
// observed in a set of samples.
package table

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidTable is returned when the data
// used to build a table is not valid.
var ErrInvalidTable = errors.New("invalid abundance table")

// Table is an abundance table.
// Rows are features,
// and columns are samples.
type Table struct {
	features []string
	samples  []string
	fIdx     map[string]int
	sIdx     map[string]int
	m        *mat.Dense
}

// New creates a new table from a set of feature IDs,
// a set of sample IDs,
// and a matrix of counts,
// in which rows are features
// and columns are samples.
//
// The counts are copied.
func New(features, samples []string, counts [][]float64) (*Table, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrInvalidTable)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidTable)
	}
	fIdx, err := index("feature", features)
	if err != nil {
		return nil, err
	}
	sIdx, err := index("sample", samples)
	if err != nil {
		return nil, err
	}
	if len(counts) != len(features) {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrInvalidTable, len(counts), len(features))
	}

	m := mat.NewDense(len(features), len(samples), nil)
	for i, row := range counts {
		if len(row) != len(samples) {
			return nil, fmt.Errorf("%w: feature %q: got %d values, want %d", ErrInvalidTable, features[i], len(row), len(samples))
		}
		for j, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: feature %q, sample %q: invalid count %v", ErrInvalidTable, features[i], samples[j], v)
			}
		}
		m.SetRow(i, row)
	}

	return &Table{
		features: trimAll(features),
		samples:  trimAll(samples),
		fIdx:     fIdx,
		sIdx:     sIdx,
		m:        m,
	}, nil
}

func trimAll(ids []string) []string {
	cp := make([]string, len(ids))
	for i, id := range ids {
		cp[i] = strings.TrimSpace(id)
	}
	return cp
}

func index(kind string, ids []string) (map[string]int, error) {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: empty %s ID at position %d", ErrInvalidTable, kind, i)
		}
		if _, dup := idx[id]; dup {
			return nil, fmt.Errorf("%w: repeated %s ID %q", ErrInvalidTable, kind, id)
		}
		idx[id] = i
	}
	return idx, nil
}

// Features returns the feature IDs
// in table order.
func (t *Table) Features() []string {
	cp := make([]string, len(t.features))
	copy(cp, t.features)
	return cp
}

// Samples returns the sample IDs
// in table order.
func (t *Table) Samples() []string {
	cp := make([]string, len(t.samples))
	copy(cp, t.samples)
	return cp
}

// NumFeatures returns the number of features in the table.
func (t *Table) NumFeatures() int {
	return len(t.features)
}

// NumSamples returns the number of samples in the table.
func (t *Table) NumSamples() int {
	return len(t.samples)
}

// HasFeature returns true if the feature is defined
// in the table.
func (t *Table) HasFeature(id string) bool {
	_, ok := t.fIdx[strings.TrimSpace(id)]
	return ok
}

// Count returns the count of a feature in a sample.
func (t *Table) Count(feature, sample string) float64 {
	i, ok := t.fIdx[strings.TrimSpace(feature)]
	if !ok {
		return 0
	}
	j, ok := t.sIdx[strings.TrimSpace(sample)]
	if !ok {
		return 0
	}
	return t.m.At(i, j)
}

// Column returns a copy of the counts
// of the sample at the given column.
// Values are in feature order.
func (t *Table) Column(j int) []float64 {
	return mat.Col(nil, j, t.m)
}

// Sample returns a copy of the counts of a sample.
// Values are in feature order.
func (t *Table) Sample(id string) ([]float64, bool) {
	j, ok := t.sIdx[strings.TrimSpace(id)]
	if !ok {
		return nil, false
	}
	return t.Column(j), true
}

// Total returns the sum of the counts of a sample.
func (t *Table) Total(id string) float64 {
	c, ok := t.Sample(id)
	if !ok {
		return 0
	}
	return floats.Sum(c)
}
