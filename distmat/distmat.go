// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package distmat implements distance matrices:
// square, symmetric matrices
// with a zero diagonal,
// labeled by sample IDs.
package distmat

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Errors returned when a matrix is not valid.
var (
	ErrInvalidMatrix = errors.New("invalid distance matrix")
	ErrNotSymmetric  = errors.New("distance matrix is not symmetric")
	ErrNotHollow     = errors.New("distance matrix has a non-zero diagonal")
)

// Matrix is a distance matrix.
type Matrix struct {
	ids []string
	idx map[string]int
	m   *mat.SymDense
}

func newMatrix(ids []string) (*Matrix, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no IDs", ErrInvalidMatrix)
	}
	idx := make(map[string]int, len(ids))
	cp := make([]string, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: empty ID at position %d", ErrInvalidMatrix, i)
		}
		if _, dup := idx[id]; dup {
			return nil, fmt.Errorf("%w: repeated ID %q", ErrInvalidMatrix, id)
		}
		idx[id] = i
		cp[i] = id
	}
	return &Matrix{
		ids: cp,
		idx: idx,
		m:   mat.NewSymDense(len(ids), nil),
	}, nil
}

func checkValue(a, b string, d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: distance between %q and %q: invalid value %v", ErrInvalidMatrix, a, b, d)
	}
	return nil
}

// New creates a new distance matrix
// from a set of IDs
// and a square matrix of distances.
// The values are copied.
func New(ids []string, values [][]float64) (*Matrix, error) {
	dm, err := newMatrix(ids)
	if err != nil {
		return nil, err
	}
	if len(values) != len(ids) {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrInvalidMatrix, len(values), len(ids))
	}
	for i, row := range values {
		if len(row) != len(ids) {
			return nil, fmt.Errorf("%w: row %q: got %d values, want %d", ErrInvalidMatrix, dm.ids[i], len(row), len(ids))
		}
	}

	for i, row := range values {
		if row[i] != 0 {
			return nil, fmt.Errorf("%w: %q: %v", ErrNotHollow, dm.ids[i], row[i])
		}
		for j := i + 1; j < len(row); j++ {
			if row[j] != values[j][i] {
				return nil, fmt.Errorf("%w: %q-%q: %v, %q-%q: %v", ErrNotSymmetric, dm.ids[i], dm.ids[j], row[j], dm.ids[j], dm.ids[i], values[j][i])
			}
			if err := checkValue(dm.ids[i], dm.ids[j], row[j]); err != nil {
				return nil, err
			}
			dm.m.SetSym(i, j, row[j])
		}
	}
	return dm, nil
}

// A DistFunc returns the distance
// between the elements i and j.
type DistFunc func(i, j int) (float64, error)

type pair struct {
	i, j int
}

// Fill creates a new distance matrix
// by calling fn for each pair of IDs,
// with i < j.
//
// The number of workers indicates how many goroutines
// are used to compute the distances;
// values smaller than 2 compute them sequentially.
// If fn returns an error,
// Fill returns the first error found.
func Fill(ids []string, workers int, fn DistFunc) (*Matrix, error) {
	dm, err := newMatrix(ids)
	if err != nil {
		return nil, err
	}
	n := len(ids)

	if workers < 2 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := dm.set(i, j, fn); err != nil {
					return nil, err
				}
			}
		}
		return dm, nil
	}

	pairs := make(chan pair, workers*2)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	done := make(chan struct{})

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range pairs {
				if err := dm.set(p.i, p.j, fn); err != nil {
					once.Do(func() {
						firstErr = err
						close(done)
					})
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			select {
			case pairs <- pair{i, j}:
			case <-done:
				break feed
			}
		}
	}
	close(pairs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return dm, nil
}

// set stores the distance between i and j.
// Each cell is written by a single goroutine.
func (dm *Matrix) set(i, j int, fn DistFunc) error {
	d, err := fn(i, j)
	if err != nil {
		return err
	}
	if err := checkValue(dm.ids[i], dm.ids[j], d); err != nil {
		return err
	}
	dm.m.SetSym(i, j, d)
	return nil
}

// IDs returns the IDs of the matrix,
// in matrix order.
func (dm *Matrix) IDs() []string {
	cp := make([]string, len(dm.ids))
	copy(cp, dm.ids)
	return cp
}

// Len returns the number of IDs in the matrix.
func (dm *Matrix) Len() int {
	return len(dm.ids)
}

// At returns the distance between the elements
// at positions i and j.
func (dm *Matrix) At(i, j int) float64 {
	return dm.m.At(i, j)
}

// Dist returns the distance between two IDs.
func (dm *Matrix) Dist(a, b string) (float64, bool) {
	i, ok := dm.idx[strings.TrimSpace(a)]
	if !ok {
		return 0, false
	}
	j, ok := dm.idx[strings.TrimSpace(b)]
	if !ok {
		return 0, false
	}
	return dm.m.At(i, j), true
}

// Condensed returns the upper triangle of the matrix
// (without the diagonal)
// in row order.
func (dm *Matrix) Condensed() []float64 {
	n := len(dm.ids)
	c := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c = append(c, dm.m.At(i, j))
		}
	}
	return c
}

// Max returns the largest distance in the matrix.
func (dm *Matrix) Max() float64 {
	var max float64
	for _, d := range dm.Condensed() {
		if d > max {
			max = d
		}
	}
	return max
}

// Symmetric returns the matrix
// as a gonum symmetric matrix.
// The returned matrix is a copy.
func (dm *Matrix) Symmetric() mat.Symmetric {
	cp := mat.NewSymDense(len(dm.ids), nil)
	cp.CopySym(dm.m)
	return cp
}
