// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pairwise

import (
	"fmt"
	"math"

	"github.com/js-arias/betadiv/param"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Two empty samples are identical,
// so ratio metrics return 0
// when both the numerator and the denominator are 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		if num == 0 {
			return 0
		}
		return math.NaN()
	}
	return num / den
}

func brayCurtis(u, v []float64) float64 {
	var num, den float64
	for i := range u {
		num += math.Abs(u[i] - v[i])
		den += math.Abs(u[i] + v[i])
	}
	return ratio(num, den)
}

func canberra(u, v []float64) float64 {
	var d float64
	for i := range u {
		den := math.Abs(u[i]) + math.Abs(v[i])
		if den == 0 {
			continue
		}
		d += math.Abs(u[i]-v[i]) / den
	}
	return d
}

func chebyshev(u, v []float64) float64 {
	return floats.Distance(u, v, math.Inf(1))
}

func cityBlock(u, v []float64) float64 {
	return floats.Distance(u, v, 1)
}

func euclidean(u, v []float64) float64 {
	return floats.Distance(u, v, 2)
}

func sqEuclidean(u, v []float64) float64 {
	var d float64
	for i := range u {
		x := u[i] - v[i]
		d += x * x
	}
	return d
}

func minkowski(p param.Params) (Func, error) {
	order, err := p.Float("p", 2)
	if err != nil {
		return nil, err
	}
	if order < 1 {
		return nil, fmt.Errorf("invalid order %v: must be at least 1", order)
	}
	return func(u, v []float64) float64 {
		return floats.Distance(u, v, order)
	}, nil
}

// Rounding can produce tiny negative values
// on identical vectors.
func nonNegative(d float64) float64 {
	if d < 0 {
		return 0
	}
	return d
}

func correlation(u, v []float64) float64 {
	return nonNegative(1 - stat.Correlation(u, v, nil))
}

func cosine(u, v []float64) float64 {
	nu := floats.Norm(u, 2)
	nv := floats.Norm(v, 2)
	if nu == 0 || nv == 0 {
		return math.NaN()
	}
	return nonNegative(1 - floats.Dot(u, v)/(nu*nv))
}

func hamming(u, v []float64) float64 {
	var diff int
	for i := range u {
		if u[i] != v[i] {
			diff++
		}
	}
	return float64(diff) / float64(len(u))
}

// Jaccard uses the proportion of the features present
// in any sample
// whose counts differ.
func jaccard(u, v []float64) float64 {
	var nonZero, diff int
	for i := range u {
		if u[i] == 0 && v[i] == 0 {
			continue
		}
		nonZero++
		if u[i] != v[i] {
			diff++
		}
	}
	return ratio(float64(diff), float64(nonZero))
}

// contingency returns the number of features
// present in both samples (tt),
// only in u (tf),
// only in v (ft),
// and in neither (ff).
func contingency(u, v []float64) (tt, tf, ft, ff float64) {
	for i := range u {
		a, b := u[i] != 0, v[i] != 0
		switch {
		case a && b:
			tt++
		case a:
			tf++
		case b:
			ft++
		default:
			ff++
		}
	}
	return tt, tf, ft, ff
}

func dice(u, v []float64) float64 {
	tt, tf, ft, _ := contingency(u, v)
	return ratio(tf+ft, 2*tt+tf+ft)
}

func matching(u, v []float64) float64 {
	_, tf, ft, _ := contingency(u, v)
	return (tf + ft) / float64(len(u))
}

func rogersTanimoto(u, v []float64) float64 {
	tt, tf, ft, ff := contingency(u, v)
	r := 2 * (tf + ft)
	return r / (tt + ff + r)
}

func russellRao(u, v []float64) float64 {
	tt, _, _, _ := contingency(u, v)
	n := float64(len(u))
	return (n - tt) / n
}

func sokalMichener(u, v []float64) float64 {
	tt, tf, ft, ff := contingency(u, v)
	r := 2 * (tf + ft)
	return r / (tt + ff + r)
}

// SokalSneath is undefined
// when no feature is present in any sample.
func sokalSneath(u, v []float64) float64 {
	tt, tf, ft, _ := contingency(u, v)
	r := 2 * (tf + ft)
	if tt+r == 0 {
		return math.NaN()
	}
	return r / (tt + r)
}

func yule(u, v []float64) float64 {
	tt, tf, ft, ff := contingency(u, v)
	r := 2 * tf * ft
	if r == 0 {
		return 0
	}
	return r / (tt*ff + tf*ft)
}
