// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pairwise_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/betadiv/pairwise"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/table"
)

func newTable(t testing.TB, counts [][]float64) *table.Table {
	t.Helper()

	features := make([]string, len(counts))
	for i := range features {
		features[i] = "O" + string(rune('1'+i))
	}
	tb, err := table.New(features, []string{"S1", "S2", "S3"}, counts)
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}
	return tb
}

func TestBrayCurtis(t *testing.T) {
	tb := newTable(t, [][]float64{
		{0, 1, 3},
		{1, 1, 2},
	})

	dm, err := pairwise.Compute(tb, "braycurtis", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[[2]string]float64{
		{"S1", "S2"}: 0.3333333,
		{"S1", "S3"}: 0.6666667,
		{"S2", "S3"}: 0.4285714,
	}
	for p, w := range want {
		d, _ := dm.Dist(p[0], p[1])
		if math.Abs(d-w) > 1e-6 {
			t.Errorf("distance %s-%s: got %.7f, want %.7f", p[0], p[1], d, w)
		}
	}
}

func TestMetrics(t *testing.T) {
	tb := newTable(t, [][]float64{
		{0, 1, 3},
		{1, 1, 2},
	})

	tests := map[string]struct {
		p    param.Params
		a, b string
		want float64
	}{
		"euclidean":   {a: "S1", b: "S3", want: math.Sqrt(10)},
		"sqeuclidean": {a: "S1", b: "S3", want: 10},
		"cityblock":   {a: "S2", b: "S3", want: 3},
		"chebyshev":   {a: "S1", b: "S3", want: 3},
		"minkowski":   {p: param.Params{"p": "1"}, a: "S2", b: "S3", want: 3},
		"jaccard":     {a: "S1", b: "S2", want: 0.5},
		"hamming":     {a: "S2", b: "S3", want: 1},
		"matching":    {a: "S2", b: "S3", want: 0},
		"dice":        {a: "S1", b: "S2", want: 1.0 / 3},
		"russellrao":  {a: "S1", b: "S2", want: 0.5},
		"canberra":    {a: "S1", b: "S2", want: 1},
	}

	for name, test := range tests {
		dm, err := pairwise.Compute(tb, name, test.p)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		d, _ := dm.Dist(test.a, test.b)
		if math.Abs(d-test.want) > 1e-9 {
			t.Errorf("%s: distance %s-%s: got %.7f, want %.7f", name, test.a, test.b, d, test.want)
		}
	}
}

func TestAllMetrics(t *testing.T) {
	tb := newTable(t, [][]float64{
		{1, 0, 3},
		{2, 4, 0},
		{0, 5, 1},
		{7, 1, 2},
	})

	for _, m := range pairwise.Metrics() {
		dm, err := pairwise.Compute(tb, m, param.Params{"workers": "2"})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", m, err)
			continue
		}
		if ids := dm.IDs(); !reflect.DeepEqual(ids, tb.Samples()) {
			t.Errorf("%s: ids: got %v, want %v", m, ids, tb.Samples())
		}
		for i := 0; i < dm.Len(); i++ {
			if d := dm.At(i, i); d != 0 {
				t.Errorf("%s: diagonal %d: got %.6f, want 0", m, i, d)
			}
		}
	}
}

func TestComputeErrors(t *testing.T) {
	tb := newTable(t, [][]float64{
		{0, 1, 3},
		{1, 1, 2},
	})

	if _, err := pairwise.Compute(tb, "not-a-metric", nil); !errors.Is(err, pairwise.ErrUnknownMetric) {
		t.Errorf("unknown metric: got error %v, want %v", err, pairwise.ErrUnknownMetric)
	}

	// S2 has a constant abundance
	if _, err := pairwise.Compute(tb, "correlation", nil); !errors.Is(err, pairwise.ErrUndefined) {
		t.Errorf("correlation: got error %v, want %v", err, pairwise.ErrUndefined)
	}

	if _, err := pairwise.Compute(tb, "minkowski", param.Params{"p": "0.5"}); err == nil {
		t.Errorf("minkowski: expecting error on invalid order")
	}
}
