// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package beta_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/betadiv/beta"
	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/betadiv/table"
	"github.com/js-arias/betadiv/unifrac"
)

const testTree = "((O1:0.25,O2:0.50):0.25,O3:0.75)root;"

func newTable(t testing.TB) *table.Table {
	t.Helper()

	tb, err := table.New(
		[]string{"O1", "O2"},
		[]string{"S1", "S2", "S3"},
		[][]float64{
			{0, 1, 3},
			{1, 1, 2},
		},
	)
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}
	return tb
}

func newTree(t testing.TB) *phylo.Tree {
	t.Helper()

	tr, err := phylo.Newick(strings.NewReader(testTree), "test")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return tr
}

func TestBeta(t *testing.T) {
	tb := newTable(t)

	dm, err := beta.Beta(tb, "braycurtis", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]float64{
		{0.0000000, 0.3333333, 0.6666667},
		{0.3333333, 0.0000000, 0.4285714},
		{0.6666667, 0.4285714, 0.0000000},
	}
	testMatrix(t, "braycurtis", dm, tb.Samples(), want)
}

func TestBetaPhylogenetic(t *testing.T) {
	tb := newTable(t)
	tr := newTree(t)

	dm, err := beta.Phylogenetic(tb, tr, "unweighted_unifrac", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]float64{
		{0.00, 0.25, 0.25},
		{0.25, 0.00, 0.00},
		{0.25, 0.00, 0.00},
	}
	testMatrix(t, "unweighted_unifrac", dm, tb.Samples(), want)
}

func TestBetaPhyloMetric(t *testing.T) {
	tb := newTable(t)

	for _, m := range beta.Metrics(beta.Phylo) {
		_, err := beta.Beta(tb, m, nil)
		testRejection(t, m, err, beta.WrongDispatch)
		if err != nil && !strings.Contains(err.Error(), "Phylogenetic") {
			t.Errorf("%s: error %q should name the phylogenetic function", m, err)
		}

		// the table is not checked
		_, err = beta.Beta(nil, m, nil)
		testRejection(t, m, err, beta.WrongDispatch)
	}
}

func TestBetaPhylogeneticNonPhyloMetric(t *testing.T) {
	tb := newTable(t)
	tr := newTree(t)

	for _, m := range beta.Metrics(beta.Plain) {
		_, err := beta.Phylogenetic(tb, tr, m, nil)
		testRejection(t, m, err, beta.WrongDispatch)
		if err != nil && !strings.Contains(err.Error(), "Beta") {
			t.Errorf("%s: error %q should name the plain function", m, err)
		}

		_, err = beta.Phylogenetic(nil, nil, m, nil)
		testRejection(t, m, err, beta.WrongDispatch)
	}
}

func TestUnknownMetric(t *testing.T) {
	tb := newTable(t)
	tr := newTree(t)

	for _, m := range []string{"not-a-metric", "", "BrayCurtis", " braycurtis", "unifrac"} {
		_, err := beta.Beta(tb, m, nil)
		testRejection(t, m, err, beta.Unknown)

		_, err = beta.Phylogenetic(tb, tr, m, nil)
		testRejection(t, m, err, beta.Unknown)
	}
}

func TestMissingInput(t *testing.T) {
	tb := newTable(t)

	_, err := beta.Beta(nil, "braycurtis", nil)
	testRejection(t, "braycurtis", err, beta.MissingInput)

	_, err = beta.Phylogenetic(tb, nil, "unweighted_unifrac", nil)
	testRejection(t, "unweighted_unifrac", err, beta.MissingInput)
}

func TestPlainMetrics(t *testing.T) {
	tb, err := table.New(
		[]string{"O1", "O2", "O3", "O4"},
		[]string{"S1", "S2", "S3"},
		[][]float64{
			{1, 0, 3},
			{2, 4, 0},
			{0, 5, 1},
			{7, 1, 2},
		},
	)
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}

	for _, m := range beta.Metrics(beta.Plain) {
		if m == "test_forward" {
			continue
		}
		dm, err := beta.Beta(tb, m, nil)
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

func TestPhyloMetrics(t *testing.T) {
	tb := newTable(t)
	tr := newTree(t)

	for _, m := range beta.Metrics(beta.Phylo) {
		dm, err := beta.Phylogenetic(tb, tr, m, nil)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", m, err)
			continue
		}
		for i := 0; i < dm.Len(); i++ {
			if d := dm.At(i, i); d != 0 {
				t.Errorf("%s: diagonal %d: got %.6f, want 0", m, i, d)
			}
			for j := i + 1; j < dm.Len(); j++ {
				if dm.At(i, j) != dm.At(j, i) {
					t.Errorf("%s: distance %d-%d: not symmetric", m, i, j)
				}
			}
		}
	}
}

func TestDownstreamError(t *testing.T) {
	tb, err := table.New(
		[]string{"O1", "O9"},
		[]string{"S1", "S2"},
		[][]float64{{1, 2}, {3, 4}},
	)
	if err != nil {
		t.Fatalf("unable to build table: %v", err)
	}
	tr := newTree(t)

	_, err = beta.Phylogenetic(tb, tr, "unweighted_unifrac", nil)
	if !errors.Is(err, unifrac.ErrUnknownFeature) {
		t.Fatalf("got error %v, want %v", err, unifrac.ErrUnknownFeature)
	}
	if errors.Is(err, beta.ErrInvalidInput) {
		t.Errorf("downstream error %v should not be an input validation error", err)
	}

	_, direct := unifrac.Compute(tb, tr, "unweighted_unifrac", nil)
	if err.Error() != direct.Error() {
		t.Errorf("error was modified: got %q, want %q", err, direct)
	}
}

func TestKinds(t *testing.T) {
	plain := beta.Metrics(beta.Plain)
	phy := beta.Metrics(beta.Phylo)
	if len(plain) == 0 || len(phy) == 0 {
		t.Fatalf("metrics: got %d plain and %d phylogenetic", len(plain), len(phy))
	}
	for _, m := range plain {
		if k, ok := beta.Lookup(m); !ok || k != beta.Plain {
			t.Errorf("lookup %q: got %v (%v), want %v", m, k, ok, beta.Plain)
		}
	}
	for _, m := range phy {
		if k, ok := beta.Lookup(m); !ok || k != beta.Phylo {
			t.Errorf("lookup %q: got %v (%v), want %v", m, k, ok, beta.Phylo)
		}
	}
	if _, ok := beta.Lookup("not-a-metric"); ok {
		t.Errorf("lookup %q: should not be found", "not-a-metric")
	}
}

func testRejection(t testing.TB, metric string, err error, kind beta.ErrorKind) {
	t.Helper()

	if err == nil {
		t.Errorf("%q: expecting error", metric)
		return
	}
	if !errors.Is(err, beta.ErrInvalidInput) {
		t.Errorf("%q: got error %v, want %v", metric, err, beta.ErrInvalidInput)
	}
	var e *beta.Error
	if !errors.As(err, &e) {
		t.Errorf("%q: error %v is not a *beta.Error", metric, err)
		return
	}
	if e.Kind != kind {
		t.Errorf("%q: error kind: got %d, want %d", metric, e.Kind, kind)
	}
	if e.Metric != metric {
		t.Errorf("%q: error metric: got %q", metric, e.Metric)
	}
}

func testMatrix(t testing.TB, name string, dm *distmat.Matrix, ids []string, want [][]float64) {
	t.Helper()

	if g := dm.IDs(); !reflect.DeepEqual(g, ids) {
		t.Errorf("%s: ids: got %v, want %v", name, g, ids)
	}
	for i, a := range ids {
		for j, b := range ids {
			d, _ := dm.Dist(a, b)
			if math.Abs(d-want[i][j]) > 1e-6 {
				t.Errorf("%s: distance %s-%s: got %.7f, want %.7f", name, a, b, d, want[i][j])
			}
		}
	}
}

// Forward checks that parameters and results
// pass through the gate without modification.

var forwarded struct {
	calls  int
	params param.Params
	result *distmat.Matrix
}

func init() {
	beta.RegisterPlain("test_forward", func(t *table.Table, metric string, p param.Params) (*distmat.Matrix, error) {
		forwarded.calls++
		forwarded.params = p
		return forwarded.result, nil
	})
}

func TestForward(t *testing.T) {
	tb := newTable(t)
	dm, err := distmat.New([]string{"S1"}, [][]float64{{0}})
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	forwarded.result = dm
	forwarded.calls = 0

	p := param.Params{"custom": "value"}
	got, err := beta.Beta(tb, "test_forward", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dm {
		t.Errorf("result: got %p, want %p", got, dm)
	}
	if !reflect.DeepEqual(forwarded.params, p) {
		t.Errorf("params: got %v, want %v", forwarded.params, p)
	}

	// rejected requests never reach the routine
	if _, err := beta.Phylogenetic(tb, newTree(t), "test_forward", p); err == nil {
		t.Errorf("phylogenetic: expecting error")
	}
	if forwarded.calls != 1 {
		t.Errorf("calls: got %d, want %d", forwarded.calls, 1)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := map[string]func(){
		"duplicate plain": func() {
			beta.RegisterPlain("braycurtis", func(*table.Table, string, param.Params) (*distmat.Matrix, error) { return nil, nil })
		},
		"duplicate across sets": func() {
			beta.RegisterPhylo("braycurtis", func(*table.Table, *phylo.Tree, string, param.Params) (*distmat.Matrix, error) { return nil, nil })
		},
		"empty name": func() {
			beta.RegisterPlain("", func(*table.Table, string, param.Params) (*distmat.Matrix, error) { return nil, nil })
		},
		"nil function": func() {
			beta.RegisterPhylo("test_nil", nil)
		},
	}

	for name, fn := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expecting panic", name)
				}
			}()
			fn()
		}()
	}
	if _, ok := beta.Lookup("test_nil"); ok {
		t.Errorf("nil function: metric should not be registered")
	}
}
