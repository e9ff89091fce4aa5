// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadTSV reads an abundance table
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - feature, the ID of the feature
//   - sample, the ID of the sample
//   - count, the abundance of the feature in the sample
//
// Features and samples are kept in the order
// in which they are first found.
// Feature-sample pairs not found in the file
// have a count of 0.
//
// Here is an example file:
//
//	# abundance table
//	feature	sample	count
//	O1	S1	0
//	O1	S2	1
//	O1	S3	3
//	O2	S1	1
//	O2	S2	1
//	O2	S3	2
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"feature", "sample", "count"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var features, samples []string
	fIdx := make(map[string]int)
	sIdx := make(map[string]int)
	counts := make(map[[2]int]float64)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "feature"
		ft := strings.TrimSpace(row[fields[f]])
		if ft == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty ID", ln, f)
		}
		i, ok := fIdx[ft]
		if !ok {
			i = len(features)
			fIdx[ft] = i
			features = append(features, ft)
		}

		f = "sample"
		sm := strings.TrimSpace(row[fields[f]])
		if sm == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty ID", ln, f)
		}
		j, ok := sIdx[sm]
		if !ok {
			j = len(samples)
			sIdx[sm] = j
			samples = append(samples, sm)
		}

		f = "count"
		c, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %q: %v", ln, f, row[fields[f]], err)
		}
		if c < 0 {
			return nil, fmt.Errorf("on row %d: field %q: negative count %v", ln, f, c)
		}

		k := [2]int{i, j}
		if _, dup := counts[k]; dup {
			return nil, fmt.Errorf("on row %d: repeated count for feature %q in sample %q", ln, ft, sm)
		}
		counts[k] = c
	}

	m := make([][]float64, len(features))
	for i := range m {
		m[i] = make([]float64, len(samples))
	}
	for k, c := range counts {
		m[k[0]][k[1]] = c
	}
	return New(features, samples, m)
}

// ReadMatrixTSV reads an abundance table
// from a TSV file in matrix form.
//
// The header contains the sample IDs,
// the first header cell is ignored.
// Each row starts with a feature ID,
// followed by the count of the feature
// in each sample.
//
// Here is an example file:
//
//	feature	S1	S2	S3
//	O1	0	1	3
//	O2	1	1	2
func ReadMatrixTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	if len(head) < 2 {
		return nil, fmt.Errorf("header: expecting at least one sample")
	}
	samples := head[1:]

	var features []string
	var counts [][]float64
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		features = append(features, row[0])
		vals := make([]float64, len(samples))
		for j, s := range samples {
			c, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: sample %q: %q: %v", ln, s, row[j+1], err)
			}
			vals[j] = c
		}
		counts = append(counts, vals)
	}
	return New(features, samples, counts)
}

// Read reads an abundance table file.
// If matrix is true,
// the file is read as a matrix TSV.
func Read(name string, matrix bool) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t *Table
	if matrix {
		t, err = ReadMatrixTSV(f)
	} else {
		t, err = ReadTSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// TSV writes a table as a TSV file.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"feature", "sample", "count"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, f := range t.features {
		for j, s := range t.samples {
			row := []string{
				f,
				s,
				strconv.FormatFloat(t.m.At(i, j), 'f', -1, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
