// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package distmat

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadTSV reads a distance matrix
// from a TSV file.
//
// The header contains the IDs
// (the first cell is ignored),
// and each row starts with an ID
// followed by the distances to each ID
// in the header order.
// Rows must be in the same order as the header.
//
// Here is an example file:
//
//	# distance matrix
//	# metric: braycurtis
//		S1	S2	S3
//	S1	0	0.3333333333333333	0.6666666666666666
//	S2	0.3333333333333333	0	0.42857142857142855
//	S3	0.6666666666666666	0.42857142857142855	0
func ReadTSV(r io.Reader) (*Matrix, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	if len(head) < 2 {
		return nil, fmt.Errorf("header: expecting at least one ID")
	}
	ids := head[1:]

	values := make([][]float64, 0, len(ids))
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		i := len(values)
		if i >= len(ids) {
			return nil, fmt.Errorf("on row %d: too many rows", ln)
		}
		if row[0] != ids[i] {
			return nil, fmt.Errorf("on row %d: got ID %q, want %q", ln, row[0], ids[i])
		}

		vals := make([]float64, len(ids))
		for j, id := range ids {
			d, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: ID %q: %q: %v", ln, id, row[j+1], err)
			}
			vals[j] = d
		}
		values = append(values, vals)
	}
	return New(ids, values)
}

// Read reads a distance matrix file.
func Read(name string) (*Matrix, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dm, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return dm, nil
}

// TSV writes a distance matrix as a TSV file.
// If comment is not empty,
// it is written as a comment line before the data.
func (dm *Matrix) TSV(w io.Writer, comment string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# distance matrix\n")
	if comment != "" {
		fmt.Fprintf(bw, "# %s\n", comment)
	}
	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := make([]string, 0, len(dm.ids)+1)
	header = append(header, "")
	header = append(header, dm.ids...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, id := range dm.ids {
		row := make([]string, 0, len(dm.ids)+1)
		row = append(row, id)
		for j := range dm.ids {
			row = append(row, strconv.FormatFloat(dm.m.At(i, j), 'f', -1, 64))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
