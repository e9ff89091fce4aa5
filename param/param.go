// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements keyword parameters
// that are passed without modification
// to the distance routines.
//
// Parameters are stored as strings,
// each routine parses the keys it understands
// and ignores the rest.
package param

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Params is a collection of keyword parameters.
type Params map[string]string

func canon(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Add adds a parameter value.
// If value is empty,
// the parameter is removed.
func (p Params) Add(key, value string) {
	key = canon(key)
	if key == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(p, key)
		return
	}
	p[key] = value
}

// Keys returns the parameter names,
// sorted alphabetically.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Value returns the raw value of a parameter.
func (p Params) Value(key string) (string, bool) {
	v, ok := p[canon(key)]
	return v, ok
}

// Float returns the value of a parameter
// as a floating point number.
// If the parameter is not defined,
// it returns def.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p.Value(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %q: %v", canon(key), v, err)
	}
	return f, nil
}

// Int returns the value of a parameter
// as an integer.
// If the parameter is not defined,
// it returns def.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p.Value(key)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %q: %v", canon(key), v, err)
	}
	return i, nil
}

// Bool returns the value of a parameter
// as a boolean.
// If the parameter is not defined,
// it returns def.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p.Value(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parameter %q: %q: %v", canon(key), v, err)
	}
	return b, nil
}

// Set implements the flag.Value interface.
// The value must be in the form "key=value".
func (p *Params) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || canon(key) == "" {
		return fmt.Errorf("invalid parameter %q: expecting <key>=<value>", s)
	}
	if *p == nil {
		*p = make(Params)
	}
	p.Add(key, value)
	return nil
}

// String implements the flag.Value interface.
func (p *Params) String() string {
	if p == nil || *p == nil {
		return ""
	}
	var b strings.Builder
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%s", k, (*p)[k])
	}
	return b.String()
}

var header = []string{
	"parameter",
	"value",
}

// ReadTSV reads a set of parameters from a TSV file.
//
// The TSV must contain the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# betadiv metric parameters
//	parameter	value
//	p	3
//	normalized	true
//	workers	4
func ReadTSV(r io.Reader) (Params, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := make(Params)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "parameter"
		key := canon(row[fields[f]])
		if key == "" {
			continue
		}
		if _, dup := p[key]; dup {
			return nil, fmt.Errorf("on row %d: field %q: repeated parameter %q", ln, f, key)
		}

		f = "value"
		p.Add(key, row[fields[f]])
	}
	return p, nil
}

// Read reads a parameter file.
func Read(name string) (Params, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

// TSV writes the parameters as a TSV file.
func (p Params) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# betadiv metric parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, k := range p.Keys() {
		row := []string{
			k,
			p[k],
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
