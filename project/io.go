// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/betadiv/table"
	"github.com/js-arias/timetree"
)

// Table reads the abundance table
// as defined in a project.
// If both a table
// and a matrix are defined,
// the table is used.
func (p *Project) Table() (*table.Table, error) {
	if name := p.Path(Table); name != "" {
		return table.Read(name, false)
	}
	if name := p.Path(Matrix); name != "" {
		return table.Read(name, true)
	}
	return nil, fmt.Errorf("abundance table not defined in project %q", p.name)
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*timetree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

// Phylogeny reads the phylogeny
// as defined in a project.
//
// If treeName is empty,
// the newick tree of the project is used;
// if no newick tree is defined,
// the tree collection must have a single tree.
// If treeName is defined,
// the tree with that name
// in the tree collection is used.
func (p *Project) Phylogeny(treeName string) (*phylo.Tree, error) {
	if treeName == "" {
		if name := p.Path(Newick); name != "" {
			return phylo.ReadNewick(name)
		}
	}

	if p.Path(Trees) == "" {
		return nil, fmt.Errorf("phylogeny not defined in project %q", p.name)
	}
	tc, err := p.Trees()
	if err != nil {
		return nil, err
	}
	if treeName == "" {
		ls := tc.Names()
		if len(ls) != 1 {
			return nil, fmt.Errorf("on project %q: %d trees defined: a tree name is required", p.name, len(ls))
		}
		treeName = ls[0]
	}

	t := tc.Tree(treeName)
	if t == nil {
		return nil, fmt.Errorf("on project %q: tree %q not found", p.name, treeName)
	}
	return phylo.FromTimeTree(t)
}

// Params reads the distance routine parameters
// as defined in a project.
// If no parameter file is defined,
// it returns an empty set of parameters.
func (p *Project) Params() (param.Params, error) {
	name := p.Path(Params)
	if name == "" {
		return make(param.Params), nil
	}
	return param.Read(name)
}

// Distances reads the distance matrix
// as defined in a project.
func (p *Project) Distances() (*distmat.Matrix, error) {
	name := p.Path(Distances)
	if name == "" {
		return nil, fmt.Errorf("distances not defined in project %q", p.name)
	}
	return distmat.Read(name)
}
