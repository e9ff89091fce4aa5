// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add data files
// to a betadiv project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/phylo"
	"github.com/js-arias/betadiv/project"
	"github.com/js-arias/betadiv/table"
	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `add [--table <file>] [--matrix <file>]
	[--newick <file>] [--trees <file>] [--params <file>]
	<project-file>`,
	Short: "add data files to a betadiv project",
	Long: `
Command add reads one or more data files and add them to a betadiv project.
Each file is read before it is added, so invalid files are rejected.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

The flag --table sets an abundance table with a row for each feature-sample
pair. The flag --matrix sets an abundance table in matrix form. See
"betadiv help table-files" for a description of both formats. If both are
defined, the table file is used.

The flag --newick sets a phylogeny in newick format. Every node, except the
root, must have a branch length.

The flag --trees sets a file with time-calibrated trees, in the PhyGeo
tab-delimited format. Branch lengths are measured in million years.

The flag --params sets a file with parameters for the distance routines.
See "betadiv help params" for a description of the format.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tableFile string
var matrixFile string
var newickFile string
var treesFile string
var paramsFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&tableFile, "table", "", "")
	c.Flags().StringVar(&matrixFile, "matrix", "", "")
	c.Flags().StringVar(&newickFile, "newick", "", "")
	c.Flags().StringVar(&treesFile, "trees", "", "")
	c.Flags().StringVar(&paramsFile, "params", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	if tableFile != "" {
		if _, err := table.Read(tableFile, false); err != nil {
			return err
		}
		p.Add(project.Table, tableFile)
	}
	if matrixFile != "" {
		if _, err := table.Read(matrixFile, true); err != nil {
			return err
		}
		p.Add(project.Matrix, matrixFile)
	}
	if newickFile != "" {
		if _, err := phylo.ReadNewick(newickFile); err != nil {
			return err
		}
		p.Add(project.Newick, newickFile)
	}
	if treesFile != "" {
		if err := checkTrees(treesFile); err != nil {
			return err
		}
		p.Add(project.Trees, treesFile)
	}
	if paramsFile != "" {
		if _, err := param.Read(paramsFile); err != nil {
			return err
		}
		p.Add(project.Params, paramsFile)
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func checkTrees(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	tc, err := timetree.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("while reading file %q: %v", name, err)
	}
	for _, tn := range tc.Names() {
		if _, err := phylo.FromTimeTree(tc.Tree(tn)); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
	}
	return nil
}
