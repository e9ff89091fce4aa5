// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylocmd implements a command to calculate
// a distance matrix with a phylogenetic metric.
package phylocmd

import (
	"fmt"
	"os"

	"github.com/js-arias/betadiv/beta"
	"github.com/js-arias/betadiv/distmat"
	"github.com/js-arias/betadiv/param"
	"github.com/js-arias/betadiv/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `phylo [--metric <name>] [--tree <tree-name>]
	[--param <key>=<value>]... [-o|--output <file>] <project-file>`,
	Short: "calculate a phylogenetic distance matrix",
	Long: `
Command phylo reads the abundance table and the phylogeny of a betadiv
project, and calculates the distance between each pair of samples using a
phylogenetic metric.

The argument of the command is the name of the project file.

By default, the unweighted UniFrac distance is used. Use the flag --metric to
set a different metric. Non-phylogenetic metrics are rejected; use
"betadiv beta" for them. Type "betadiv metrics" to see the list of valid
metrics.

Every feature of the abundance table must be a terminal of the phylogeny.

By default, the newick tree of the project is used. If the project does not
have a newick tree, it must have a time-calibrated tree file with a single
tree. Use the flag --tree to select a tree from the time-calibrated tree
file.

Parameters for the metric are read from the parameter file of the project,
if defined. The flag --param sets a parameter in the form <key>=<value>, and
overrides the value in the parameter file. It can be repeated. For example,
"--param normalized=true" normalizes the weighted UniFrac distance.

By default, the distance matrix is printed in the standard output. Use the
flag --output, or -o, to set an output file; this file will be stored as the
distance matrix of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var metric string
var treeName string
var output string
var params param.Params

func setFlags(c *command.Command) {
	c.Flags().StringVar(&metric, "metric", "unweighted_unifrac", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Var(&params, "param", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Table()
	if err != nil {
		return err
	}
	tree, err := p.Phylogeny(treeName)
	if err != nil {
		return err
	}
	pm, err := p.Params()
	if err != nil {
		return err
	}
	for k, v := range params {
		pm.Add(k, v)
	}

	dm, err := beta.Phylogenetic(t, tree, metric, pm)
	if err != nil {
		return err
	}

	comment := fmt.Sprintf("metric: %s, tree: %s", metric, tree.Name())
	if output == "" {
		return dm.TSV(c.Stdout(), comment)
	}
	if err := writeMatrix(output, dm, comment); err != nil {
		return err
	}
	p.Add(project.Distances, output)
	if err := p.Write(); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d samples: distances written to %q\n", metric, dm.Len(), output)
	return nil
}

func writeMatrix(name string, dm *distmat.Matrix, comment string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := dm.TSV(f, comment); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
