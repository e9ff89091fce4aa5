// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package betacmd implements a command to calculate
// a distance matrix with a non-phylogenetic metric.
package betacmd

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
	Usage: `beta [--metric <name>] [--param <key>=<value>]...
	[-o|--output <file>] <project-file>`,
	Short: "calculate a non-phylogenetic distance matrix",
	Long: `
Command beta reads the abundance table of a betadiv project, and calculates
the distance between each pair of samples using a non-phylogenetic metric.

The argument of the command is the name of the project file.

By default, the Bray-Curtis dissimilarity is used. Use the flag --metric to
set a different metric. Phylogenetic metrics (for example, UniFrac) are
rejected; use "betadiv phylo" for them. Type "betadiv metrics" to see the
list of valid metrics.

Parameters for the metric are read from the parameter file of the project,
if defined. The flag --param sets a parameter in the form <key>=<value>, and
overrides the value in the parameter file. It can be repeated. For example,
"--param p=3" sets the order of the minkowski metric, and "--param workers=4"
uses four goroutines to calculate the distances.

By default, the distance matrix is printed in the standard output. Use the
flag --output, or -o, to set an output file; this file will be stored as the
distance matrix of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var metric string
var output string
var params param.Params

func setFlags(c *command.Command) {
	c.Flags().StringVar(&metric, "metric", "braycurtis", "")
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
	pm, err := p.Params()
	if err != nil {
		return err
	}
	for k, v := range params {
		pm.Add(k, v)
	}

	dm, err := beta.Beta(t, metric, pm)
	if err != nil {
		return err
	}

	if output == "" {
		return dm.TSV(c.Stdout(), "metric: "+metric)
	}
	if err := writeMatrix(output, dm); err != nil {
		return err
	}
	p.Add(project.Distances, output)
	if err := p.Write(); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%s: %d samples: distances written to %q\n", metric, dm.Len(), output)
	return nil
}

func writeMatrix(name string, dm *distmat.Matrix) (err error) {
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

	if err := dm.TSV(f, "metric: "+metric); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
