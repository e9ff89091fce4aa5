// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package metrics implements a command to print
// the list of valid distance metrics.
package metrics

import (
	"fmt"

	"github.com/js-arias/betadiv/beta"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "metrics [--plain] [--phylo]",
	Short: "print a list of distance metrics",
	Long: `
Command metrics prints the names of the valid distance metrics in the
standard output. Each line contains the name of the metric and its kind:
"plain" for metrics that only use the abundance table (command
"betadiv beta"), or "phylogenetic" for metrics that also require a phylogeny
(command "betadiv phylo").

By default all metrics are printed. Use the flag --plain to print only the
non-phylogenetic metrics, or the flag --phylo to print only the phylogenetic
metrics.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var plainFlag bool
var phyloFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&plainFlag, "plain", false, "")
	c.Flags().BoolVar(&phyloFlag, "phylo", false, "")
}

func run(c *command.Command, args []string) error {
	kinds := []beta.Kind{beta.Plain, beta.Phylo}
	switch {
	case plainFlag && !phyloFlag:
		kinds = []beta.Kind{beta.Plain}
	case phyloFlag && !plainFlag:
		kinds = []beta.Kind{beta.Phylo}
	}

	for _, k := range kinds {
		for _, m := range beta.Metrics(k) {
			fmt.Fprintf(c.Stdout(), "%s\t%s\n", m, k)
		}
	}
	return nil
}
