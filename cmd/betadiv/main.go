// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Betadiv is a tool for beta diversity analysis.
package main

import (
	"github.com/js-arias/betadiv/cmd/betadiv/add"
	"github.com/js-arias/betadiv/cmd/betadiv/betacmd"
	"github.com/js-arias/betadiv/cmd/betadiv/heatmap"
	"github.com/js-arias/betadiv/cmd/betadiv/metrics"
	"github.com/js-arias/betadiv/cmd/betadiv/phylocmd"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "betadiv <command> [<argument>...]",
	Short: "a tool for beta diversity analysis",
}

func init() {
	app.Add(add.Command)
	app.Add(betacmd.Command)
	app.Add(heatmap.Command)
	app.Add(metrics.Command)
	app.Add(phylocmd.Command)
}

func main() {
	app.Main()
}
