// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(distanceFilesGuide)
	app.Add(paramFilesGuide)
	app.Add(projectsGuide)
	app.Add(tableFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Betadiv reads abundance tables, phylogenies, and parameter files, and writes
distance matrices. To reduce the burden of keeping track of many files, a
single project file is used to hold the reference of all files used in the
analysis. This guide explains the structure of the file, but most of the
time, the best and most secure way to edit or view this file is by using
betadiv commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# betadiv project files
	dataset	path
	table	samples.tab
	newick	tree.nwk
	params	params.tab
	distances	distances.tab

The valid file types are:

- Abundance tables. Defined by the dataset keyword "table". This file
  contains the count of each feature in each sample in the form of a
  tab-delimited file in long format. The recommended way to add an abundance
  table is by using the command 'betadiv add --table'.
- Abundance matrices. Defined by the dataset keyword "matrix". This file
  contains an abundance table in wide format: one row per feature and one
  column per sample. It is only used if there is no "table" dataset. The
  recommended way to add an abundance matrix is by using the command
  'betadiv add --matrix'.
- Phylogenies. Defined by the dataset keyword "newick". This file contains a
  single rooted tree with branch lengths, in newick format. The recommended
  way to add a phylogeny is by using the command 'betadiv add --newick'.
- Time-calibrated trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file, as used by
  the timetree package. Branch lengths are measured in million years. The
  recommended way to add a tree file is by using the command
  'betadiv add --trees'.
- Metric parameters. Defined by the dataset keyword "params". This file
  contains the keyword parameters passed to the distance metrics. The
  recommended way to add a parameter file is by using the command
  'betadiv add --params'.
- Distance matrices. Defined by the dataset keyword "distances". This file
  contains the last distance matrix written by the commands 'betadiv beta'
  or 'betadiv phylo' when they use the flag --output.
	`,
}

var tableFilesGuide = &command.Command{
	Usage: "table-files",
	Short: "about abundance table files",
	Long: `
An abundance table stores the number of times each feature (for example, a
species or an OTU) is found in each sample.

The default abundance table is a tab-delimited file in long format, with the
following fields:

	- feature  the ID of the feature
	- sample   the ID of the sample
	- count    the abundance of the feature in the sample

Here is an example file:

	# abundance table
	feature	sample	count
	O1	S1	0
	O1	S2	1
	O1	S3	3
	O2	S1	1
	O2	S2	2
	O2	S3	0

Any pair of feature and sample not present in the file is taken as zero.
Features and samples are kept in the order in which they are first found in
the file. Counts must be non-negative numbers.

An abundance table can also be given in wide format, as a matrix. In this
format, the header contains the sample IDs (the first cell is ignored), and
each row starts with the ID of a feature, followed by the counts of the
feature in each sample. Here is the same table in wide format:

	# abundance matrix
	feature	S1	S2	S3
	O1	0	1	3
	O2	1	2	0

Lines starting with '#' are taken as comments and ignored.
	`,
}

var distanceFilesGuide = &command.Command{
	Usage: "distance-files",
	Short: "about distance matrix files",
	Long: `
A distance matrix stores the pairwise distances between samples. The matrix
is square, symmetric, and with zeros in the diagonal.

A distance matrix file is a tab-delimited file. The header contains the
sample IDs (the first cell is empty), and each row starts with the ID of a
sample, followed by the distance of that sample to each sample in the header.
Rows must be in the same order as the header.

Here is an example file:

	# distance matrix
	# metric: braycurtis
		S1	S2	S3
	S1	0	0.6	1
	S2	0.6	0	0.5
	S3	1	0.5	0

Lines starting with '#' are taken as comments and ignored.
	`,
}

var paramFilesGuide = &command.Command{
	Usage: "param-files",
	Short: "about metric parameter files",
	Long: `
Some distance metrics accept keyword parameters. For example, the metric
'minkowski' uses the parameter 'p' for the order of the norm, and the metric
'weighted_unifrac' uses the parameter 'normalized' to normalize the distance.
The parameter 'workers' sets the number of parallel processes used to fill
the distance matrix.

Parameters can be given with the flag --param of the commands 'betadiv beta'
and 'betadiv phylo', or stored in a parameter file added to a project. A
parameter file is a tab-delimited file with the following fields:

	- parameter  the name of the parameter
	- value      the value of the parameter

Here is an example file:

	# betadiv metric parameters
	parameter	value
	p	3
	workers	4

A parameter given in the command line replaces the value of the same
parameter in the parameter file. Parameters not used by a metric are
ignored.
	`,
}
