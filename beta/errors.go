// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package beta

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every error
// returned when a request is rejected
// before calling a distance routine.
var ErrInvalidInput = errors.New("invalid input")

// ErrorKind is the reason of a rejection.
type ErrorKind int

// Rejection reasons.
const (
	// Unknown is used for metric names
	// not found in any set.
	Unknown ErrorKind = iota + 1

	// WrongDispatch is used for a valid metric
	// sent to the wrong function.
	WrongDispatch

	// MissingInput is used when a required input
	// is nil.
	MissingInput
)

// Error is an input validation error.
type Error struct {
	Kind   ErrorKind
	Op     string // "beta" or "phylogenetic"
	Metric string
	Input  string // the missing input, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case Unknown:
		return fmt.Sprintf("%s: unrecognized metric %q", e.Op, e.Metric)
	case WrongDispatch:
		if e.Op == "beta" {
			return fmt.Sprintf("%s: metric %q requires a phylogeny: use Phylogenetic", e.Op, e.Metric)
		}
		return fmt.Sprintf("%s: metric %q does not accept a phylogeny: use Beta", e.Op, e.Metric)
	case MissingInput:
		return fmt.Sprintf("%s: metric %q: missing %s", e.Op, e.Metric, e.Input)
	}
	return fmt.Sprintf("%s: metric %q: %v", e.Op, e.Metric, ErrInvalidInput)
}

// Is reports whether target is ErrInvalidInput.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}
