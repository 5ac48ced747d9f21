// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

import "sort"

// ArcSpec describes one directed arc of the input graph whose capacity varies
// affinely with lambda: capacity(lambda) = Constant + Multiplier*lambda. A
// non-parametric arc simply has Multiplier == 0.
type ArcSpec struct {
	From, To           int
	Constant           float64
	Multiplier         float64
}

// GraphSpec is the caller-facing description of a parametric min-cut instance,
// analogous to the node/arc counts and arc list the teacher reads out of a
// DIMACS file in readDimacsFile, generalized to in-memory construction and to
// affine-in-lambda capacities.
type GraphSpec struct {
	NumNodes int
	Source   int
	Sink     int
	Arcs     []ArcSpec

	LambdaLo float64
	LambdaHi float64

	// RoundNegativeCapacity, when true, clamps a materialized arc capacity that
	// comes out negative at some lambda to zero instead of raising
	// CodeNegativeCapacity.
	RoundNegativeCapacity bool
}

// Graph is the validated, immutable representation of a GraphSpec. Arcs are kept
// stably sorted by From and then by To>>10, the bucket-on-To heuristic of the
// teacher's cmpArc, so arcs sharing a From are contiguous. The contraction step
// in subproblem.go does not depend on this order: it merges parallel arcs
// through per-node accumulators.
type Graph struct {
	numNodes int
	source   int
	sink     int
	arcs     []ArcSpec
	lambdaLo float64
	lambdaHi float64
	roundNegativeCapacity bool
}

// NewGraph validates spec and returns an immutable Graph ready to be solved.
func NewGraph(spec GraphSpec) (*Graph, error) {
	if spec.NumNodes <= 0 {
		return nil, newError(CodeInvalidGraph, "graph must have at least one node")
	}
	if spec.Source < 0 || spec.Source >= spec.NumNodes {
		return nil, newError(CodeInvalidSource, "source out of range")
	}
	if spec.Sink < 0 || spec.Sink >= spec.NumNodes {
		return nil, newError(CodeInvalidSink, "sink out of range")
	}
	if spec.Source == spec.Sink {
		return nil, newError(CodeSourceEqualsSink, "source and sink must differ")
	}
	if spec.LambdaLo > spec.LambdaHi {
		return nil, newError(CodeInvalidLambdaRange, "lambdaLo must not exceed lambdaHi")
	}
	for _, a := range spec.Arcs {
		if a.From < 0 || a.From >= spec.NumNodes || a.To < 0 || a.To >= spec.NumNodes {
			return nil, newError(CodeInvalidGraph, "arc endpoint out of range")
		}
	}

	arcs := make([]ArcSpec, len(spec.Arcs))
	copy(arcs, spec.Arcs)
	sort.SliceStable(arcs, func(i, j int) bool {
		bi, bj := arcs[i].To>>10, arcs[j].To>>10
		if arcs[i].From != arcs[j].From {
			return arcs[i].From < arcs[j].From
		}
		return bi < bj
	})

	return &Graph{
		numNodes:              spec.NumNodes,
		source:                spec.Source,
		sink:                  spec.Sink,
		arcs:                  arcs,
		lambdaLo:              spec.LambdaLo,
		lambdaHi:              spec.LambdaHi,
		roundNegativeCapacity: spec.RoundNegativeCapacity,
	}, nil
}

// NumNodes returns the number of nodes in the graph, for diagnostics/logging.
func (g *Graph) NumNodes() int { return g.numNodes }

// materializeCapacity evaluates constant + multiplier*lambda, applying the
// round-negative-capacity policy when the result would otherwise be negative.
// Shared by engine.go's build/buildReversed so the materialization rule lives
// in exactly one place.
func materializeCapacity(constant, multiplier, lambda float64, round bool) (float64, error) {
	c := constant + multiplier*lambda
	if c < 0 {
		if round {
			return 0, nil
		}
		return 0, negativeCapacityError(lambda)
	}
	return c, nil
}
