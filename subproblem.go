// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

// side classifies an original graph node relative to a contraction step: it is
// already known to sit on the source side of every cut in the lambda range under
// consideration, known to sit on the sink side, or still free (undetermined).
type side int8

const (
	sideSource side = iota
	sideSink
	sideFree
)

// pArc is one contracted arc, still carrying its affine-in-lambda capacity
// (Constant + Multiplier*lambda) rather than a single materialized number, since
// a Subproblem is solved once per probed lambda during the parametric recursion.
// From/To are indices into the owning Subproblem's Nodes, where index 0 is always
// the contracted source and index 1 is always the contracted sink.
type pArc struct {
	From, To           int
	Constant           float64
	Multiplier         float64
}

// Subproblem is a contracted instance of the original graph: every node known to
// be source-side or sink-side has been collapsed into node 0 or node 1
// respectively, parallel arcs created by that collapse have been merged by
// summing their affine capacities, and same-side and direct source-to-sink arcs
// have been dropped. This mirrors initializeContractedProblem in the original
// solver almost exactly, adapted from C arrays/globals to Go slices and explicit
// struct fields.
type Subproblem struct {
	NumNodes int
	Arcs     []pArc

	// OrigOf maps a Subproblem node index back to the original graph node id.
	// OrigOf[0] and OrigOf[1] hold the original source/sink ids for diagnostics;
	// indices >= 2 hold the free node this Subproblem index represents.
	OrigOf []int

	LambdaLo, LambdaHi float64

	// SourceSinkConstant accumulates the Constant term (the Multiplier term is
	// not included) of arcs running directly from the source side to the sink
	// side, which are dropped during contraction since they can never appear
	// in a finite min cut's arc list but do contribute to the total cut value
	// in the documented empty-interior special case (see
	// parametricDriver.solveSubproblem).
	SourceSinkConstant float64

	nodes []*node
}

// buildSubproblem contracts g according to sideOf (indexed by original node id)
// into a fresh Subproblem over the lambda range [lambdaLo, lambdaHi]. sideOf must
// assign sideSource to g's source and sideSink to g's sink.
func buildSubproblem(g *Graph, sideOf []side, lambdaLo, lambdaHi float64) *Subproblem {
	freeToNew := make(map[int]int)
	origOf := []int{g.source, g.sink}
	for orig := 0; orig < g.numNodes; orig++ {
		if sideOf[orig] == sideFree {
			freeToNew[orig] = len(origOf)
			origOf = append(origOf, orig)
		}
	}

	newIndex := func(orig int) (idx int, s side) {
		s = sideOf[orig]
		switch s {
		case sideSource:
			return 0, s
		case sideSink:
			return 1, s
		default:
			return freeToNew[orig], s
		}
	}

	// sourceAdjacent[j] / sinkAdjacent[j] accumulate merged affine capacity for
	// the single contracted arc 0->j / j->1, indexed by new node index j.
	sourceAdjacentC := make([]float64, len(origOf))
	sourceAdjacentM := make([]float64, len(origOf))
	sinkAdjacentC := make([]float64, len(origOf))
	sinkAdjacentM := make([]float64, len(origOf))
	sourceAdjacentSeen := make([]bool, len(origOf))
	sinkAdjacentSeen := make([]bool, len(origOf))

	sp := &Subproblem{
		NumNodes: len(origOf),
		OrigOf:   origOf,
		LambdaLo: lambdaLo,
		LambdaHi: lambdaHi,
	}

	for _, a := range g.arcs {
		fi, fs := newIndex(a.From)
		ti, ts := newIndex(a.To)

		switch {
		case fs != sideFree && fs == ts:
			// same-side arc (both source-side or both sink-side): drop.
			continue
		case fs == sideSource && ts == sideSink:
			// direct source-to-sink arc: drop, but keep its constant term for
			// the empty-interior cut value special case.
			sp.SourceSinkConstant += a.Constant
			continue
		case fs == sideSink:
			// arc into the contracted sink's side from a free/source node with
			// from on the sink side makes no sense for a forward min-cut arc
			// (it would run from T back out); drop it, matching the original's
			// "into source / from sink" exclusion.
			continue
		case ts == sideSource:
			continue
		case fs == sideSource:
			sourceAdjacentC[ti] += a.Constant
			sourceAdjacentM[ti] += a.Multiplier
			sourceAdjacentSeen[ti] = true
		case ts == sideSink:
			sinkAdjacentC[fi] += a.Constant
			sinkAdjacentM[fi] += a.Multiplier
			sinkAdjacentSeen[fi] = true
		default:
			sp.Arcs = append(sp.Arcs, pArc{From: fi, To: ti, Constant: a.Constant, Multiplier: a.Multiplier})
		}
	}

	for j := 2; j < len(origOf); j++ {
		if sourceAdjacentSeen[j] {
			sp.Arcs = append(sp.Arcs, pArc{From: 0, To: j, Constant: sourceAdjacentC[j], Multiplier: sourceAdjacentM[j]})
		}
		if sinkAdjacentSeen[j] {
			sp.Arcs = append(sp.Arcs, pArc{From: j, To: 1, Constant: sinkAdjacentC[j], Multiplier: sinkAdjacentM[j]})
		}
	}

	return sp
}

// initialSideAssignment returns the side vector for the very first Subproblem
// built from a whole Graph: only g's own source and sink are known, every other
// node starts free.
func initialSideAssignment(g *Graph) []side {
	sideOf := make([]side, g.numNodes)
	for i := range sideOf {
		sideOf[i] = sideFree
	}
	sideOf[g.source] = sideSource
	sideOf[g.sink] = sideSink
	return sideOf
}
