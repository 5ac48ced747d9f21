// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

// parametricDriver runs the divide-and-conquer parametric cut recursion over a
// Graph, ported from the original solver's parametricCut/computeIntersect/
// differenceSourceSets trio. Each recursive call solves at most one new
// breakpoint candidate and recurses into the lower sub-interval before the
// upper one, so breakpoints surface in ascending order.
type parametricDriver struct {
	g     *Graph
	cfg   engineConfig
	accum *breakpointAccumulator
	stats SolveStats
}

func newParametricDriver(g *Graph, cfg engineConfig) *parametricDriver {
	return &parametricDriver{
		g:     g,
		cfg:   cfg,
		accum: newBreakpointAccumulator(g.numNodes, g.lambdaHi),
	}
}

// solveAt runs a full single-lambda solve over the whole graph (the initial
// subproblem, with only the graph's own source/sink pre-contracted) and
// returns the resulting source-side indicator (indexed by original node id)
// and the engine's own materialized cut value.
func (d *parametricDriver) solveAt(lambda float64, maximal bool) ([]bool, float64, error) {
	sp := buildSubproblem(d.g, initialSideAssignment(d.g), lambda, lambda)
	return d.solveSubproblem(sp, lambda, maximal)
}

// solveSubproblem runs the pseudoflow engine once over sp at lambda and maps
// the resulting per-subproblem-node labels back to a full, original-node-id
// indexed source-side vector. Nodes outside sp (already contracted away) are
// filled in by the caller from the partition that produced sp.
func (d *parametricDriver) solveSubproblem(sp *Subproblem, lambda float64, maximal bool) ([]bool, float64, error) {
	eng := newEngine(d.cfg)

	var err error
	if maximal {
		err = eng.buildReversed(sp, lambda, d.g.roundNegativeCapacity)
	} else {
		err = eng.build(sp, lambda, d.g.roundNegativeCapacity)
	}
	if err != nil {
		return nil, 0, err
	}

	eng.simpleInitialization()
	eng.flowPhaseOne()
	d.mergeStats(eng.stats)

	labels := eng.sourceSideLabels()

	full := make([]bool, d.g.numNodes)
	for spIdx, onSourceSide := range labels {
		origIdx := sp.OrigOf[spIdx]
		if maximal {
			// The reversed graph's engine-source is sp's sink; a node's label
			// there tells us whether it sits on the *original* sink's side of
			// the reversed cut, so the original-source-side indicator is the
			// complement.
			onSourceSide = !onSourceSide
		}
		full[origIdx] = onSourceSide
	}
	// the contracted source/sink nodes are always on their own side.
	full[d.g.source] = true
	full[d.g.sink] = false

	cut := eng.cutValue()
	if sp.NumNodes == 2 {
		cut = sp.SourceSinkConstant
	}

	return full, cut, nil
}

func (d *parametricDriver) mergeStats(s SolveStats) {
	d.stats.Pushes += s.Pushes
	d.stats.Mergers += s.Mergers
	d.stats.Relabels += s.Relabels
	d.stats.Gaps += s.Gaps
	d.stats.ArcScans += s.ArcScans
}

// cutLine returns the (intercept, slope) of the affine function giving the
// total capacity crossing from the source side to the sink side of the fixed
// partition sourceSide, as a function of lambda. Every arc capacity is affine
// in lambda, and summation preserves affinity, so the cut value of any single
// fixed partition is itself affine. When skipSinkAdjacent is set (mirroring
// round_negative_capacity in the original solver) arcs landing directly on the
// sink are omitted from the sum entirely; this is a known, intentionally
// carried-forward asymmetry rather than a bug, see SPEC_FULL.md.
func (d *parametricDriver) cutLine(sourceSide []bool, skipSinkAdjacent bool) (intercept, slope float64) {
	for _, a := range d.g.arcs {
		if !sourceSide[a.From] || sourceSide[a.To] {
			continue
		}
		if skipSinkAdjacent && a.To == d.g.sink {
			continue
		}
		intercept += a.Constant
		slope += a.Multiplier
	}
	return
}

// computeIntersect returns the lambda at which the two affine cut-capacity
// lines cross, i.e. where aLo + bLo*lambda == aHi + bHi*lambda. When the lines
// are (near-)parallel the spec's own design notes direct falling back to
// midpoint bisection of [lo, hi] rather than dividing by a (near-)zero
// denominator, since the vendored original implementation leaves that case as
// undefined behavior.
func computeIntersect(interceptLo, slopeLo, interceptHi, slopeHi, lo, hi float64) float64 {
	denom := slopeLo - slopeHi
	if denom < tolerance && denom > -tolerance {
		return (lo + hi) / 2
	}
	return (interceptHi - interceptLo) / denom
}

// differenceSideAssignment builds the side vector for one of a recursive
// step's two breakpoint-confirmation subproblems (the minimal-source-set probe
// of step 3, or the maximal-source-set probe of step 4): nodes agreeing
// between sideLo and sideHi are fixed to that side, nodes that differ are left
// free so the engine can resolve them at the probed lambda.
func differenceSideAssignment(source, sink int, sideLo, sideHi []bool) []side {
	sideOf := make([]side, len(sideLo))
	for i := range sideOf {
		switch {
		case i == source:
			sideOf[i] = sideSource
		case i == sink:
			sideOf[i] = sideSink
		case sideLo[i] == sideHi[i]:
			if sideLo[i] {
				sideOf[i] = sideSource
			} else {
				sideOf[i] = sideSink
			}
		default:
			sideOf[i] = sideFree
		}
	}
	return sideOf
}

func sameSides(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// recurse implements parametricCut: given the known minimal source set at lo
// and the known maximal source set at hi, find every breakpoint strictly
// inside (lo, hi) and record node entries for the whole sub-range.
func (d *parametricDriver) recurse(lo, hi float64, sideLo, sideHi []bool) error {
	if sameSides(sideLo, sideHi) {
		d.accum.recordEntries(sideLo, lo)
		return nil
	}

	aLo, bLo := d.cutLine(sideLo, d.g.roundNegativeCapacity)
	aHi, bHi := d.cutLine(sideHi, d.g.roundNegativeCapacity)
	lambdaStar := computeIntersect(aLo, bLo, aHi, bHi, lo, hi)

	// A clamped intersection means the two cut-value lines tie exactly at one
	// end of the interval rather than somewhere strictly inside it: the
	// transition from sideLo to sideHi happens right at that boundary, so
	// there is nothing left to bisect. Treat it as the breakpoint directly
	// instead of retrying with a bisected lambda, which would only compute
	// the same tied boundary again and never converge.
	if lambdaStar <= lo {
		d.accum.addBreakpoint(lo)
		d.accum.recordEntries(sideHi, lo)
		return nil
	}
	if lambdaStar >= hi {
		d.accum.addBreakpoint(hi)
		d.accum.recordEntries(sideLo, lo)
		d.accum.recordEntries(sideHi, hi)
		return nil
	}

	// Step 3: minimal source-side partition at lambda*-TOL, known_source =
	// sideLo, known_sink = complement(sideHi). The min-cut at lambda* itself
	// is generally non-unique, so probing just below the intersection (rather
	// than exactly at it) is what pins this down to the *minimal* tied
	// partition instead of an arbitrary one.
	lambdaMin := lambdaStar - tolerance
	if lambdaMin < lo {
		lambdaMin = lo
	}
	minSp := buildSubproblem(d.g, differenceSideAssignment(d.g.source, d.g.sink, sideLo, sideHi), lo, hi)
	sideMin, _, err := d.solveSubproblem(minSp, lambdaMin, false)
	if err != nil {
		return err
	}
	// Nodes contracted away in minSp keep the side sideLo and sideHi agree on.
	for i := range sideMin {
		if sideLo[i] == sideHi[i] {
			sideMin[i] = sideLo[i]
		}
	}

	// Step 4: maximal source-side partition at lambda*+TOL, known_source =
	// sideMin (step 3's result), known_sink still complement(sideHi). Solved
	// on the reversed graph to obtain the lexicographically largest tied
	// source set.
	lambdaMax := lambdaStar + tolerance
	if lambdaMax > hi {
		lambdaMax = hi
	}
	maxSp := buildSubproblem(d.g, differenceSideAssignment(d.g.source, d.g.sink, sideMin, sideHi), lo, hi)
	sideMax, _, err := d.solveSubproblem(maxSp, lambdaMax, true)
	if err != nil {
		return err
	}
	// Nodes contracted away in maxSp keep the side sideMin and sideHi agree on.
	for i := range sideMax {
		if sideMin[i] == sideHi[i] {
			sideMax[i] = sideMin[i]
		}
	}

	// Step 5: lambda* is a true breakpoint only when S_max strictly extends
	// S_min; otherwise the tie at lambda* carries no transition and nothing
	// is appended, but the recursive calls below still run unconditionally
	// (step 6) so any transition elsewhere in (lo, hi) is still found. The
	// breakpoint is appended after the lower sub-interval has been searched
	// and before the upper one, which keeps the accumulated list ascending.
	isBreakpoint := !sameSides(sideMax, sideMin)

	if err := d.recurse(lo, lambdaStar, sideLo, sideMin); err != nil {
		return err
	}
	if isBreakpoint {
		d.accum.addBreakpoint(lambdaStar)
		d.accum.recordEntries(sideMin, lambdaStar)
	}
	return d.recurse(lambdaStar, hi, sideMax, sideHi)
}
