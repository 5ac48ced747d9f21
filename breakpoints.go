// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

// breakpointAccumulator collects the lambda values at which the optimal source
// set changes, plus the smallest lambda at which each original node first joins
// the source side. The divide-and-conquer driver in parametric.go appends each
// breakpoint after searching the low half of its interval and before the high
// half, so breakpoints arrive in ascending lambda order; this type relies on
// that and never re-sorts. Node entries may arrive in any order and are only
// ever lowered.
type breakpointAccumulator struct {
	breakpoints []float64
	nodeEntry   []float64
}

// newBreakpointAccumulator seeds every node's entry lambda at lambdaHi: a node
// that never joins the source side anywhere in [lambdaLo, lambdaHi] keeps that
// sentinel value, the same upper bound that Breakpoints always carries as its
// own trailing sentinel.
func newBreakpointAccumulator(numNodes int, lambdaHi float64) *breakpointAccumulator {
	b := &breakpointAccumulator{
		nodeEntry: make([]float64, numNodes),
	}
	for i := range b.nodeEntry {
		b.nodeEntry[i] = lambdaHi
	}
	return b
}

// addBreakpoint appends lambda if it is not already the last recorded value.
func (b *breakpointAccumulator) addBreakpoint(lambda float64) {
	if len(b.breakpoints) > 0 && b.breakpoints[len(b.breakpoints)-1] == lambda {
		return
	}
	b.breakpoints = append(b.breakpoints, lambda)
}

// recordEntries sets nodeEntry[node] = lambda for every node flagged in
// sourceSide that has not already been recorded at an earlier (smaller)
// lambda.
func (b *breakpointAccumulator) recordEntries(sourceSide []bool, lambda float64) {
	for node, onSourceSide := range sourceSide {
		if onSourceSide && lambda < b.nodeEntry[node] {
			b.nodeEntry[node] = lambda
		}
	}
}

// finish appends lambdaHi as the trailing sentinel breakpoint, per the
// convention that the upper bound of the scanned range is always the last
// entry in Result.Breakpoints.
func (b *breakpointAccumulator) finish(lambdaHi float64) []float64 {
	b.addBreakpoint(lambdaHi)
	return b.breakpoints
}
