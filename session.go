// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

import (
	"encoding/json"
	"time"
)

// Context selects the same two pseudoflow runtime strategies the teacher's
// Context exposes: which end of the label spectrum strong roots are drawn
// from, and whether strong buckets behave as FIFO or LIFO queues. The zero
// value matches the teacher's own default: highest-label, LIFO buckets.
type Context struct {
	LowestLabel bool
	FifoBuckets bool
}

// timer records wall-clock boundaries between the processing phases of Solve,
// mirroring the teacher's timer/TimerJSON.
type timer struct {
	start, built, solved time.Time
}

// Session is the runtime container for one or more Solve calls, analogous to
// the teacher's Session: it owns the engine configuration and accumulates
// stats/timings from the most recent call.
type Session struct {
	ctx   Context
	stats SolveStats
	times timer
}

// NewSession returns a Session configured per ctx.
func NewSession(ctx Context) *Session {
	return &Session{ctx: ctx}
}

// Result is the outcome of a parametric min-cut solve.
type Result struct {
	// Breakpoints holds every discovered lambda at which the optimal source
	// set changes, in ascending order, with LambdaHi always appended last as
	// a sentinel.
	Breakpoints []float64
	// NodeEntry holds, per original node id, the smallest lambda at which
	// that node first belongs to the source side of the optimal cut. A node
	// that never joins the source side anywhere in [LambdaLo, LambdaHi] (the
	// sink itself, or any node permanently on its side) carries LambdaHi.
	NodeEntry []float64
}

// StatsJSON returns the most recent Solve's processing counters as JSON.
func (s *Session) StatsJSON() string {
	j, _ := json.Marshal(s.stats)
	return string(j)
}

// TimerJSON returns the most recent Solve's phase timings as JSON.
func (s *Session) TimerJSON() string {
	data := struct {
		BuildInitial string `json:"buildInitial"`
		Solve        string `json:"solve"`
		Total        string `json:"total"`
	}{
		s.times.built.Sub(s.times.start).String(),
		s.times.solved.Sub(s.times.built).String(),
		s.times.solved.Sub(s.times.start).String(),
	}
	j, _ := json.Marshal(data)
	return string(j)
}

// Stats returns the most recent Solve's processing counters.
func (s *Session) Stats() SolveStats { return s.stats }

// Solve computes every breakpoint of the parametric minimum s-t cut over g in
// [g.LambdaLo, g.LambdaHi], plus the smallest lambda at which each node enters
// the source side of the optimal cut.
func (s *Session) Solve(g *Graph) (Result, error) {
	s.stats = SolveStats{}
	s.times = timer{start: time.Now()}

	cfg := engineConfig{lowestLabel: s.ctx.LowestLabel, fifoBuckets: s.ctx.FifoBuckets}
	driver := newParametricDriver(g, cfg)
	s.times.built = time.Now()

	if g.lambdaLo == g.lambdaHi {
		sideLo, _, err := driver.solveAt(g.lambdaLo, false)
		if err != nil {
			return Result{}, err
		}
		driver.accum.recordEntries(sideLo, g.lambdaLo)
		s.times.solved = time.Now()
		s.stats = driver.stats
		return Result{
			Breakpoints: driver.accum.finish(g.lambdaHi),
			NodeEntry:   driver.accum.nodeEntry,
		}, nil
	}

	sideLo, _, err := driver.solveAt(g.lambdaLo, false)
	if err != nil {
		return Result{}, err
	}
	sideHi, _, err := driver.solveAt(g.lambdaHi, true)
	if err != nil {
		return Result{}, err
	}

	if err := driver.recurse(g.lambdaLo, g.lambdaHi, sideLo, sideHi); err != nil {
		return Result{}, err
	}

	s.times.solved = time.Now()
	s.stats = driver.stats

	return Result{
		Breakpoints: driver.accum.finish(g.lambdaHi),
		NodeEntry:   driver.accum.nodeEntry,
	}, nil
}
