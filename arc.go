// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

// arcDirection records, for an arc currently linking a child to its parent in
// the forest, which end still has residual capacity to push through: direction
// 1 means the residual is capacity-flow (push toward the parent), direction 0
// means it is flow itself (push back down toward the child). Matches the
// teacher's plain 0/1 direction field.
type arcDirection int

const (
	directionDown arcDirection = 0
	directionUp   arcDirection = 1
)

// arc is one directed edge of a subproblem's contracted graph. capacity and flow
// are float64 rather than the teacher's int, since materialized arc capacities are
// a + b*lambda for real-valued lambda.
type arc struct {
	from      *node
	to        *node
	flow      float64
	capacity  float64
	direction arcDirection
}

func isExcess(v float64) bool {
	return v > tolerance
}

func isDeficit(v float64) bool {
	return v < -tolerance
}

// tolerance is the numerical slack used throughout the engine when comparing
// excess/flow/capacity quantities to zero, and when probing lambda values just
// below or above a computed breakpoint intersection.
const tolerance = 1e-7
