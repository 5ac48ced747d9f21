// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

// node is one vertex of a subproblem's normalized tree pseudoflow forest. The
// field set mirrors the teacher's node struct closely: parent/child pointers and
// the arc-to-parent form the forest, label/excess drive the push-relabel steps,
// and outOfTree/numberOutOfTree support the swap-remove bookkeeping the engine
// uses to avoid re-scanning settled arcs.
type node struct {
	number int

	excess float64
	label  int

	parent      *node
	childList   *node
	nextScan    *node
	next        *node

	arcToParent *arc

	outOfTree       []*arc
	numberOutOfTree int
	nextArc         int

	numAdjacent int
}

// addOutOfTree appends a to n's out-of-tree arc list. Mirrors the teacher's
// two-pass populate: callers first size numAdjacent across all nodes so this
// slice is allocated once, then attach arcs in a second pass.
func (n *node) addOutOfTree(a *arc) {
	n.outOfTree[n.numberOutOfTree] = a
	n.numberOutOfTree++
}
