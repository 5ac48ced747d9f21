// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramcut

// SolveStats mirrors the teacher's statistics struct: per-solve counters that a
// caller can aggregate or export (e.g. to internal/metrics) without the core
// engine itself depending on any metrics library.
type SolveStats struct {
	Pushes   uint64
	Mergers  uint64
	Relabels uint64
	Gaps     uint64
	ArcScans uint64
}

// engineConfig selects the same two runtime switches the teacher's Context
// exposes: which end of the label spectrum strong roots are drawn from, and
// whether strong buckets are FIFO or LIFO. lowestLabel defaults to false
// (highest-label, LIFO), matching the teacher's own default Context{}.
type engineConfig struct {
	lowestLabel bool
	fifoBuckets bool
}

// engine runs one single-lambda normalized tree pseudoflow solve over a
// Subproblem, exactly the algorithm of the teacher's Session but generalized
// from int to float64 arithmetic and from a DIMACS-loaded global adjacency list
// to a Subproblem's node/arc slices built fresh for each call.
type engine struct {
	cfg engineConfig

	lowestStrongLabel  int
	highestStrongLabel int

	nodes       []*node
	strongRoots []strongBucket
	arcs        []*arc
	labelCount  []int
	numNodes    int
	source      int // always 0
	sink        int // always 1

	stats SolveStats
}

type strongBucket struct {
	start *node
}

func newEngine(cfg engineConfig) *engine {
	e := &engine{cfg: cfg}
	if cfg.lowestLabel {
		e.lowestStrongLabel = 1
	} else {
		e.highestStrongLabel = 1
	}
	return e
}

// build materializes sp's arcs at lambda into the engine's node/arc forest.
// roundNegativeCapacity mirrors GraphSpec.RoundNegativeCapacity: when true a
// negative materialized capacity clamps to zero instead of erroring.
func (e *engine) build(sp *Subproblem, lambda float64, roundNegativeCapacity bool) error {
	e.numNodes = sp.NumNodes
	e.source = 0
	e.sink = 1

	e.nodes = make([]*node, e.numNodes)
	e.strongRoots = make([]strongBucket, e.numNodes)
	e.labelCount = make([]int, e.numNodes)
	e.arcs = make([]*arc, len(sp.Arcs))

	for i := 0; i < e.numNodes; i++ {
		e.nodes[i] = &node{number: i}
	}

	for i, pa := range sp.Arcs {
		capVal, err := materializeCapacity(pa.Constant, pa.Multiplier, lambda, roundNegativeCapacity)
		if err != nil {
			return err
		}
		a := &arc{from: e.nodes[pa.From], to: e.nodes[pa.To], capacity: capVal, direction: directionUp}
		e.arcs[i] = a
		e.nodes[pa.From].numAdjacent++
		e.nodes[pa.To].numAdjacent++
	}

	for _, n := range e.nodes {
		n.outOfTree = make([]*arc, n.numAdjacent)
	}

	for _, a := range e.arcs {
		from, to := a.from.number, a.to.number
		if to == e.sink && from != e.source {
			e.nodes[to].addOutOfTree(a)
		} else {
			e.nodes[from].addOutOfTree(a)
		}
	}

	return nil
}

// buildReversed is build with every one of sp's arcs reversed end for end and
// the engine's own source/sink swapped relative to sp's. This is the
// "reversed graph" trick used to compute the maximal (rather than minimal)
// source set among multiple optimal cuts: see parametricDriver.solveSubproblem's
// maximal branch.
func (e *engine) buildReversed(sp *Subproblem, lambda float64, roundNegativeCapacity bool) error {
	e.numNodes = sp.NumNodes
	e.source = 1
	e.sink = 0

	e.nodes = make([]*node, e.numNodes)
	e.strongRoots = make([]strongBucket, e.numNodes)
	e.labelCount = make([]int, e.numNodes)
	e.arcs = make([]*arc, len(sp.Arcs))

	for i := 0; i < e.numNodes; i++ {
		e.nodes[i] = &node{number: i}
	}

	for i, pa := range sp.Arcs {
		capVal, err := materializeCapacity(pa.Constant, pa.Multiplier, lambda, roundNegativeCapacity)
		if err != nil {
			return err
		}
		a := &arc{from: e.nodes[pa.To], to: e.nodes[pa.From], capacity: capVal, direction: directionUp}
		e.arcs[i] = a
		e.nodes[pa.To].numAdjacent++
		e.nodes[pa.From].numAdjacent++
	}

	for _, n := range e.nodes {
		n.outOfTree = make([]*arc, n.numAdjacent)
	}

	for _, a := range e.arcs {
		from, to := a.from.number, a.to.number
		if to == e.sink && from != e.source {
			e.nodes[to].addOutOfTree(a)
		} else {
			e.nodes[from].addOutOfTree(a)
		}
	}

	return nil
}

func (e *engine) pushUpward(a *arc, child, parent *node, resCap float64) {
	e.stats.Pushes++
	if resCap >= child.excess {
		parent.excess += child.excess
		a.flow += child.excess
		child.excess = 0
		return
	}

	a.direction = directionDown
	parent.excess += resCap
	child.excess -= resCap
	a.flow = a.capacity
	parent.addOutOfTree(a)
	breakRelationship(parent, child)
	if e.cfg.lowestLabel {
		e.lowestStrongLabel = child.label
	}
	e.addToStrongBucket(child, &e.strongRoots[child.label])
}

func (e *engine) pushDownward(a *arc, child, parent *node, flow float64) {
	e.stats.Pushes++
	if flow >= child.excess {
		parent.excess += child.excess
		a.flow -= child.excess
		child.excess = 0
		return
	}

	a.direction = directionUp
	child.excess -= flow
	parent.excess += flow
	a.flow = 0
	parent.addOutOfTree(a)
	breakRelationship(parent, child)
	if e.cfg.lowestLabel {
		e.lowestStrongLabel = child.label
	}
	e.addToStrongBucket(child, &e.strongRoots[child.label])
}

func (e *engine) getLowestStrongRoot() *node {
	if e.lowestStrongLabel == 0 {
		for e.strongRoots[0].start != nil {
			strongRoot := e.strongRoots[0].start
			e.strongRoots[0].start = strongRoot.next
			strongRoot.next = nil
			strongRoot.label = 1

			e.labelCount[0]--
			e.labelCount[1]++
			e.stats.Relabels++

			e.addToStrongBucket(strongRoot, &e.strongRoots[strongRoot.label])
		}
		e.lowestStrongLabel = 1
	}

	for i := e.lowestStrongLabel; i < e.numNodes; i++ {
		if e.strongRoots[i].start != nil {
			e.lowestStrongLabel = i

			if e.labelCount[i-1] == 0 {
				e.stats.Gaps++
				return nil
			}

			strongRoot := e.strongRoots[i].start
			e.strongRoots[i].start = strongRoot.next
			strongRoot.next = nil
			return strongRoot
		}
	}

	e.lowestStrongLabel = e.numNodes
	return nil
}

func (e *engine) getHighestStrongRoot() *node {
	var strongRoot *node

	for i := e.highestStrongLabel; i > 0; i-- {
		if e.strongRoots[i].start != nil {
			e.highestStrongLabel = i
			if e.labelCount[i-1] > 0 {
				strongRoot = e.strongRoots[i].start
				e.strongRoots[i].start = strongRoot.next
				strongRoot.next = nil
				return strongRoot
			}

			for e.strongRoots[i].start != nil {
				e.stats.Gaps++
				strongRoot = e.strongRoots[i].start
				e.strongRoots[i].start = strongRoot.next
				e.liftAll(strongRoot)
			}
		}
	}

	if e.strongRoots[0].start == nil {
		return nil
	}

	for e.strongRoots[0].start != nil {
		strongRoot = e.strongRoots[0].start
		e.strongRoots[0].start = strongRoot.next
		strongRoot.label = 1

		e.labelCount[0]--
		e.labelCount[1]++
		e.stats.Relabels++

		e.addToStrongBucket(strongRoot, &e.strongRoots[strongRoot.label])
	}

	e.highestStrongLabel = 1

	strongRoot = e.strongRoots[1].start
	e.strongRoots[1].start = strongRoot.next
	strongRoot.next = nil

	return strongRoot
}

func (e *engine) processRoot(n *node) {
	var temp, weakNode *node
	var out *arc
	strongNode := n
	n.nextScan = n.childList

	if out, weakNode = e.findWeakNode(n); out != nil {
		e.merge(weakNode, strongNode, out)
		e.pushExcess(n)
		return
	}

	e.checkChildren(n)

	for strongNode != nil {
		for strongNode.nextScan != nil {
			temp = strongNode.nextScan
			strongNode.nextScan = strongNode.nextScan.next
			strongNode = temp
			strongNode.nextScan = strongNode.childList

			if out, weakNode = e.findWeakNode(strongNode); out != nil {
				e.merge(weakNode, strongNode, out)
				e.pushExcess(n)
				return
			}

			e.checkChildren(strongNode)
		}

		if strongNode = strongNode.parent; strongNode != nil {
			e.checkChildren(strongNode)
		}
	}

	e.addToStrongBucket(n, &e.strongRoots[n.label])

	if !e.cfg.lowestLabel {
		e.highestStrongLabel++
	}
}

func (e *engine) merge(n, child *node, newArc *arc) {
	var oldArc *arc
	var oldParent *node
	current := child
	newParent := n

	e.stats.Mergers++

	for current.parent != nil {
		oldArc = current.arcToParent
		current.arcToParent = newArc
		oldParent = current.parent
		breakRelationship(oldParent, current)
		addRelationship(newParent, current)

		newParent = current
		current = oldParent
		newArc = oldArc
		if newArc.direction == directionUp {
			newArc.direction = directionDown
		} else {
			newArc.direction = directionUp
		}
	}

	current.arcToParent = newArc
	addRelationship(newParent, current)
}

func (e *engine) pushExcess(n *node) {
	var current, parent *node
	var arcToParent *arc
	prevEx := 1.0

	for current = n; (isExcess(current.excess) || isDeficit(current.excess)) && current.parent != nil && current.arcToParent != nil; current = parent {
		parent = current.parent
		prevEx = parent.excess

		arcToParent = current.arcToParent

		if arcToParent.direction == directionUp {
			e.pushUpward(arcToParent, current, parent, arcToParent.capacity-arcToParent.flow)
		} else {
			e.pushDownward(arcToParent, current, parent, arcToParent.flow)
		}
	}

	if current.excess > 0 && prevEx <= 0 {
		if e.cfg.lowestLabel {
			e.lowestStrongLabel = current.label
		}
		e.addToStrongBucket(current, &e.strongRoots[current.label])
	}
}

func breakRelationship(n, child *node) {
	child.parent = nil

	if n.childList == child {
		n.childList = child.next
		child.next = nil
		return
	}

	current := n.childList
	for current.next != child {
		current = current.next
	}

	current.next = child.next
	child.next = nil
}

func addRelationship(n, child *node) {
	child.parent = n
	child.next = n.childList
	n.childList = child
}

func (e *engine) findWeakNode(n *node) (*arc, *node) {
	size := n.numberOutOfTree

	for i := n.nextArc; i < size; i++ {
		e.stats.ArcScans++
		want := e.highestStrongLabel - 1
		if e.cfg.lowestLabel {
			want = e.lowestStrongLabel - 1
		}
		if n.outOfTree[i].to.label == want {
			n.nextArc = i
			out := n.outOfTree[i]
			weakNode := out.to
			n.numberOutOfTree--
			n.outOfTree[i] = n.outOfTree[n.numberOutOfTree]
			return out, weakNode
		}
		if n.outOfTree[i].from.label == want {
			n.nextArc = i
			out := n.outOfTree[i]
			weakNode := out.from
			n.numberOutOfTree--
			n.outOfTree[i] = n.outOfTree[n.numberOutOfTree]
			return out, weakNode
		}
	}

	n.nextArc = n.numberOutOfTree
	return nil, nil
}

func (e *engine) checkChildren(n *node) {
	for ; n.nextScan != nil; n.nextScan = n.nextScan.next {
		if n.nextScan.label == n.label {
			return
		}
	}

	e.labelCount[n.label]--
	n.label++
	e.labelCount[n.label]++

	e.stats.Relabels++

	n.nextArc = 0
}

func (e *engine) liftAll(n *node) {
	var temp *node
	current := n

	current.nextScan = current.childList

	e.labelCount[current.label]--
	current.label = e.numNodes

	for ; current != nil; current = current.parent {
		for current.nextScan != nil {
			temp = current.nextScan
			current.nextScan = current.nextScan.next
			current = temp
			current.nextScan = current.childList

			e.labelCount[current.label]--
			current.label = e.numNodes
		}
	}
}

func (e *engine) addToStrongBucket(n *node, bucket *strongBucket) {
	if e.cfg.fifoBuckets {
		if bucket.start != nil {
			end := bucket.start
			for end.next != nil {
				end = end.next
			}
			end.next = n
			n.next = nil
		} else {
			bucket.start = n
			n.next = nil
		}
		return
	}

	n.next = bucket.start
	bucket.start = n
}

// simpleInitialization implements the teacher's simpleInitialization: saturate
// every arc directly out of the source and into the sink, then seed label
// buckets for every node left with positive excess.
func (e *engine) simpleInitialization() {
	src := e.nodes[e.source]
	snk := e.nodes[e.sink]

	for i := 0; i < src.numberOutOfTree; i++ {
		a := src.outOfTree[i]
		a.flow = a.capacity
		a.to.excess += a.capacity
	}

	for i := 0; i < snk.numberOutOfTree; i++ {
		a := snk.outOfTree[i]
		a.flow = a.capacity
		a.from.excess -= a.capacity
	}

	src.excess = 0
	snk.excess = 0

	for _, n := range e.nodes {
		if n.excess > 0 {
			n.label = 1
			e.labelCount[1]++
			e.addToStrongBucket(n, &e.strongRoots[1])
		}
	}

	src.label = e.numNodes
	snk.label = 0
	e.labelCount[0] = (e.numNodes - 2) - e.labelCount[1]
}

// flowPhaseOne drives processRoot to completion, draining every strong root
// bucket until no strong root remains, exactly as the teacher's pseudoFlowPhase1.
func (e *engine) flowPhaseOne() {
	if e.cfg.lowestLabel {
		for root := e.getLowestStrongRoot(); root != nil; root = e.getLowestStrongRoot() {
			e.processRoot(root)
		}
		return
	}
	for root := e.getHighestStrongRoot(); root != nil; root = e.getHighestStrongRoot() {
		e.processRoot(root)
	}
}

// gap returns the label threshold above which a node sits on the source side
// of the current minimum cut.
func (e *engine) gap() int {
	if e.cfg.lowestLabel {
		return e.lowestStrongLabel
	}
	return e.numNodes
}

// sourceSideLabels returns, indexed by the engine's own node numbering, whether
// each node's label places it on the source side of the cut (label >= gap).
func (e *engine) sourceSideLabels() []bool {
	g := e.gap()
	out := make([]bool, e.numNodes)
	for i, n := range e.nodes {
		out[i] = n.label >= g
	}
	return out
}

// cutValue sums the materialized capacity of every arc crossing from the
// source side to the sink side of the current cut.
func (e *engine) cutValue() float64 {
	g := e.gap()
	var total float64
	for _, a := range e.arcs {
		if a.from.label >= g && a.to.label < g {
			total += a.capacity
		}
	}
	return total
}
