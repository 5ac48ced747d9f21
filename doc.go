// doc.go - parametric minimum s-t cut over Hochbaum's pseudoflow algorithm.
// Copyright (c) 2017 C. L. Banning (clbanning@gmail.com). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paramcut computes every breakpoint of a parametric minimum s-t cut on a
// directed capacitated graph whose source-adjacent and sink-adjacent arc capacities
// vary affinely with a scalar parameter lambda.
//
// It derives from a parametric extension of Hochbaum's HPF pseudoflow solver
// (https://github.com/hochbaumGroup/pseudoflow-parametric-cut-conductance), itself
// built on the normalized-tree pseudoflow engine this package's single-lambda solver
// is ported from (https://github.com/clbanning/pseudo).
//
// The way to use this package is to build a Graph, then create a Session over it and
// call Session.Solve:
//
//	g, _ := paramcut.NewGraph(paramcut.GraphSpec{
//		NumNodes: 3, Source: 0, Sink: 2,
//		Arcs: []paramcut.ArcSpec{
//			{From: 0, To: 1, Constant: 0, Multiplier: 1},
//			{From: 1, To: 2, Constant: 10, Multiplier: 0},
//		},
//		LambdaLo: 0, LambdaHi: 20,
//	})
//	s := paramcut.NewSession(paramcut.Context{})
//	result, err := s.Solve(g)
//
// result.Breakpoints holds the discovered lambda values in ascending discovery order
// (the upper bound of the range is always appended last as a sentinel); result.NodeEntry
// holds, per node, the smallest lambda at which the node is on the source side of the
// optimal cut. Session.Stats, Session.StatsJSON and Session.TimerJSON expose the same
// processing counters and phase timings the single-lambda engine has always reported.
package paramcut
