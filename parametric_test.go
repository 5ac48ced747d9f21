package paramcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph builds a 3-node chain 0(source) -> 1 -> 2(sink) where the first
// arc's capacity grows with lambda and the second is fixed. The minimum cut
// is whichever of the two arcs is cheaper: {source} while lambda*1 < 10, and
// {source, 1} once lambda*1 > 10, crossing exactly at lambda = 10.
func chainGraph(t *testing.T, lambdaHi float64) *Graph {
	t.Helper()
	g, err := NewGraph(GraphSpec{
		NumNodes: 3,
		Source:   0,
		Sink:     2,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 0, Multiplier: 1},
			{From: 1, To: 2, Constant: 10, Multiplier: 0},
		},
		LambdaLo: 0,
		LambdaHi: lambdaHi,
	})
	require.NoError(t, err)
	return g
}

func TestSession_Solve_SingleBreakpoint(t *testing.T) {
	g := chainGraph(t, 20)
	s := NewSession(Context{})

	res, err := s.Solve(g)
	require.NoError(t, err)

	require.Equal(t, []float64{10, 20}, res.Breakpoints)
	require.Len(t, res.NodeEntry, 3)
	assert.Equal(t, 0.0, res.NodeEntry[0], "source always belongs to the source side")
	assert.Equal(t, 10.0, res.NodeEntry[1], "node 1 should cross over exactly at the breakpoint")
	assert.Equal(t, 20.0, res.NodeEntry[2], "sink never joins the source side, so it carries the lambdaHi sentinel")
}

func TestSession_Solve_BreakpointsAreAscending(t *testing.T) {
	g := chainGraph(t, 20)
	s := NewSession(Context{})

	res, err := s.Solve(g)
	require.NoError(t, err)

	for i := 1; i < len(res.Breakpoints); i++ {
		assert.Less(t, res.Breakpoints[i-1], res.Breakpoints[i])
	}
}

func TestSession_Solve_Degenerate(t *testing.T) {
	g, err := NewGraph(GraphSpec{
		NumNodes: 3,
		Source:   0,
		Sink:     2,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 4},
			{From: 1, To: 2, Constant: 9},
		},
		LambdaLo: 3,
		LambdaHi: 3,
	})
	require.NoError(t, err)

	s := NewSession(Context{})
	res, err := s.Solve(g)
	require.NoError(t, err)

	assert.Equal(t, []float64{3}, res.Breakpoints)
	assert.Equal(t, 3.0, res.NodeEntry[0])
}

func TestSession_Solve_NoBreakpointWhenOneSideAlwaysCheaper(t *testing.T) {
	// Severing 0->1 is always far cheaper than severing 1->2, so node 1
	// never becomes worth pulling into the source side: no interior
	// breakpoint, only the trailing lambdaHi sentinel.
	g, err := NewGraph(GraphSpec{
		NumNodes: 3,
		Source:   0,
		Sink:     2,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 1, Multiplier: 0},
			{From: 1, To: 2, Constant: 100, Multiplier: 0},
		},
		LambdaLo: 0,
		LambdaHi: 10,
	})
	require.NoError(t, err)

	s := NewSession(Context{})
	res, err := s.Solve(g)
	require.NoError(t, err)

	assert.Equal(t, []float64{10}, res.Breakpoints)
	assert.Equal(t, 0.0, res.NodeEntry[0])
	assert.Equal(t, 10.0, res.NodeEntry[1], "node 1 never crosses over, so it carries the sentinel")
}

func TestSession_Solve_ParallelArcsTwoBreakpoints(t *testing.T) {
	// Two parallel lambda-dependent paths into the sink: (0,1;1,1)+(1,3;5,0)
	// and (0,2;2,0.5)+(2,3;3,0). Hand-verified envelope of the four possible
	// source-side partitions {0}, {0,2}, {0,1}, {0,1,2}:
	//   {0}:     3+1.5*lambda
	//   {0,2}:   4+lambda
	//   {0,1}:   7+0.5*lambda
	//   {0,1,2}: 8
	// gives a lower envelope of {0} until lambda=2, {0,2} from 2 to 4, then
	// {0,1,2} from 4 on: node 2 joins first, node 1 joins second, and the two
	// breakpoints are not adjacent to the naive line-intersection of the
	// bracketing {0}/{0,1,2} partitions (which falls at lambda=10/3, a point
	// that is not itself a breakpoint at all).
	g, err := NewGraph(GraphSpec{
		NumNodes: 4,
		Source:   0,
		Sink:     3,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 1, Multiplier: 1},
			{From: 0, To: 2, Constant: 2, Multiplier: 0.5},
			{From: 1, To: 3, Constant: 5, Multiplier: 0},
			{From: 2, To: 3, Constant: 3, Multiplier: 0},
		},
		LambdaLo: 0,
		LambdaHi: 6,
	})
	require.NoError(t, err)

	s := NewSession(Context{})
	res, err := s.Solve(g)
	require.NoError(t, err)

	require.Equal(t, []float64{2, 4, 6}, res.Breakpoints)
	require.Len(t, res.NodeEntry, 4)
	assert.Equal(t, 0.0, res.NodeEntry[0], "source always belongs to the source side")
	assert.Equal(t, 4.0, res.NodeEntry[1], "node 1 only becomes worth pulling in once lambda=4")
	assert.Equal(t, 2.0, res.NodeEntry[2], "node 2 joins the source side first, at lambda=2")
	assert.Equal(t, 6.0, res.NodeEntry[3], "sink never joins the source side, so it carries the lambdaHi sentinel")
}

func TestSession_Solve_LowestLabelAgreesWithHighestLabel(t *testing.T) {
	g := chainGraph(t, 20)

	highest, err := NewSession(Context{}).Solve(g)
	require.NoError(t, err)
	lowest, err := NewSession(Context{LowestLabel: true}).Solve(g)
	require.NoError(t, err)

	assert.Equal(t, highest.Breakpoints, lowest.Breakpoints)
	assert.Equal(t, highest.NodeEntry, lowest.NodeEntry)
}
