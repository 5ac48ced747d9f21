package paramcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classicSixNode builds the textbook 6-node maximum flow instance the teacher's
// own package doc comment uses as its example: max flow / min cut value 15.
func classicSixNode(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(GraphSpec{
		NumNodes: 6,
		Source:   0,
		Sink:     5,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 5},
			{From: 0, To: 2, Constant: 15},
			{From: 1, To: 3, Constant: 5},
			{From: 1, To: 4, Constant: 5},
			{From: 2, To: 3, Constant: 5},
			{From: 2, To: 4, Constant: 5},
			{From: 3, To: 5, Constant: 15},
			{From: 4, To: 5, Constant: 5},
		},
		LambdaLo: 0,
		LambdaHi: 0,
	})
	require.NoError(t, err)
	return g
}

func TestEngine_SingleLambdaMinCutValue(t *testing.T) {
	g := classicSixNode(t)
	sp := buildSubproblem(g, initialSideAssignment(g), 0, 0)

	eng := newEngine(engineConfig{})
	require.NoError(t, eng.build(sp, 0, false))
	eng.simpleInitialization()
	eng.flowPhaseOne()

	assert.Equal(t, 15.0, eng.cutValue())
}

func TestEngine_LowestLabelAgreesWithHighestLabel(t *testing.T) {
	g := classicSixNode(t)
	sp := buildSubproblem(g, initialSideAssignment(g), 0, 0)

	highest := newEngine(engineConfig{})
	require.NoError(t, highest.build(sp, 0, false))
	highest.simpleInitialization()
	highest.flowPhaseOne()

	lowest := newEngine(engineConfig{lowestLabel: true})
	require.NoError(t, lowest.build(sp, 0, false))
	lowest.simpleInitialization()
	lowest.flowPhaseOne()

	assert.Equal(t, highest.cutValue(), lowest.cutValue())
}

func TestEngine_NegativeCapacityErrorsByDefault(t *testing.T) {
	g, err := NewGraph(GraphSpec{
		NumNodes: 3, Source: 0, Sink: 2,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 10, Multiplier: -5},
			{From: 1, To: 2, Constant: 10},
		},
		LambdaLo: 0, LambdaHi: 10,
	})
	require.NoError(t, err)

	sp := buildSubproblem(g, initialSideAssignment(g), 0, 10)
	eng := newEngine(engineConfig{})
	err = eng.build(sp, 5, false)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeNegativeCapacity, perr.Code)
}

func TestEngine_NegativeCapacityRoundedWhenRequested(t *testing.T) {
	g, err := NewGraph(GraphSpec{
		NumNodes: 3, Source: 0, Sink: 2,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 10, Multiplier: -5},
			{From: 1, To: 2, Constant: 10},
		},
		LambdaLo: 0, LambdaHi: 10,
		RoundNegativeCapacity: true,
	})
	require.NoError(t, err)

	sp := buildSubproblem(g, initialSideAssignment(g), 0, 10)
	eng := newEngine(engineConfig{})
	require.NoError(t, eng.build(sp, 5, true))
	eng.simpleInitialization()
	eng.flowPhaseOne()
	assert.Equal(t, 0.0, eng.cutValue())
}
