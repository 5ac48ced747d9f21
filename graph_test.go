package paramcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_Valid(t *testing.T) {
	g, err := NewGraph(GraphSpec{
		NumNodes: 4,
		Source:   0,
		Sink:     3,
		Arcs: []ArcSpec{
			{From: 0, To: 1, Constant: 5},
			{From: 1, To: 2, Constant: 3},
			{From: 2, To: 3, Constant: 4},
		},
		LambdaLo: 0,
		LambdaHi: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumNodes())
}

func TestNewGraph_RejectsBadNodeCount(t *testing.T) {
	_, err := NewGraph(GraphSpec{NumNodes: 0, Source: 0, Sink: 1})
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeInvalidGraph, perr.Code)
}

func TestNewGraph_RejectsSourceEqualsSink(t *testing.T) {
	_, err := NewGraph(GraphSpec{NumNodes: 2, Source: 0, Sink: 0})
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeSourceEqualsSink, perr.Code)
}

func TestNewGraph_RejectsOutOfRangeSource(t *testing.T) {
	_, err := NewGraph(GraphSpec{NumNodes: 2, Source: 5, Sink: 1})
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeInvalidSource, perr.Code)
}

func TestNewGraph_RejectsInvertedLambdaRange(t *testing.T) {
	_, err := NewGraph(GraphSpec{NumNodes: 2, Source: 0, Sink: 1, LambdaLo: 10, LambdaHi: 0})
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeInvalidLambdaRange, perr.Code)
}

func TestNewGraph_RejectsArcEndpointOutOfRange(t *testing.T) {
	_, err := NewGraph(GraphSpec{
		NumNodes: 3, Source: 0, Sink: 2,
		Arcs: []ArcSpec{{From: 0, To: 9, Constant: 1}},
	})
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeInvalidGraph, perr.Code)
}
