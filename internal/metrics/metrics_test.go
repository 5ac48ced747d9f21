package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestNew_RegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, "paramcut_test")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)

	require.NotNil(t, c.ArcScans)
	require.NotNil(t, c.Mergers)
	require.NotNil(t, c.Pushes)
	require.NotNil(t, c.Relabels)
	require.NotNil(t, c.Gaps)
	require.NotNil(t, c.Breakpoints)
	require.NotNil(t, c.SolveSeconds)
}

func TestObserve_AccumulatesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, "paramcut_test")

	c.Observe(SolveStats{Pushes: 3, Mergers: 1, Relabels: 2, Gaps: 1, ArcScans: 5}, 4, 0.25)
	c.Observe(SolveStats{Pushes: 1}, 6, 0.1)

	require.Equal(t, 4.0, counterValue(t, c.Pushes))
	require.Equal(t, 1.0, counterValue(t, c.Mergers))
	require.Equal(t, 2.0, counterValue(t, c.Relabels))
	require.Equal(t, 1.0, counterValue(t, c.Gaps))
	require.Equal(t, 5.0, counterValue(t, c.ArcScans))
	require.Equal(t, 6.0, gaugeValue(t, c.Breakpoints), "Breakpoints gauge reflects only the latest solve")
}
