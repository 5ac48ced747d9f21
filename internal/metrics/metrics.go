// Package metrics exposes the pseudoflow engine's per-solve counters as
// Prometheus collectors. The core paramcut package only ever fills in a plain
// SolveStats struct on its own Session (see session.go); this package is an
// optional sink cmd/paramcut feeds from that struct after each solve, so the
// core library carries no Prometheus import on its hot path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors holds the Prometheus registrations cmd/paramcut updates after
// every solve.
type Collectors struct {
	ArcScans   prometheus.Counter
	Mergers    prometheus.Counter
	Pushes     prometheus.Counter
	Relabels   prometheus.Counter
	Gaps       prometheus.Counter
	Breakpoints prometheus.Gauge
	SolveSeconds prometheus.Histogram
}

// New creates and registers a Collectors set against reg.
func New(reg prometheus.Registerer, namespace string) *Collectors {
	c := &Collectors{
		ArcScans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "arc_scans_total", Help: "Total arc scans performed by the pseudoflow engine.",
		}),
		Mergers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "mergers_total", Help: "Total subtree merges performed.",
		}),
		Pushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pushes_total", Help: "Total excess pushes performed.",
		}),
		Relabels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "relabels_total", Help: "Total node relabel operations performed.",
		}),
		Gaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "gaps_total", Help: "Total gap relabeling shortcuts taken.",
		}),
		Breakpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "breakpoints", Help: "Number of breakpoints found by the most recent solve.",
		}),
		SolveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "solve_seconds", Help: "Wall-clock duration of a full parametric solve.",
		}),
	}

	reg.MustRegister(c.ArcScans, c.Mergers, c.Pushes, c.Relabels, c.Gaps, c.Breakpoints, c.SolveSeconds)
	return c
}

// SolveStats is the subset of paramcut.SolveStats this package reads, kept
// as a local interface-free struct so internal/metrics does not need to
// import the root package.
type SolveStats struct {
	Pushes, Mergers, Relabels, Gaps, ArcScans uint64
}

// Observe records one solve's stats and breakpoint count.
func (c *Collectors) Observe(s SolveStats, breakpointCount int, duration float64) {
	c.Pushes.Add(float64(s.Pushes))
	c.Mergers.Add(float64(s.Mergers))
	c.Relabels.Add(float64(s.Relabels))
	c.Gaps.Add(float64(s.Gaps))
	c.ArcScans.Add(float64(s.ArcScans))
	c.Breakpoints.Set(float64(breakpointCount))
	c.SolveSeconds.Observe(duration)
}
