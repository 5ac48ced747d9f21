// paramcut is a thin command-line demonstration of the paramcut library.
// NOTE: input and output default to os.Stdin/os.Stdout.
//
// $ cat graph.json | paramcut                 # read graph.json from stdin, write result to stdout
// $ paramcut graph.json                       # read graph.json, write result to stdout
// $ paramcut -o result.json graph.json        # read graph.json, write result to result.json
//
// Command-line switches - lowestlabel, fifobuckets, round - toggle runtime
// context values; -metrics serves Prometheus metrics on the configured
// address while the solve runs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hbaumflow/paramcut"
	"github.com/hbaumflow/paramcut/internal/config"
	"github.com/hbaumflow/paramcut/internal/logging"
	"github.com/hbaumflow/paramcut/internal/metrics"
)

// inputGraph is the JSON wire shape read from stdin or a file, mapping
// directly onto paramcut.GraphSpec. A JSON input format is used instead of
// DIMACS since DIMACS parsing is out of scope for this library.
type inputGraph struct {
	NumNodes int     `json:"numNodes"`
	Source   int     `json:"source"`
	Sink     int     `json:"sink"`
	LambdaLo float64 `json:"lambdaLo"`
	LambdaHi float64 `json:"lambdaHi"`
	Arcs     []struct {
		From       int     `json:"from"`
		To         int     `json:"to"`
		Constant   float64 `json:"constant"`
		Multiplier float64 `json:"multiplier"`
	} `json:"arcs"`
}

type output struct {
	RunID       string    `json:"runId"`
	Breakpoints []float64 `json:"breakpoints"`
	NodeEntry   []float64 `json:"nodeEntry"`
	Stats       paramcut.SolveStats `json:"stats"`
}

func main() {
	var lowestlabel, fifobuckets, round, serveMetrics bool
	var outputPath string
	flag.BoolVar(&lowestlabel, "lowestlabel", false, "set LowestLabel == true")
	flag.BoolVar(&fifobuckets, "fifobuckets", false, "set FifoBuckets == true")
	flag.BoolVar(&round, "round", false, "clamp negative materialized capacities to zero instead of failing")
	flag.BoolVar(&serveMetrics, "metrics", false, "serve Prometheus metrics while solving")
	flag.StringVar(&outputPath, "o", "", "write results to named file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "paramcut: config: %s\n", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output, FilePath: cfg.Log.FilePath})
	runID := uuid.New().String()
	log = logging.WithRun(log, runID)

	reg := prometheus.NewRegistry()
	collectors := metrics.New(reg, "paramcut")
	if serveMetrics || cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		addr := cfg.Metrics.Addr
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("metrics server exited", "error", err)
			}
		}()
		log.Info("serving metrics", "addr", addr)
	}

	args := flag.Args()
	var in *os.File
	if len(args) == 0 {
		in = os.Stdin
	} else {
		in, err = os.Open(args[0])
		if err != nil {
			log.Error("unable to open input file", "file", args[0], "error", err)
			os.Exit(1)
		}
		defer in.Close()
	}

	var out *os.File
	if outputPath == "" {
		out = os.Stdout
	} else {
		out, err = os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			log.Error("unable to open output file", "file", outputPath, "error", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	var ig inputGraph
	if err := json.NewDecoder(in).Decode(&ig); err != nil {
		log.Error("unable to decode input graph", "error", err)
		os.Exit(1)
	}

	spec := paramcut.GraphSpec{
		NumNodes:              ig.NumNodes,
		Source:                ig.Source,
		Sink:                  ig.Sink,
		LambdaLo:              ig.LambdaLo,
		LambdaHi:              ig.LambdaHi,
		RoundNegativeCapacity: round || cfg.Solver.RoundNegativeCapacity,
	}
	for _, a := range ig.Arcs {
		spec.Arcs = append(spec.Arcs, paramcut.ArcSpec{From: a.From, To: a.To, Constant: a.Constant, Multiplier: a.Multiplier})
	}

	g, err := paramcut.NewGraph(spec)
	if err != nil {
		log.Error("invalid graph", "error", err)
		os.Exit(1)
	}

	s := paramcut.NewSession(paramcut.Context{
		LowestLabel: lowestlabel || cfg.Solver.LowestLabel,
		FifoBuckets: fifobuckets || cfg.Solver.FifoBuckets,
	})

	start := time.Now()
	result, err := s.Solve(g)
	duration := time.Since(start)
	if err != nil {
		log.Error("solve failed", "error", err)
		os.Exit(1)
	}

	stats := s.Stats()
	collectors.Observe(metrics.SolveStats{
		Pushes: stats.Pushes, Mergers: stats.Mergers, Relabels: stats.Relabels, Gaps: stats.Gaps, ArcScans: stats.ArcScans,
	}, len(result.Breakpoints), duration.Seconds())

	log.Info("solve complete",
		"nodes", g.NumNodes(),
		"breakpoints", len(result.Breakpoints),
		"duration", duration.String(),
		"stats", s.StatsJSON(),
	)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{RunID: runID, Breakpoints: result.Breakpoints, NodeEntry: result.NodeEntry, Stats: stats}); err != nil {
		log.Error("unable to write output", "error", err)
		os.Exit(1)
	}
}
