package pdptw

import (
	"context"
	"time"

	"github.com/katalvlaran/pdptw/ils"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/lns"
	"github.com/katalvlaran/pdptw/solution"
)

// Config bundles the tuning knobs a caller supplies to Solve, mirroring
// ils.Options/lns.Options without forcing callers to import either package
// for the common case.
type Config struct {
	TimeLimit         time.Duration
	MaxIterations     int
	NoImprovementStop int
	LNSIterations     int
	DestroyMin        int
	DestroyMax        int
	LAHCHistory       int
	LocalSearchEvery  int
	Seed              int64
	OnProgress        func(ils.ProgressEvent)
}

// DefaultConfig mirrors spec.md §6's defaults.
func DefaultConfig() Config {
	d := ils.DefaultOptions()
	return Config{
		TimeLimit:         d.TimeLimit,
		MaxIterations:     d.MaxIterations,
		NoImprovementStop: d.NoImprovementStop,
		LNSIterations:     d.LNS.Iterations,
		DestroyMin:        d.LNS.DestroyMin,
		DestroyMax:        d.LNS.DestroyMax,
		LAHCHistory:       d.LNS.LAHCHistory,
		LocalSearchEvery:  d.LNS.LocalSearchEvery,
		Seed:              d.Seed,
	}
}

// SolveResult is Solve's return value: the best Solution found and the
// search metrics accumulated across the run.
type SolveResult struct {
	Solution *solution.Solution
	Metrics  ils.Metrics
}

// Solve runs the full constructive + ILS pipeline against in, stopping on
// ctx cancellation, cfg.TimeLimit, cfg.MaxIterations, or early convergence,
// whichever comes first. in must already be validated by
// instance.Build/BuildFromEuclidean.
func Solve(ctx context.Context, in *instance.Instance, cfg Config) (*SolveResult, error) {
	opts := ils.Options{
		TimeLimit:         cfg.TimeLimit,
		MaxIterations:     cfg.MaxIterations,
		NoImprovementStop: cfg.NoImprovementStop,
		Seed:              cfg.Seed,
		OnProgress:        cfg.OnProgress,
		LNS:               lns.DefaultOptions(),
	}
	opts.LNS.Iterations = cfg.LNSIterations
	opts.LNS.DestroyMin = cfg.DestroyMin
	opts.LNS.DestroyMax = cfg.DestroyMax
	opts.LNS.LAHCHistory = cfg.LAHCHistory
	opts.LNS.LocalSearchEvery = cfg.LocalSearchEvery

	result, err := ils.Solve(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	return &SolveResult{Solution: result.Solution, Metrics: result.Metrics}, nil
}
