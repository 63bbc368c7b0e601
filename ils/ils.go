// Package ils implements the Iterated Local Search outer loop from
// spec.md §4.6: build an initial Solution, then repeatedly (1) run an LNS
// burst, (2) try to shed a vehicle with ages.Run, (3) polish the result with
// an unbounded localsearch.Run pass, (4) keep it as the new best (S*) if it
// validates and improves on the prior best, and (5) perturb S* with a small
// number of random pair-aware moves to produce the next iteration's starting
// Solution, reverting to S* if the perturbed Solution doesn't validate.
// Stops early once no_improvement_stop consecutive iterations land without
// improving S*, with less than a fifth of the time budget remaining, and
// always returns S* after one final unbounded polish pass.
//
// Grounded on the Hola solver-svc's ctx-cancellable Solve(ctx, ...) entry
// point and SolverResult-shaped return value, composing this module's own
// construct/lns/ages/localsearch/feasibility packages.
package ils

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/pdptw/ages"
	"github.com/katalvlaran/pdptw/construct"
	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/lns"
	"github.com/katalvlaran/pdptw/localsearch"
	"github.com/katalvlaran/pdptw/rng"
	"github.com/katalvlaran/pdptw/solution"
)

// ErrConstructionInfeasible surfaces construct.ErrInfeasible at the CORE
// solver boundary (spec.md §7's construction_infeasible).
var ErrConstructionInfeasible = errors.New("ils: no feasible initial solution exists for this instance")

// ErrFinalPolishInfeasible guards spec.md §4.6's final step: the polish
// pass run on S* just before returning should never be able to break
// feasibility (every localsearch move is itself feasibility-checked), so
// seeing this means a component upstream of ils violated that contract.
var ErrFinalPolishInfeasible = errors.New("ils: final polish produced an infeasible solution")

// Stream IDs for the per-iteration rng.Stream.Derive calls: one named
// sub-stream per concern, so LNS's destroy/repair draws, AGES's merge-order
// draws, and the perturbation step's move draws never correlate even though
// all three run within the same outer iteration.
const (
	lnsStreamID uint64 = iota
	agesStreamID
	perturbStreamID
)

// ProgressEvent is emitted through Options.OnProgress after every ILS
// iteration, for callers that want to log or display search progress; the
// CORE packages themselves never log (spec.md's ambient-stack logging
// boundary lives in internal/logx, consumed only by cmd/pdptw-solve).
type ProgressEvent struct {
	Iteration    int
	VehicleCount int
	Distance     int
	Improved     bool
}

// Options configures Solve.
type Options struct {
	TimeLimit         time.Duration // 0 disables the wall-clock budget
	MaxIterations     int           // 0 means run until TimeLimit/ctx only
	NoImprovementStop int           // consecutive non-improvements before early stop is considered
	LNS               lns.Options
	Seed              int64
	OnProgress        func(ProgressEvent)
}

// DefaultOptions mirrors spec.md §6's configuration defaults.
func DefaultOptions() Options {
	return Options{
		TimeLimit:         60 * time.Second,
		MaxIterations:     20,
		NoImprovementStop: 5,
		LNS:               lnsPerturbationOptions(),
		Seed:              1,
	}
}

// lnsPerturbationOptions bounds each ILS iteration's LNS call to 500
// destroy+repair rounds: LNS's own LAHC governs acceptance within that
// burst, while ils.Solve governs acceptance across bursts.
func lnsPerturbationOptions() lns.Options {
	opts := lns.DefaultOptions()
	opts.Iterations = 500
	opts.DestroyMin = 8
	opts.DestroyMax = 30
	return opts
}

// Metrics aggregates counters across the whole Solve run.
type Metrics struct {
	Iterations       int
	Improvements     int
	Reverts          int // iterate's LNS+AGES+polish candidate failed to validate
	PerturbReverts   int // the perturbation step's candidate failed to validate
	LNSMetrics       lns.Metrics
	AGESEliminations int
	AGESMerges       int
	StoppedEarly     bool
	StoppedByCtx     bool
	Duration         time.Duration
}

// Result is Solve's return value.
type Result struct {
	Solution *solution.Solution
	Metrics  Metrics
}

// Solve runs the full outer loop. in must already be validated by
// instance.Build/BuildFromEuclidean.
func Solve(ctx context.Context, in *instance.Instance, opts Options) (*Result, error) {
	start := time.Now()

	initial, err := construct.Build(in)
	if err != nil {
		return nil, ErrConstructionInfeasible
	}
	initial.Renumber()
	initial.Recompute(in)

	current := initial
	best := initial.Clone()
	metrics := Metrics{}

	var deadline time.Time
	hasDeadline := opts.TimeLimit > 0
	if hasDeadline {
		deadline = start.Add(opts.TimeLimit)
	}

	stream := rng.New(opts.Seed)
	noImprovement := 0

	for iter := 0; opts.MaxIterations == 0 || iter < opts.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			metrics.StoppedByCtx = true
			return finalPolish(in, best, metrics, start)
		default:
		}
		if hasDeadline && time.Now().After(deadline) {
			break
		}
		metrics.Iterations++
		iterStream := stream.Derive(uint64(iter))

		// Steps 1-3 (spec.md §4.6): LNS burst, AGES vehicle-reduction
		// attempt, unbounded local-search polish.
		candidate := iterate(ctx, in, current, opts, iterStream, &metrics)

		improved := false
		if candidate == nil {
			metrics.Reverts++
		} else if solution.Less(in, candidate, best) {
			best = candidate.Clone()
			improved = true
			metrics.Improvements++
		}
		if improved {
			noImprovement = 0
		} else {
			noImprovement++
		}

		// Step 5 (spec.md §4.6): perturb S* with a small number of random
		// pair-aware moves to produce the next iteration's starting
		// Solution, reverting to S* itself if the perturbation doesn't
		// validate.
		perturbed := perturb(in, best, iterStream.Derive(perturbStreamID))
		if rep := feasibility.Validate(in, perturbed); rep.Feasible() {
			current = perturbed
		} else {
			current = best.Clone()
			metrics.PerturbReverts++
		}

		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{
				Iteration:    iter,
				VehicleCount: best.VehicleCount(),
				Distance:     best.TotalDistance(in),
				Improved:     improved,
			})
		}

		if hasDeadline && opts.NoImprovementStop > 0 && noImprovement >= opts.NoImprovementStop {
			remaining := time.Until(deadline)
			if remaining < opts.TimeLimit/5 {
				metrics.StoppedEarly = true
				break
			}
		}
	}

	return finalPolish(in, best, metrics, start)
}

// iterate runs one LNS burst, an AGES vehicle-reduction attempt, and an
// unbounded local-search polish (spec.md §4.6 steps 1-3), then validates the
// result. It returns nil if the candidate doesn't validate (revert-on-
// failure); the caller decides whether the candidate improves on S*.
func iterate(ctx context.Context, in *instance.Instance, current *solution.Solution, opts Options, stream *rng.Stream, metrics *Metrics) *solution.Solution {
	lnsStream := stream.Derive(lnsStreamID)
	agesStream := stream.Derive(agesStreamID)

	lnsResult := lns.Run(ctx, in, current, lnsStream, opts.LNS)
	metrics.LNSMetrics.Iterations += lnsResult.Metrics.Iterations
	metrics.LNSMetrics.Improvements += lnsResult.Metrics.Improvements
	metrics.LNSMetrics.RejectedInfeasible += lnsResult.Metrics.RejectedInfeasible
	metrics.LNSMetrics.RejectedLAHC += lnsResult.Metrics.RejectedLAHC
	metrics.LNSMetrics.AcceptedWorse += lnsResult.Metrics.AcceptedWorse
	metrics.LNSMetrics.RepairFailures += lnsResult.Metrics.RepairFailures

	candidate := lnsResult.Solution

	reduced, ageMetrics := ages.Run(in, candidate, agesStream)
	metrics.AGESEliminations += ageMetrics.Eliminations
	metrics.AGESMerges += ageMetrics.Merges
	if solution.Less(in, reduced, candidate) {
		candidate = reduced
	}

	// spec.md §4.6 step 3: run a full local-search polish (unbounded
	// passes, stopping only when one full cycle finds no improving move),
	// not just the bounded single-pass polish lns.Run applies internally.
	_ = localsearch.Run(in, candidate, localsearch.Options{})

	candidate.Renumber()
	candidate.Recompute(in)
	if rep := feasibility.Validate(in, candidate); !rep.Feasible() {
		return nil
	}

	return candidate
}

// finalPolish runs spec.md §4.6's final step — one last unbounded
// local-search pass on S* before returning — and surfaces
// ErrFinalPolishInfeasible if that pass somehow breaks feasibility, since
// every localsearch move is itself feasibility-checked and should never be
// able to.
func finalPolish(in *instance.Instance, best *solution.Solution, metrics Metrics, start time.Time) (*Result, error) {
	_ = localsearch.Run(in, best, localsearch.Options{})
	best.Renumber()
	best.Recompute(in)
	if rep := feasibility.Validate(in, best); !rep.Feasible() {
		return nil, ErrFinalPolishInfeasible
	}

	metrics.Duration = time.Since(start)
	return &Result{Solution: best, Metrics: metrics}, nil
}
