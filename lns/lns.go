package lns

import (
	"context"
	"time"

	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/localsearch"
	"github.com/katalvlaran/pdptw/rng"
	"github.com/katalvlaran/pdptw/solution"
)

// Run executes opts.Iterations rounds of destroy+repair starting from
// start (which is not mutated; Run works on a clone), accepting each
// repaired candidate under LAHC, and returns the best Solution observed
// along with run counters. ctx and the opts.TimeLimit deadline are checked
// once per iteration; either stops the loop and returns the best Solution
// found so far with no error.
// stream supplies every random draw Run makes; callers that invoke Run
// repeatedly (ils.iterate does, once per outer iteration) must pass a
// fresh or freshly-derived stream each time, or every burst replays the
// same destroy/repair sequence.
func Run(ctx context.Context, in *instance.Instance, start *solution.Solution, stream *rng.Stream, opts Options) *Result {
	current := start.Clone()
	current.Recompute(in)
	best := current.Clone()

	metrics := Metrics{}
	chain := newLAHC(opts.LAHCHistory, keyOf(in, current))

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	for iter := 0; opts.Iterations == 0 || iter < opts.Iterations; iter++ {
		select {
		case <-ctx.Done():
			return &Result{Solution: best, Metrics: metrics}
		default:
		}
		if opts.TimeLimit > 0 && time.Now().After(deadline) {
			break
		}
		metrics.Iterations++

		candidate := current.Clone()
		removed := destroy(in, candidate, stream, opts.Destroy, opts.DestroyMin, opts.DestroyMax)
		if len(removed) == 0 {
			continue
		}

		if !repair(in, candidate, removed, opts.Repair, opts.RegretDepth) {
			metrics.RepairFailures++
			continue
		}
		candidate.Renumber()
		candidate.Recompute(in)

		if rep := feasibility.Validate(in, candidate); !rep.Feasible() {
			metrics.RejectedInfeasible++
			continue
		}

		candidateKey := keyOf(in, candidate)
		currentKey := keyOf(in, current)
		if !chain.check(candidateKey, currentKey) {
			metrics.RejectedLAHC++
			chain.record(currentKey)
			continue
		}

		improving := solution.Less(in, candidate, current)
		if improving {
			metrics.Improvements++
		} else {
			metrics.AcceptedWorse++
		}
		current = candidate
		chain.record(candidateKey)

		if solution.Less(in, current, best) {
			best = current.Clone()
		}

		// spec.md §4.3 step 4: polish runs every LocalSearchEvery iterations
		// *and* on any improving candidate, not just the periodic cadence.
		if improving || (opts.LocalSearchEvery > 0 && iter%opts.LocalSearchEvery == 0) {
			_ = localsearch.Run(in, current, localsearch.Options{MaxPasses: 1})
			current.Recompute(in)
			if solution.Less(in, current, best) {
				best = current.Clone()
			}
		}
	}

	return &Result{Solution: best, Metrics: metrics}
}

func keyOf(in *instance.Instance, s *solution.Solution) lahcKey {
	return lahcKey{vehicles: s.VehicleCount(), distance: s.TotalDistance(in)}
}
