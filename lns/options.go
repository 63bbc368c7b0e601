// Package lns implements Large Neighborhood Search (spec.md §4.3): destroy
// a random or relatedness-guided slice of requests, repair with greedy or
// regret-k insertion, and accept the result under Late Acceptance Hill
// Climbing (LAHC). Grounded on the Hola solver-svc's Solve(ctx, ..., opts)
// shape (SolverOptions/SolverResult, ctx cancellation, wrapped errors) and
// on feasibility/construct/internal-insertion for every move it makes.
package lns

import (
	"time"

	"github.com/katalvlaran/pdptw/solution"
)

// DestroyKind selects the request-removal neighborhood.
type DestroyKind int

const (
	// RandomPair removes a uniformly random slice of requests.
	RandomPair DestroyKind = iota
	// ShawRelated removes a relatedness-clustered slice of requests.
	ShawRelated
)

// RepairKind selects the request-reinsertion neighborhood.
type RepairKind int

const (
	// Greedy reinserts each removed request at its single cheapest
	// feasible placement, in removal order.
	Greedy RepairKind = iota
	// RegretK reinserts the request with the largest regret (the summed
	// gaps between its best placement and each of its next k-1 best) first.
	RegretK
)

// Options configures one Run call.
type Options struct {
	Iterations       int           // number of destroy+repair rounds; 0 means run until ctx/TimeLimit
	TimeLimit        time.Duration // 0 disables the soft wall-clock deadline
	DestroyMin       int           // minimum requests removed per iteration
	DestroyMax       int           // maximum requests removed per iteration
	Destroy          DestroyKind
	Repair           RepairKind
	RegretDepth      int // k for RegretK; ignored otherwise
	LAHCHistory      int // length of the LAHC circular acceptance history
	LocalSearchEvery int // run a localsearch.Run polish on current every N iterations; 0 disables it
}

// DefaultOptions returns the knobs spec.md §4.3/§6 names as defaults:
// destroy 8-30 requests, Shaw relatedness removal, regret-2 repair, and a
// 1000-long LAHC history.
func DefaultOptions() Options {
	return Options{
		Iterations:       1000,
		DestroyMin:       8,
		DestroyMax:       30,
		Destroy:          ShawRelated,
		Repair:           RegretK,
		RegretDepth:      2,
		LAHCHistory:      1000,
		LocalSearchEvery: 20,
	}
}

// Metrics counts what happened across a Run, named after spec.md §6's
// progress-event fields so callers can log or assert on them directly.
type Metrics struct {
	Iterations         int
	Improvements       int
	RejectedInfeasible int
	RejectedLAHC       int
	AcceptedWorse      int
	RepairFailures     int
}

// Result is what Run returns: the best Solution found and the run's
// counters.
type Result struct {
	Solution *solution.Solution
	Metrics  Metrics
}
