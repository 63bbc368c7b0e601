// Package ages implements the vehicle-reduction loop from spec.md §4.5:
// repeatedly try to eliminate the smallest route by forcibly redistributing
// its requests into the remaining routes, falling back to a random
// route-merge attempt when redistribution keeps failing. Every attempt
// that doesn't pan out leaves the Solution exactly as it found it — AGES
// only ever commits a strictly feasible, vehicle-reducing result.
//
// Grounded on spec.md §4.5 together with the clone-before-mutate discipline
// solution.Solution documents: every elimination attempt runs against a
// scratch clone, so a failed attempt can be discarded by simply not copying
// it back.
package ages

import (
	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/internal/insertion"
	"github.com/katalvlaran/pdptw/rng"
	"github.com/katalvlaran/pdptw/solution"
)

const (
	maxEliminations      = 100
	maxConsecutiveFailed = 20
	maxMergeAttempts     = 10
)

// Metrics counts what one Run call did.
type Metrics struct {
	Eliminations int
	Failures     int
	Merges       int
}

// Run attempts up to maxEliminations route eliminations against a clone of
// sol, stopping early after maxConsecutiveFailed failures a random merge
// attempt also could not break. It never mutates sol; the caller decides
// whether to keep the returned Solution (typically by comparing with
// solution.Less against the input).
func Run(in *instance.Instance, sol *solution.Solution, stream *rng.Stream) (*solution.Solution, Metrics) {
	cur := sol.Clone()
	cur.Renumber()
	cur.Recompute(in)

	metrics := Metrics{}
	excluded := make(map[int]bool)
	consecutiveFailed := 0

	for attempts := 0; attempts < maxEliminations; attempts++ {
		idx := smallestEligibleRoute(in, cur, excluded)
		if idx == -1 {
			break
		}

		if eliminated := tryEliminate(in, cur, idx); eliminated != nil {
			cur = eliminated
			metrics.Eliminations++
			consecutiveFailed = 0
			excluded = make(map[int]bool)
			continue
		}

		metrics.Failures++
		consecutiveFailed++
		excluded[idx] = true

		if consecutiveFailed >= maxConsecutiveFailed {
			if merged := tryRandomMerge(in, cur, stream); merged != nil {
				cur = merged
				metrics.Merges++
				consecutiveFailed = 0
				excluded = make(map[int]bool)
				continue
			}
			break
		}
	}

	cur.Renumber()
	cur.Recompute(in)
	return cur, metrics
}

// smallestEligibleRoute returns the index of the non-excluded route with the
// fewest non-depot stops, ties broken by shortest route distance (spec.md
// §4.5 step 1), or -1 if every route has been excluded.
func smallestEligibleRoute(in *instance.Instance, sol *solution.Solution, excluded map[int]bool) int {
	best, bestLen, bestDist := -1, 0, 0
	for i, r := range sol.Routes {
		if excluded[i] {
			continue
		}
		n := r.NonDepotLen()
		if best == -1 || n < bestLen {
			best, bestLen, bestDist = i, n, solution.RouteDistance(in, r)
			continue
		}
		if n == bestLen {
			if d := solution.RouteDistance(in, r); d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	return best
}

// tryEliminate attempts to remove sol.Routes[idx] by forcibly reinserting
// every one of its requests elsewhere (any feasible placement, regardless
// of the resulting cost increase). Returns the new Solution on success, nil
// on failure; sol itself is never touched.
func tryEliminate(in *instance.Instance, sol *solution.Solution, idx int) *solution.Solution {
	requests := requestsOf(in, sol.Routes[idx])

	attempt := sol.Clone()
	attempt.Routes = append(attempt.Routes[:idx], attempt.Routes[idx+1:]...)

	for _, pair := range requests {
		placement, ok := insertion.BestFeasible(in, attempt, pair)
		if !ok {
			return nil
		}
		if placement.RouteIdx == -1 {
			// No remaining route can host the pair; opening a new route
			// would not eliminate a vehicle, so the attempt fails.
			return nil
		}
		insertion.Apply(attempt, placement, pair)
	}

	attempt.Renumber()
	attempt.Recompute(in)
	if rep := feasibility.Validate(in, attempt); !rep.Feasible() {
		return nil
	}
	return attempt
}

func requestsOf(in *instance.Instance, r *solution.Route) []instance.Pair {
	var out []instance.Pair
	for _, n := range r.Nodes {
		if in.IsPickup(n) {
			out = append(out, instance.Pair{Pickup: n, Delivery: in.DeliveryOf[n]})
		}
	}
	return out
}

// tryRandomMerge picks random distinct route pairs (up to maxMergeAttempts)
// and tries concatenating them end-to-end, in both orders, accepting the
// first feasible result. A successful merge always reduces vehicle count by
// one, which is an unconditional lexicographic improvement (spec.md §3).
func tryRandomMerge(in *instance.Instance, sol *solution.Solution, stream *rng.Stream) *solution.Solution {
	n := len(sol.Routes)
	if n < 2 {
		return nil
	}

	for try := 0; try < maxMergeAttempts; try++ {
		a := stream.Intn(n)
		b := stream.Intn(n)
		if a == b {
			continue
		}

		for _, order := range [][2]int{{a, b}, {b, a}} {
			merged := concatRoutes(sol.Routes[order[0]], sol.Routes[order[1]])
			sched := solution.ComputeSchedule(in, merged)
			if !solution.FeasibleSchedule(in, merged, sched) {
				continue
			}
			attempt := sol.Clone()
			out := make([]*solution.Route, 0, n-1)
			for i, r := range attempt.Routes {
				if i == a || i == b {
					continue
				}
				out = append(out, r)
			}
			out = append(out, merged)
			attempt.Routes = out
			attempt.Renumber()
			attempt.Recompute(in)
			if rep := feasibility.Validate(in, attempt); rep.Feasible() {
				return attempt
			}
		}
	}
	return nil
}

func concatRoutes(tail, head *solution.Route) *solution.Route {
	nodes := make([]int, 0, len(tail.Nodes)+len(head.Nodes)-2)
	nodes = append(nodes, tail.Nodes[:len(tail.Nodes)-1]...)
	nodes = append(nodes, head.Nodes[1:]...)
	return &solution.Route{Nodes: nodes}
}
