package localsearch

import (
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/internal/insertion"
	"github.com/katalvlaran/pdptw/solution"
)

// relocateSweep tries two neighborhoods once each: single-node relocation
// within a route (reordering one stop without touching its partner), and
// whole-pair relocation across any route (moving both pickup and delivery
// together, possibly to a different vehicle).
func relocateSweep(in *instance.Instance, sol *solution.Solution, dc *deadlineChecker) bool {
	improved := false

	for _, r := range sol.Routes {
		for singleNodeRelocateRoute(in, r, dc) {
			improved = true
		}
		if dc.expired() {
			return improved
		}
	}

	for _, pair := range in.Pairs {
		if pairRelocate(in, sol, pair, dc) {
			improved = true
		}
		if dc.expired() {
			return improved
		}
	}

	if improved {
		sol.Invalidate()
	}
	return improved
}

// singleNodeRelocateRoute moves one non-depot stop to a different position
// in the same route, first-improvement, respecting precedence and the
// schedule. Its partner (pickup or delivery) is untouched, so this never
// needs a cross-route feasibility check.
func singleNodeRelocateRoute(in *instance.Instance, r *solution.Route, dc *deadlineChecker) bool {
	n := len(r.Nodes)
	if n < 4 {
		return false
	}
	baseline := solution.RouteDistance(in, r)

	for j := 1; j <= n-2; j++ {
		for k := 1; k <= n-1; k++ {
			if k == j || k == j+1 {
				continue
			}
			candidate := relocatedCopy(r, j, k)
			if dc.expired() {
				return false
			}
			if !feasible(in, candidate) {
				continue
			}
			if solution.RouteDistance(in, candidate) >= baseline {
				continue
			}
			r.Nodes = candidate.Nodes
			return true
		}
	}
	return false
}

func relocatedCopy(r *solution.Route, j, k int) *solution.Route {
	nodes := append([]int(nil), r.Nodes...)
	node := nodes[j]
	nodes = append(nodes[:j], nodes[j+1:]...)
	insertAt := k
	if k > j {
		insertAt = k - 1
	}
	out := make([]int, 0, len(nodes)+1)
	out = append(out, nodes[:insertAt]...)
	out = append(out, node)
	out = append(out, nodes[insertAt:]...)
	return &solution.Route{Nodes: out}
}

// pairRelocate removes pair from wherever it currently sits and reinserts
// it at its cheapest feasible position anywhere in sol (possibly a
// different route, possibly a brand new one). The move commits only if the
// resulting Solution is lexicographically better (spec.md §3's (vehicle
// count, distance) ordering) than before the attempt, via tryImprove.
func pairRelocate(in *instance.Instance, sol *solution.Solution, pair instance.Pair, dc *deadlineChecker) bool {
	if dc.expired() {
		return false
	}
	return tryImprove(in, sol, func(s *solution.Solution) bool {
		srcIdx := removePair(s, pair)
		if srcIdx == -1 {
			return false
		}
		if len(s.Routes[srcIdx].Nodes) <= 2 {
			s.Routes = append(s.Routes[:srcIdx], s.Routes[srcIdx+1:]...)
		} else if !feasible(in, s.Routes[srcIdx]) {
			return false
		}

		placement, ok := insertion.BestFeasible(in, s, pair)
		if !ok {
			return false
		}
		if placement.RouteIdx == -1 && !insertion.NewRouteFeasible(in, pair) {
			return false
		}
		insertion.Apply(s, placement, pair)
		return true
	})
}

// removePair strips pair's two nodes out of whichever route holds them and
// returns that route's index, or -1 if pair is not present (should not
// happen on a feasible Solution).
func removePair(s *solution.Solution, pair instance.Pair) int {
	for idx, r := range s.Routes {
		found := false
		nodes := make([]int, 0, len(r.Nodes))
		for _, n := range r.Nodes {
			if n == pair.Pickup || n == pair.Delivery {
				found = true
				continue
			}
			nodes = append(nodes, n)
		}
		if found {
			r.Nodes = nodes
			return idx
		}
	}
	return -1
}

// tryImprove clones sol, lets mutate attempt a change, and keeps it only if
// mutate reports success and the result is strictly better by solution.Less.
// Otherwise sol is left exactly as it was. This is the clone-on-accept
// ownership discipline solution.Clone documents, applied to every
// cross-route neighborhood move in this package.
func tryImprove(in *instance.Instance, sol *solution.Solution, mutate func(*solution.Solution) bool) bool {
	before := sol.Clone()
	before.Recompute(in)

	if !mutate(sol) {
		sol.Routes = before.Routes
		sol.Invalidate()
		return false
	}
	sol.Renumber()
	sol.Recompute(in)

	if !solution.Less(in, sol, before) {
		sol.Routes = before.Routes
		sol.Invalidate()
		return false
	}
	return true
}
