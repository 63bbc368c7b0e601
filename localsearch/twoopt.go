package localsearch

import (
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/solution"
)

// twoOptSweep runs deterministic first-improvement intra-route 2-opt on
// every route in turn. A reversal is accepted only if it shortens the
// route, keeps every stop within its time window and capacity, and keeps
// every pair's pickup strictly before its delivery (a plain TSP reversal
// has no such precedence constraint; PDPTW does).
func twoOptSweep(in *instance.Instance, sol *solution.Solution, dc *deadlineChecker) bool {
	anyImproved := false
	for _, r := range sol.Routes {
		for twoOptRoute(in, r, dc) {
			anyImproved = true
			if dc.expired() {
				return anyImproved
			}
		}
	}
	if anyImproved {
		sol.Invalidate()
	}
	return anyImproved
}

// twoOptRoute applies at most one improving reversal to r and reports
// whether it did. Callers loop until it returns false (local optimum).
func twoOptRoute(in *instance.Instance, r *solution.Route, dc *deadlineChecker) bool {
	n := len(r.Nodes)
	if n < 5 { // need at least 3 interior stops: reversing a lone pair always breaks precedence
		return false
	}
	baseline := solution.RouteDistance(in, r)

	for i := 1; i <= n-3; i++ {
		for k := i + 1; k <= n-2; k++ {
			candidate := reversedCopy(r, i, k)
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

func reversedCopy(r *solution.Route, i, k int) *solution.Route {
	nodes := append([]int(nil), r.Nodes...)
	for lo, hi := i, k; lo < hi; lo, hi = lo+1, hi-1 {
		nodes[lo], nodes[hi] = nodes[hi], nodes[lo]
	}
	return &solution.Route{Nodes: nodes}
}
