// Package insertion implements the pair-aware cheapest-feasible-insertion
// search shared by construct (initial build), lns (repair), and ages
// (forced redistribution). Factoring it once keeps all three components
// agreeing on exactly what "cheapest feasible insertion" means, matching
// spec.md §4.2's and §4.3's identical wording for the operation.
package insertion

import (
	"sort"

	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/solution"
)

// Placement names where a pair would land if inserted.
type Placement struct {
	RouteIdx  int // index into sol.Routes, or -1 meaning "open a new route"
	PickupPos int // position in the (pre-insertion) route the pickup is inserted before
	DeliverPos int // position in the (pre-insertion) route the delivery is inserted before,
	// counted in the ORIGINAL route's index space like PickupPos; Apply
	// accounts for the shift the inserted pickup causes, so callers should
	// use Apply rather than re-deriving indices.
	Delta int // cost increase from this placement; 0 for RouteIdx==-1 (new route)
}

// BestFeasible scans every open route and every valid (pickup-position,
// delivery-position) combination within it, returning the placement with
// the smallest feasible cost delta. If no open route admits a feasible
// placement, it returns a Placement with RouteIdx == -1 (caller should open
// a new route with just this pair). ok is always true: whether that fresh
// route is itself feasible is not checked here, so callers check it with
// NewRouteFeasible.
func BestFeasible(in *instance.Instance, sol *solution.Solution, pair instance.Pair) (Placement, bool) {
	best := Placement{RouteIdx: -1, Delta: 0}
	found := false

	for ri, r := range sol.Routes {
		n := len(r.Nodes)
		for pp := 1; pp < n; pp++ {
			for dp := pp; dp < n; dp++ {
				candidate := buildCandidate(r.Nodes, pair, pp, dp)
				if !feasibleRoute(in, candidate) {
					continue
				}
				delta := routeLen(in, candidate) - solution.RouteDistance(in, r)
				if !found || delta < best.Delta {
					best = Placement{RouteIdx: ri, PickupPos: pp, DeliverPos: dp, Delta: delta}
					found = true
				}
			}
		}
	}

	if found {
		return best, true
	}

	// No open route can host the pair; a fresh route is always the fallback
	// unless the pair is infeasible even alone (caller surfaces that by
	// calling feasibleRoute on [0, p, d, 0] itself, e.g. via NewRouteFeasible).
	return Placement{RouteIdx: -1}, true
}

// NewRouteFeasible reports whether opening a fresh [0, p, d, 0] route for
// pair is itself feasible — used to detect construction_infeasible.
func NewRouteFeasible(in *instance.Instance, pair instance.Pair) bool {
	route := &solution.Route{Nodes: []int{0, pair.Pickup, pair.Delivery, 0}}
	return feasibleRoute(in, route)
}

// BestFeasibleK returns up to k feasible placements for pair, sorted by
// ascending cost delta, for regret-k repair (spec.md §4.3). The new-route
// option is appended with its actual three-edge cost (unlike BestFeasible,
// which only ever uses it as a last resort) so regret scoring can compare
// it against in-route placements on equal footing.
func BestFeasibleK(in *instance.Instance, sol *solution.Solution, pair instance.Pair, k int) []Placement {
	var candidates []Placement
	for ri, r := range sol.Routes {
		n := len(r.Nodes)
		for pp := 1; pp < n; pp++ {
			for dp := pp; dp < n; dp++ {
				candidate := buildCandidate(r.Nodes, pair, pp, dp)
				if !feasibleRoute(in, candidate) {
					continue
				}
				delta := routeLen(in, candidate) - solution.RouteDistance(in, r)
				candidates = append(candidates, Placement{RouteIdx: ri, PickupPos: pp, DeliverPos: dp, Delta: delta})
			}
		}
	}
	if NewRouteFeasible(in, pair) {
		cost := in.Dist[0][pair.Pickup] + in.Dist[pair.Pickup][pair.Delivery] + in.Dist[pair.Delivery][0]
		candidates = append(candidates, Placement{RouteIdx: -1, Delta: cost})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Delta < candidates[j].Delta })
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// Apply inserts pair into sol per placement, mutating sol in place. If
// placement.RouteIdx == -1, a new route is appended. Returns the mutated or
// newly appended route's index.
func Apply(sol *solution.Solution, placement Placement, pair instance.Pair) int {
	if placement.RouteIdx == -1 {
		sol.Routes = append(sol.Routes, &solution.Route{Nodes: []int{0, pair.Pickup, pair.Delivery, 0}})
		sol.Invalidate()
		return len(sol.Routes) - 1
	}
	r := sol.Routes[placement.RouteIdx]
	r.Nodes = buildCandidate(r.Nodes, pair, placement.PickupPos, placement.DeliverPos).Nodes
	sol.Invalidate()
	return placement.RouteIdx
}

// buildCandidate returns a new Route with pair's pickup inserted before
// index pp and delivery inserted before index dp, both measured in the
// ORIGINAL nodes slice's index space (dp >= pp, matching pickup-before-
// delivery).
func buildCandidate(nodes []int, pair instance.Pair, pp, dp int) *solution.Route {
	out := make([]int, 0, len(nodes)+2)
	out = append(out, nodes[:pp]...)
	out = append(out, pair.Pickup)
	out = append(out, nodes[pp:dp]...)
	out = append(out, pair.Delivery)
	out = append(out, nodes[dp:]...)
	return &solution.Route{Nodes: out}
}

func feasibleRoute(in *instance.Instance, r *solution.Route) bool {
	sched := solution.ComputeSchedule(in, r)
	return solution.FeasibleSchedule(in, r, sched)
}

func routeLen(in *instance.Instance, r *solution.Route) int {
	return solution.RouteDistance(in, r)
}
