package construct

import (
	"sort"

	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/solution"
)

// savingPair is one candidate merge: join the route ending at tailRoute's
// last stop to the route starting at headRoute's first stop.
type savingPair struct {
	tailRoute, headRoute int
	value                int
}

// fallbackSavings implements spec.md §4.2's Clarke-Wright-style fallback:
// one route per pair initially, then repeated merging of the two routes
// whose join has the largest positive savings
//
//	s(i,j) = dist(i,0) + dist(0,j) - dist(i,j)
//
// where i is the last stop of one route and j is the first stop of another,
// subject to the merged route staying feasible. Grounded on the savings
// formula in the pack's Clarke-Wright reference
// (other_examples/...vrp_solver.go's haversine Savings(i,j)), lifted from
// single customers to pair-level routes per spec.md's wording.
func fallbackSavings(in *instance.Instance) (*solution.Solution, error) {
	sol := solution.New()
	for _, pair := range in.Pairs {
		if !insertionFeasibleAlone(in, pair) {
			return nil, ErrInfeasible
		}
		sol.Routes = append(sol.Routes, &solution.Route{Nodes: []int{0, pair.Pickup, pair.Delivery, 0}})
	}

	for {
		merged := tryBestMerge(in, sol)
		if !merged {
			break
		}
	}

	sol.Renumber()
	sol.Recompute(in)
	if rep := feasibility.Validate(in, sol); !rep.Feasible() {
		return nil, ErrInfeasible
	}
	return sol, nil
}

func insertionFeasibleAlone(in *instance.Instance, pair instance.Pair) bool {
	r := &solution.Route{Nodes: []int{0, pair.Pickup, pair.Delivery, 0}}
	sched := solution.ComputeSchedule(in, r)
	return solution.FeasibleSchedule(in, r, sched)
}

// tryBestMerge scans all ordered route pairs, ranks them by savings
// descending, and commits the first one (highest savings first) whose
// merged route is feasible. Returns false when no feasible merge remains.
func tryBestMerge(in *instance.Instance, sol *solution.Solution) bool {
	if len(sol.Routes) < 2 {
		return false
	}

	var candidates []savingPair
	for a := range sol.Routes {
		for b := range sol.Routes {
			if a == b {
				continue
			}
			i := lastStop(sol.Routes[a])
			j := firstStop(sol.Routes[b])
			val := in.Dist[i][0] + in.Dist[0][j] - in.Dist[i][j]
			if val > 0 {
				candidates = append(candidates, savingPair{tailRoute: a, headRoute: b, value: val})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].value > candidates[j].value })

	for _, c := range candidates {
		merged := mergeRoutes(sol.Routes[c.tailRoute], sol.Routes[c.headRoute])
		sched := solution.ComputeSchedule(in, merged)
		if !solution.FeasibleSchedule(in, merged, sched) {
			continue
		}
		if !pairsIntact(in, merged) {
			continue
		}
		commitMerge(sol, c.tailRoute, c.headRoute, merged)
		return true
	}
	return false
}

func lastStop(r *solution.Route) int  { return r.Nodes[len(r.Nodes)-2] }
func firstStop(r *solution.Route) int { return r.Nodes[1] }

func mergeRoutes(tail, head *solution.Route) *solution.Route {
	nodes := make([]int, 0, len(tail.Nodes)+len(head.Nodes)-2)
	nodes = append(nodes, tail.Nodes[:len(tail.Nodes)-1]...) // drop trailing depot
	nodes = append(nodes, head.Nodes[1:]...)                 // drop leading depot
	return &solution.Route{Nodes: nodes}
}

// pairsIntact re-checks pickup-before-delivery for every pair now sharing
// the merged route; untouched pairs from either original route already
// satisfied this, but re-checking is O(route length) and keeps this
// function correct independent of how mergeRoutes concatenates.
func pairsIntact(in *instance.Instance, r *solution.Route) bool {
	pos := make(map[int]int, len(r.Nodes))
	for i, n := range r.Nodes {
		pos[n] = i
	}
	for _, n := range r.Nodes {
		if in.IsDelivery(n) {
			if pos[in.PickupOf[n]] >= pos[n] {
				return false
			}
		}
	}
	return true
}

func commitMerge(sol *solution.Solution, tail, head int, merged *solution.Route) {
	out := make([]*solution.Route, 0, len(sol.Routes)-1)
	for i, r := range sol.Routes {
		if i == tail || i == head {
			continue
		}
		out = append(out, r)
	}
	out = append(out, merged)
	sol.Routes = out
	sol.Invalidate()
}
