package ils

import (
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/internal/insertion"
	"github.com/katalvlaran/pdptw/rng"
	"github.com/katalvlaran/pdptw/solution"
)

// minPerturbMoves/maxPerturbMoves bound the "small number" of pair-aware
// moves spec.md §4.6 step 5 applies per perturbation call.
const (
	minPerturbMoves = 2
	maxPerturbMoves = 4
)

// perturbKind selects one of the three pair-aware diversification moves
// spec.md §4.6 step 5 names.
type perturbKind int

const (
	pairRelocateMove perturbKind = iota
	pairSwapMove
	subSegmentShuffleMove
	perturbKindCount
)

// perturb returns a clone of sol with a random count in
// [minPerturbMoves, maxPerturbMoves] of random pair-aware moves applied:
// pair relocate, pair swap between routes, and sub-segment shuffle. It is a
// diversification step, not an intensification one — moves are accepted
// unconditionally here; the caller validates the result and reverts to the
// pre-perturbation Solution if it turns out infeasible (spec.md §4.6 step 5's
// "revert-on-failure").
func perturb(in *instance.Instance, sol *solution.Solution, stream *rng.Stream) *solution.Solution {
	out := sol.Clone()
	if out.VehicleCount() == 0 {
		return out
	}

	count := minPerturbMoves
	if maxPerturbMoves > minPerturbMoves {
		count += stream.Intn(maxPerturbMoves - minPerturbMoves + 1)
	}

	for i := 0; i < count && out.VehicleCount() > 0; i++ {
		switch perturbKind(stream.Intn(int(perturbKindCount))) {
		case pairRelocateMove:
			pairRelocate(in, out, stream)
		case pairSwapMove:
			pairSwap(in, out, stream)
		default:
			subSegmentShuffle(out, stream)
		}
	}

	out.Renumber()
	out.Recompute(in)
	return out
}

// pairRelocate removes one random request and reinserts it at a random
// feasible placement (falling back to a fresh route if none exists),
// mirroring construct/lns's insertion discipline but picking uniformly
// among feasible placements instead of the cheapest one, since the point
// here is to move away from the current basin, not to improve it.
func pairRelocate(in *instance.Instance, sol *solution.Solution, stream *rng.Stream) {
	ri := stream.Intn(sol.VehicleCount())
	pair, ok := randomRequestInRoute(in, sol.Routes[ri], stream)
	if !ok {
		return
	}
	removePairFromRoutes(sol, pair)
	reinsertRandomly(in, sol, pair, stream)
}

// pairSwap removes one random request from each of two distinct routes and
// reinserts both through the same uniformly-random-feasible-placement
// search pairRelocate uses, so the move never silently drops a request.
// The reinsertion is not steered toward the other request's route: each
// request may land in any route, including its own original one, so the
// two requests do not necessarily trade routes.
func pairSwap(in *instance.Instance, sol *solution.Solution, stream *rng.Stream) {
	if sol.VehicleCount() < 2 {
		return
	}
	ra := stream.Intn(sol.VehicleCount())
	rb := stream.Intn(sol.VehicleCount())
	if ra == rb {
		return
	}

	pairA, okA := randomRequestInRoute(in, sol.Routes[ra], stream)
	pairB, okB := randomRequestInRoute(in, sol.Routes[rb], stream)
	if !okA || !okB {
		return
	}

	removePairFromRoutes(sol, pairA)
	removePairFromRoutes(sol, pairB)
	reinsertRandomly(in, sol, pairA, stream)
	reinsertRandomly(in, sol, pairB, stream)
}

// subSegmentShuffle picks a random route with at least four non-depot stops
// and a random contiguous sub-segment of them, then shuffles that segment's
// order in place via rng.Stream.ShuffleInts. The result may be infeasible
// (pair precedence can break); the caller's validate-and-revert handles
// that, matching spec.md §4.6 step 5's revert-on-failure.
func subSegmentShuffle(sol *solution.Solution, stream *rng.Stream) {
	candidates := make([]int, 0, len(sol.Routes))
	for i, r := range sol.Routes {
		if r.NonDepotLen() >= 4 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	r := sol.Routes[candidates[stream.Intn(len(candidates))]]

	n := r.NonDepotLen()
	segLen := 2 + stream.Intn(n-1) // at least 2 stops, up to the whole route
	if segLen > n {
		segLen = n
	}
	start := 1 + stream.Intn(n-segLen+1) // offset into r.Nodes, skipping the leading depot

	stream.ShuffleInts(r.Nodes[start : start+segLen])
	sol.Invalidate()
}

// randomRequestInRoute picks a uniformly random request whose pickup node
// lives in r, using in to tell pickups from deliveries.
func randomRequestInRoute(in *instance.Instance, r *solution.Route, stream *rng.Stream) (instance.Pair, bool) {
	var pickups []int
	for _, n := range r.Nodes {
		if in.IsPickup(n) {
			pickups = append(pickups, n)
		}
	}
	if len(pickups) == 0 {
		return instance.Pair{}, false
	}
	p := pickups[stream.Intn(len(pickups))]
	return instance.Pair{Pickup: p, Delivery: in.DeliveryOf[p]}, true
}

// removePairFromRoutes strips pair's two nodes out of whichever route holds
// them, dropping the route entirely if it becomes empty — the same
// discipline lns.removePairFromSolution follows, duplicated here since that
// helper is unexported in lns.
func removePairFromRoutes(sol *solution.Solution, pair instance.Pair) {
	for idx, r := range sol.Routes {
		found := false
		nodes := make([]int, 0, len(r.Nodes))
		for _, n := range r.Nodes {
			if n == pair.Pickup || n == pair.Delivery {
				found = true
				continue
			}
			nodes = append(nodes, n)
		}
		if !found {
			continue
		}
		r.Nodes = nodes
		if len(r.Nodes) <= 2 {
			sol.Routes = append(sol.Routes[:idx], sol.Routes[idx+1:]...)
		}
		sol.Invalidate()
		return
	}
}

// reinsertRandomly reinserts pair at a uniformly random placement among
// every feasible placement insertion.BestFeasibleK can find (a generous k
// so the sample approximates "uniform over all feasible placements"),
// opening a fresh route only when no existing route can host it.
func reinsertRandomly(in *instance.Instance, sol *solution.Solution, pair instance.Pair, stream *rng.Stream) {
	const sampleWidth = 64
	placements := insertion.BestFeasibleK(in, sol, pair, sampleWidth)
	inRoute := make([]insertion.Placement, 0, len(placements))
	for _, p := range placements {
		if p.RouteIdx != -1 {
			inRoute = append(inRoute, p)
		}
	}
	if len(inRoute) == 0 {
		insertion.Apply(sol, insertion.Placement{RouteIdx: -1}, pair)
		return
	}
	choice := inRoute[stream.Intn(len(inRoute))]
	insertion.Apply(sol, choice, pair)
}
