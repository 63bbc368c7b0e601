package lns

import (
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/internal/insertion"
	"github.com/katalvlaran/pdptw/solution"
)

// repair reinserts every request in removed back into sol using the
// configured neighborhood. Returns false if any request cannot be placed
// even in a fresh route — sol is left partially repaired in that case, and
// the caller (Run) is responsible for discarding it.
func repair(in *instance.Instance, sol *solution.Solution, removed []instance.Pair, kind RepairKind, regretDepth int) bool {
	switch kind {
	case RegretK:
		return repairRegret(in, sol, removed, regretDepth)
	default:
		return repairGreedy(in, sol, removed)
	}
}

// repairGreedy inserts each removed request at its own cheapest feasible
// placement, in the order removed arrived (spec.md §4.3's baseline repair).
func repairGreedy(in *instance.Instance, sol *solution.Solution, removed []instance.Pair) bool {
	for _, pair := range removed {
		if !insertOne(in, sol, pair) {
			return false
		}
	}
	return true
}

// repairRegret reinserts requests in decreasing order of "regret": the sum
// of cost gaps between a request's best feasible placement and each of its
// next k-1 best (for k=2, second-best minus best). Requests
// with few good options are seated first, before their best slots are taken
// by something else.
func repairRegret(in *instance.Instance, sol *solution.Solution, removed []instance.Pair, k int) bool {
	if k < 2 {
		k = 2
	}
	pending := append([]instance.Pair(nil), removed...)

	for len(pending) > 0 {
		bestIdx, bestRegret := -1, -1.0
		var bestPlacement insertion.Placement
		for i, pair := range pending {
			candidates := insertion.BestFeasibleK(in, sol, pair, k)
			if len(candidates) == 0 {
				return false
			}
			regret := 0.0
			for j := 1; j < len(candidates); j++ {
				regret += float64(candidates[j].Delta - candidates[0].Delta)
			}
			if bestIdx == -1 || regret > bestRegret {
				bestIdx, bestRegret, bestPlacement = i, regret, candidates[0]
			}
		}
		pair := pending[bestIdx]
		if bestPlacement.RouteIdx == -1 && !insertion.NewRouteFeasible(in, pair) {
			return false
		}
		insertion.Apply(sol, bestPlacement, pair)
		pending = append(pending[:bestIdx], pending[bestIdx+1:]...)
	}
	return true
}

func insertOne(in *instance.Instance, sol *solution.Solution, pair instance.Pair) bool {
	placement, ok := insertion.BestFeasible(in, sol, pair)
	if !ok {
		return false
	}
	if placement.RouteIdx == -1 && !insertion.NewRouteFeasible(in, pair) {
		return false
	}
	insertion.Apply(sol, placement, pair)
	return true
}
