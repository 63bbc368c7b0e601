// Package construct builds an initial feasible Solution via pair-level
// greedy insertion (spec.md §4.2), falling back to a Clarke-Wright-style
// savings merge when greedy insertion cannot place every pair.
package construct

import (
	"errors"
	"sort"

	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/internal/insertion"
	"github.com/katalvlaran/pdptw/solution"
)

// ErrInfeasible is returned when neither greedy insertion nor the savings
// fallback can produce a feasible Solution — surfaced at the public
// boundary as construction_infeasible (spec.md §7).
var ErrInfeasible = errors.New("construct: no feasible solution exists for this instance")

// Build runs the constructor: sort pairs by (due(pickup) asc, window-width
// asc), greedily insert each at its cheapest feasible position, opening a
// new route whenever no open route can host it. Falls back to Savings if
// greedy insertion leaves any pair unplaceable even in a fresh route.
func Build(in *instance.Instance) (*solution.Solution, error) {
	order := sortedPairs(in)

	sol := solution.New()
	for _, pair := range order {
		placement, ok := insertion.BestFeasible(in, sol, pair)
		if !ok {
			return fallbackSavings(in)
		}
		if placement.RouteIdx == -1 && !insertion.NewRouteFeasible(in, pair) {
			return fallbackSavings(in)
		}
		insertion.Apply(sol, placement, pair)
	}

	sol.Renumber()
	sol.Recompute(in)
	return sol, nil
}

// sortedPairs orders pairs primarily by ascending due(pickup), secondarily
// by ascending time-window width of the pickup (spec.md §4.2 step 1).
func sortedPairs(in *instance.Instance) []instance.Pair {
	order := append([]instance.Pair(nil), in.Pairs...)
	sort.Slice(order, func(i, j int) bool {
		pi, pj := order[i].Pickup, order[j].Pickup
		if in.Due[pi] != in.Due[pj] {
			return in.Due[pi] < in.Due[pj]
		}
		wi := in.Due[pi] - in.Ready[pi]
		wj := in.Due[pj] - in.Ready[pj]
		return wi < wj
	})
	return order
}
