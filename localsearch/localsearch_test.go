package localsearch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/localsearch"
	"github.com/katalvlaran/pdptw/solution"
)

// crossedRoutePair builds two pickup/delivery pairs laid out so visiting
// them in pickup/pickup/delivery/delivery order crosses (like a 2-opt
// textbook "bowtie"), while the uncrossed order is strictly shorter and
// stays feasible — mirroring tsp/two_opt_test.go's convex-hexagon crossing
// case, adapted to carry precedence/capacity.
func crossedRoutePairInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.Build(instance.Spec{
		Capacity: 100,
		Demand:   []int{0, 5, 5, -5, -5},
		Ready:    []int{0, 0, 0, 0, 0},
		Due:      []int{1000, 1000, 1000, 1000, 1000},
		Service:  []int{0, 0, 0, 0, 0},
		Pairs:    []instance.Pair{{Pickup: 1, Delivery: 3}, {Pickup: 2, Delivery: 4}},
		Dist: [][]int{
			{0, 10, 10, 14, 14},
			{10, 0, 14, 10, 24},
			{10, 14, 0, 24, 10},
			{14, 10, 24, 0, 14},
			{14, 24, 10, 14, 0},
		},
	})
	require.NoError(t, err)
	return in
}

func TestRun_ImprovesCrossedRouteAndStaysFeasible(t *testing.T) {
	in := crossedRoutePairInstance(t)
	sol := solution.New()
	// crossed order: 1,2,3,4 visits pickup1, pickup2, delivery1, delivery2.
	sol.Routes = append(sol.Routes, &solution.Route{Nodes: []int{0, 1, 2, 3, 4, 0}})
	before := sol.TotalDistance(in)

	err := localsearch.Run(in, sol, localsearch.Options{})
	require.NoError(t, err)

	after := sol.TotalDistance(in)
	assert.Less(t, after, before)

	rep := feasibility.Validate(in, sol)
	assert.True(t, rep.Feasible())
}

func TestRun_NeverWorsensDistance(t *testing.T) {
	in := crossedRoutePairInstance(t)
	sol := solution.New()
	sol.Routes = append(sol.Routes, &solution.Route{Nodes: []int{0, 1, 3, 2, 4, 0}})
	before := sol.TotalDistance(in)

	err := localsearch.Run(in, sol, localsearch.Options{MaxPasses: 3})
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.TotalDistance(in), before)
}
