package insertion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/internal/insertion"
	"github.com/katalvlaran/pdptw/solution"
)

func threeStopInstance(t *testing.T) *instance.Instance {
	t.Helper()
	// depot=0, first pair (1,2), second pair (3,4); a straight line so
	// inserting (3,4) between (1,2) is strictly cheaper than a new route.
	in, err := instance.Build(instance.Spec{
		Capacity: 100,
		Demand:   []int{0, 5, -5, 5, -5},
		Ready:    []int{0, 0, 0, 0, 0},
		Due:      []int{1000, 1000, 1000, 1000, 1000},
		Service:  []int{0, 0, 0, 0, 0},
		Pairs:    []instance.Pair{{Pickup: 1, Delivery: 2}, {Pickup: 3, Delivery: 4}},
		Dist: [][]int{
			{0, 10, 20, 10, 20},
			{10, 0, 10, 1, 11},
			{20, 10, 0, 11, 1},
			{10, 1, 11, 0, 10},
			{20, 11, 1, 10, 0},
		},
	})
	require.NoError(t, err)
	return in
}

func TestBestFeasible_EmptySolutionOpensNewRoute(t *testing.T) {
	in := threeStopInstance(t)
	sol := solution.New()
	p, ok := insertion.BestFeasible(in, sol, in.Pairs[0])
	require.True(t, ok)
	assert.Equal(t, -1, p.RouteIdx)
}

func TestBestFeasible_PrefersCheaperInRoutePlacement(t *testing.T) {
	in := threeStopInstance(t)
	sol := solution.New()
	sol.Routes = append(sol.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})

	p, ok := insertion.BestFeasible(in, sol, in.Pairs[1])
	require.True(t, ok)
	assert.Equal(t, 0, p.RouteIdx)

	ri := insertion.Apply(sol, p, in.Pairs[1])
	assert.Equal(t, 0, ri)
	assert.Equal(t, 1, sol.VehicleCount())
}

func TestNewRouteFeasible(t *testing.T) {
	in := threeStopInstance(t)
	assert.True(t, insertion.NewRouteFeasible(in, in.Pairs[0]))
}

func TestBestFeasibleK_SortedAscendingAndBounded(t *testing.T) {
	in := threeStopInstance(t)
	sol := solution.New()
	sol.Routes = append(sol.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})

	candidates := insertion.BestFeasibleK(in, sol, in.Pairs[1], 2)
	require.Len(t, candidates, 2)
	assert.LessOrEqual(t, candidates[0].Delta, candidates[1].Delta)
}
