package solution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/solution"
)

func onePairInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.Build(instance.Spec{
		Capacity: 10,
		Demand:   []int{0, 5, -5},
		Ready:    []int{0, 0, 0},
		Due:      []int{100, 100, 100},
		Service:  []int{0, 0, 0},
		Pairs:    []instance.Pair{{Pickup: 1, Delivery: 2}},
		Dist: [][]int{
			{0, 10, 20},
			{10, 0, 10},
			{20, 10, 0},
		},
	})
	require.NoError(t, err)
	return in
}

func TestRouteDistance(t *testing.T) {
	in := onePairInstance(t)
	r := &solution.Route{Nodes: []int{0, 1, 2, 0}}
	assert.Equal(t, 10+10+20, solution.RouteDistance(in, r))
}

func TestSolutionTotalDistanceCache(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})
	assert.Equal(t, 40, s.TotalDistance(in))

	s.Routes[0].Nodes = []int{0, 1, 2, 0}
	s.Invalidate()
	assert.Equal(t, 40, s.TotalDistance(in))
}

func TestSolutionClone_IsDeepCopy(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})
	s.Recompute(in)

	clone := s.Clone()
	clone.Routes[0].Nodes[1] = 2
	clone.Routes[0].Nodes[2] = 1

	assert.Equal(t, []int{0, 1, 2, 0}, s.Routes[0].Nodes)
	assert.Equal(t, []int{0, 2, 1, 0}, clone.Routes[0].Nodes)
}

func TestLess_VehicleCountDominatesDistance(t *testing.T) {
	in := onePairInstance(t)
	oneRoute := solution.New()
	oneRoute.Routes = append(oneRoute.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})

	twoRoutes := solution.New()
	twoRoutes.Routes = append(twoRoutes.Routes,
		&solution.Route{Nodes: []int{0, 1, 0}},
		&solution.Route{Nodes: []int{0, 2, 0}},
	)

	assert.True(t, solution.Less(in, oneRoute, twoRoutes))
	assert.False(t, solution.Less(in, twoRoutes, oneRoute))
}

func TestRenumber_OrdersByFirstStop(t *testing.T) {
	s := solution.New()
	s.Routes = append(s.Routes,
		&solution.Route{Nodes: []int{0, 5, 0}},
		&solution.Route{Nodes: []int{0, 1, 0}},
	)
	s.Renumber()
	assert.Equal(t, 1, s.Routes[0].Nodes[1])
	assert.Equal(t, 5, s.Routes[1].Nodes[1])
}

func TestRequestSet(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})
	set := s.RequestSet(in)
	assert.Equal(t, map[int]bool{1: true}, set)
}
