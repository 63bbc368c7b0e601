package feasibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/feasibility"
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

func TestValidate_FeasibleSolution(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})
	rep := feasibility.Validate(in, s)
	assert.True(t, rep.Feasible())
}

func TestValidate_DeliveryBeforePickup(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 2, 1, 0}})
	rep := feasibility.Validate(in, s)
	require.False(t, rep.Feasible())
	assert.Equal(t, feasibility.DeliveryBeforePickup, rep.Violations[0].Kind)
}

func TestValidate_MissingRequest(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	rep := feasibility.Validate(in, s)
	require.False(t, rep.Feasible())
	found := false
	for _, v := range rep.Violations {
		if v.Kind == feasibility.MissingRequest {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_DuplicateVisit(t *testing.T) {
	in := onePairInstance(t)
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 1, 2, 0}})
	rep := feasibility.Validate(in, s)
	require.False(t, rep.Feasible())
	found := false
	for _, v := range rep.Violations {
		if v.Kind == feasibility.DuplicateVisit {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_CapacityOverflow(t *testing.T) {
	in := onePairInstance(t)
	in.Capacity = 1
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})
	rep := feasibility.Validate(in, s)
	require.False(t, rep.Feasible())
	assert.Equal(t, feasibility.CapacityOverflow, rep.Violations[0].Kind)
}

func TestValidate_TimeWindowViolation(t *testing.T) {
	in := onePairInstance(t)
	in.Due[2] = 5
	s := solution.New()
	s.Routes = append(s.Routes, &solution.Route{Nodes: []int{0, 1, 2, 0}})
	rep := feasibility.Validate(in, s)
	require.False(t, rep.Feasible())
	assert.Equal(t, feasibility.TimeWindowViolation, rep.Violations[0].Kind)
}
