package solution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/pdptw/solution"
)

func TestComputeSchedule_RespectsReadyTime(t *testing.T) {
	in := onePairInstance(t)
	in.Ready[2] = 50 // delivery can't start before t=50

	r := &solution.Route{Nodes: []int{0, 1, 2, 0}}
	sched := solution.ComputeSchedule(in, r)

	assert.Equal(t, 0, sched.Arrival[0])
	assert.Equal(t, 10, sched.Arrival[1])  // depot -> 1, dist 10
	assert.Equal(t, 50, sched.Arrival[2])  // waits for ready time instead of arriving at 20
	assert.True(t, solution.FeasibleSchedule(in, r, sched))
}

func TestFeasibleSchedule_RejectsLateArrival(t *testing.T) {
	in := onePairInstance(t)
	in.Due[2] = 5 // impossible to reach node 2 by t=5

	r := &solution.Route{Nodes: []int{0, 1, 2, 0}}
	sched := solution.ComputeSchedule(in, r)
	assert.False(t, solution.FeasibleSchedule(in, r, sched))
}

func TestFeasibleSchedule_RejectsCapacityOverflow(t *testing.T) {
	in := onePairInstance(t)
	in.Capacity = 1 // demand[1] == 5 already overflows

	r := &solution.Route{Nodes: []int{0, 1, 2, 0}}
	sched := solution.ComputeSchedule(in, r)
	assert.False(t, solution.FeasibleSchedule(in, r, sched))
}
