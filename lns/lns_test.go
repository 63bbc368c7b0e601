package lns_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/construct"
	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/lns"
	"github.com/katalvlaran/pdptw/rng"
)

// fourPairInstance gives LNS enough requests to exercise destroy+repair
// meaningfully while remaining small enough to reason about directly.
func fourPairInstance(t *testing.T) *instance.Instance {
	t.Helper()
	n := 9 // depot + 4 pairs
	demand := make([]int, n)
	ready := make([]int, n)
	due := make([]int, n)
	service := make([]int, n)
	x := make([]float64, n)
	y := make([]float64, n)
	var pairs []instance.Pair
	for i := 0; i < 4; i++ {
		p, d := 1+2*i, 2+2*i
		demand[p], demand[d] = 3, -3
		due[p], due[d] = 2000, 2000
		x[p], y[p] = float64(10*i), 0
		x[d], y[d] = float64(10*i), 10
		pairs = append(pairs, instance.Pair{Pickup: p, Delivery: d})
	}
	in, err := instance.BuildFromEuclidean(instance.Spec{
		Capacity: 20,
		X:        x, Y: y,
		Demand: demand, Ready: ready, Due: due, Service: service,
		Pairs: pairs,
	})
	require.NoError(t, err)
	return in
}

func TestLNS_PreservesRequestSetAndFeasibility(t *testing.T) {
	in := fourPairInstance(t)
	start, err := construct.Build(in)
	require.NoError(t, err)

	before := start.RequestSet(in)

	opts := lns.DefaultOptions()
	opts.Iterations = 25
	opts.DestroyMin, opts.DestroyMax = 1, 2
	opts.LocalSearchEvery = 5

	result := lns.Run(context.Background(), in, start, rng.New(1), opts)

	after := result.Solution.RequestSet(in)
	assert.Equal(t, before, after)

	rep := feasibility.Validate(in, result.Solution)
	assert.True(t, rep.Feasible())
}

func TestLNS_NeverReturnsWorseThanStart(t *testing.T) {
	in := fourPairInstance(t)
	start, err := construct.Build(in)
	require.NoError(t, err)

	startDist := start.TotalDistance(in)
	startVehicles := start.VehicleCount()

	opts := lns.DefaultOptions()
	opts.Iterations = 25

	result := lns.Run(context.Background(), in, start, rng.New(1), opts)
	assert.True(t,
		result.Solution.VehicleCount() < startVehicles ||
			(result.Solution.VehicleCount() == startVehicles && result.Solution.TotalDistance(in) <= startDist),
	)
}

func TestLNS_RespectsContextCancellation(t *testing.T) {
	in := fourPairInstance(t)
	start, err := construct.Build(in)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := lns.DefaultOptions()
	opts.Iterations = 1000
	result := lns.Run(ctx, in, start, rng.New(1), opts)
	assert.NotNil(t, result.Solution)
}
