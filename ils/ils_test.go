package ils_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/ils"
	"github.com/katalvlaran/pdptw/instance"
)

func threePairInstance(t *testing.T) *instance.Instance {
	t.Helper()
	n := 7
	x := make([]float64, n)
	y := make([]float64, n)
	demand := make([]int, n)
	ready := make([]int, n)
	due := make([]int, n)
	service := make([]int, n)
	var pairs []instance.Pair
	for i := 0; i < 3; i++ {
		p, d := 1+2*i, 2+2*i
		demand[p], demand[d] = 4, -4
		due[p], due[d] = 2000, 2000
		x[p], y[p] = float64(20*i), 0
		x[d], y[d] = float64(20*i), 15
		pairs = append(pairs, instance.Pair{Pickup: p, Delivery: d})
	}
	in, err := instance.BuildFromEuclidean(instance.Spec{
		Capacity: 10,
		X:        x, Y: y,
		Demand: demand, Ready: ready, Due: due, Service: service,
		Pairs: pairs,
	})
	require.NoError(t, err)
	return in
}

func TestSolve_ReturnsFeasibleSolution(t *testing.T) {
	in := threePairInstance(t)
	opts := ils.DefaultOptions()
	opts.TimeLimit = 500 * time.Millisecond
	opts.MaxIterations = 5
	opts.LNS.Iterations = 20

	result, err := ils.Solve(context.Background(), in, opts)
	require.NoError(t, err)

	rep := feasibility.Validate(in, result.Solution)
	assert.True(t, rep.Feasible())
	assert.GreaterOrEqual(t, result.Solution.VehicleCount(), 1)
}

func TestSolve_DeterministicGivenSameSeed(t *testing.T) {
	in := threePairInstance(t)
	opts := ils.DefaultOptions()
	opts.TimeLimit = 0
	opts.MaxIterations = 5
	opts.LNS.Iterations = 20
	opts.Seed = 42

	r1, err := ils.Solve(context.Background(), in, opts)
	require.NoError(t, err)
	r2, err := ils.Solve(context.Background(), in, opts)
	require.NoError(t, err)

	assert.Equal(t, r1.Solution.VehicleCount(), r2.Solution.VehicleCount())
	assert.Equal(t, r1.Solution.TotalDistance(in), r2.Solution.TotalDistance(in))
}

func TestSolve_CancelledContextReturnsBestIncumbent(t *testing.T) {
	in := threePairInstance(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := ils.DefaultOptions()
	result, err := ils.Solve(ctx, in, opts)
	require.NoError(t, err)
	assert.NotNil(t, result.Solution)
	assert.True(t, result.Metrics.StoppedByCtx)
}
