package pdptw_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw"
	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/instance"
)

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

func TestSolve_ReturnsFeasibleSolution(t *testing.T) {
	in := fourPairInstance(t)
	cfg := pdptw.DefaultConfig()
	cfg.TimeLimit = 500 * time.Millisecond
	cfg.MaxIterations = 5
	cfg.LNSIterations = 20

	result, err := pdptw.Solve(context.Background(), in, cfg)
	require.NoError(t, err)

	rep := feasibility.Validate(in, result.Solution)
	assert.True(t, rep.Feasible())
}

func TestSolve_DeterministicGivenSameSeed(t *testing.T) {
	in := fourPairInstance(t)
	cfg := pdptw.DefaultConfig()
	cfg.TimeLimit = 0
	cfg.MaxIterations = 5
	cfg.LNSIterations = 20
	cfg.Seed = 7

	r1, err := pdptw.Solve(context.Background(), in, cfg)
	require.NoError(t, err)
	r2, err := pdptw.Solve(context.Background(), in, cfg)
	require.NoError(t, err)

	assert.Equal(t, r1.Solution.VehicleCount(), r2.Solution.VehicleCount())
	assert.Equal(t, r1.Solution.TotalDistance(in), r2.Solution.TotalDistance(in))
}
