package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/pdptw/format"
	"github.com/katalvlaran/pdptw/solution"
)

func twoRouteSolution() *solution.Solution {
	sol := solution.New()
	sol.Routes = append(sol.Routes,
		&solution.Route{Nodes: []int{0, 1, 2, 0}},
		&solution.Route{Nodes: []int{0, 3, 4, 0}},
	)
	return sol
}

func TestWriteSolution_OmitsDepotAndNumbersRoutesFromOne(t *testing.T) {
	out := format.WriteSolution(format.Meta{InstanceName: "tiny", Authors: "a", Date: "2026-07-31", Reference: "r"}, twoRouteSolution())
	text := string(out)
	assert.Contains(t, text, "Instance name : tiny")
	assert.Contains(t, text, "Route 1 : 1 2")
	assert.Contains(t, text, "Route 2 : 3 4")
}

func TestReadSolution_RoundTripsThroughWriteSolution(t *testing.T) {
	sol := twoRouteSolution()
	out := format.WriteSolution(format.Meta{InstanceName: "tiny"}, sol)

	parsed, err := format.ReadSolution(out)
	assert.NoError(t, err)
	assert.Equal(t, sol.VehicleCount(), parsed.VehicleCount())
	for i, r := range sol.Routes {
		assert.Equal(t, r.Nodes, parsed.Routes[i].Nodes)
	}
}

func TestReadSolution_RejectsMalformedRouteLine(t *testing.T) {
	_, err := format.ReadSolution([]byte("Route 1 : 1 x 2\n"))
	assert.ErrorIs(t, err, format.ErrMalformedLine)
}
