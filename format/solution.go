package format

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/pdptw/solution"
)

// Meta carries the free-text header fields spec.md §6's solution output
// format names; none of it feeds back into the solver, so it lives here
// rather than in the solution package.
type Meta struct {
	InstanceName string
	Authors      string
	Date         string
	Reference    string
}

// WriteSolution renders sol in spec.md §6's exact text format: a header
// block, then one 1-indexed "Route <i> : ..." line per route, non-depot
// nodes only (depot is implicit at both ends).
func WriteSolution(meta Meta, sol *solution.Solution) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Instance name : %s\n", meta.InstanceName)
	fmt.Fprintf(&b, "Authors       : %s\n", meta.Authors)
	fmt.Fprintf(&b, "Date          : %s\n", meta.Date)
	fmt.Fprintf(&b, "Reference     : %s\n", meta.Reference)
	fmt.Fprintln(&b, "Solution")
	for i, r := range sol.Routes {
		fmt.Fprintf(&b, "Route %d :", i+1)
		for _, n := range r.Nodes {
			if n == 0 {
				continue
			}
			fmt.Fprintf(&b, " %d", n)
		}
		fmt.Fprintln(&b)
	}
	return b.Bytes()
}

// ReadSolution parses spec.md §6's output format back into a Solution,
// used by the round-trip property test (spec.md §8): depot nodes are
// reinserted at both ends of every parsed route.
func ReadSolution(data []byte) (*solution.Solution, error) {
	sol := solution.New()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "Route ") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: route line %q", ErrMalformedLine, line)
		}
		fields := strings.Fields(parts[1])
		nodes := make([]int, 0, len(fields)+2)
		nodes = append(nodes, 0)
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: route node %q", ErrMalformedLine, f)
			}
			nodes = append(nodes, n)
		}
		nodes = append(nodes, 0)
		sol.Routes = append(sol.Routes, &solution.Route{Nodes: nodes})
	}
	sol.Renumber()
	return sol, nil
}
