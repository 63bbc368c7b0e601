// Package feasibility implements the single source of truth gating every
// candidate Solution (spec.md §4.1). Every operator that mutates a Solution
// must either leave it feasible (verified here before publication) or
// publish it as a candidate immediately validated by the caller, reverting
// on rejection.
//
// Design, mirroring tsp/validate.go: deterministic, side-effect free,
// total — returns within O(total_nodes) — and never mutates its input.
package feasibility

import (
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/solution"
)

// Kind enumerates the violation kinds named in spec.md §4.1.
type Kind int

const (
	UnpairedDelivery Kind = iota
	DeliveryBeforePickup
	MissingRequest
	DuplicateVisit
	CapacityOverflow
	TimeWindowViolation
	DepotReturnLate
)

// String names a Kind for diagnostic logs.
func (k Kind) String() string {
	switch k {
	case UnpairedDelivery:
		return "unpaired_delivery"
	case DeliveryBeforePickup:
		return "delivery_before_pickup"
	case MissingRequest:
		return "missing_request"
	case DuplicateVisit:
		return "duplicate_visit"
	case CapacityOverflow:
		return "capacity_overflow"
	case TimeWindowViolation:
		return "time_window_violation"
	case DepotReturnLate:
		return "depot_return_late"
	default:
		return "unknown"
	}
}

// Violation is one structured feasibility defect.
type Violation struct {
	Kind     Kind
	Route    int // index into Solution.Routes, or -1 if not route-scoped
	Position int // index into Route.Nodes, or -1 if not position-scoped
	Node     int
	Arrival  int // only meaningful for TimeWindowViolation/DepotReturnLate
	Due      int // only meaningful for TimeWindowViolation/DepotReturnLate
}

// Report is the outcome of Validate: either feasible (len(Violations)==0)
// or a non-empty list of structured defects. Retained for diagnostics; the
// solver never returns an infeasible Solution as a "best effort" result
// (spec.md §7).
type Report struct {
	Violations []Violation
}

// Feasible reports whether the Report carries no violations.
func (r *Report) Feasible() bool { return len(r.Violations) == 0 }

// Validate checks every invariant from spec.md §3 against sol and returns a
// Report. It never mutates sol or in.
func Validate(in *instance.Instance, sol *solution.Solution) *Report {
	rep := &Report{}

	visitCount := make([]int, in.NNodes)
	routeOf := make([]int, in.NNodes)
	posOf := make([]int, in.NNodes)
	for i := range routeOf {
		routeOf[i] = -1
	}

	for ri, r := range sol.Routes {
		if len(r.Nodes) < 2 || r.Nodes[0] != 0 || r.Nodes[len(r.Nodes)-1] != 0 {
			rep.Violations = append(rep.Violations, Violation{Kind: DuplicateVisit, Route: ri, Position: -1, Node: -1})
			continue
		}
		for pos, node := range r.Nodes {
			if node == 0 {
				continue
			}
			visitCount[node]++
			if visitCount[node] > 1 {
				rep.Violations = append(rep.Violations, Violation{Kind: DuplicateVisit, Route: ri, Position: pos, Node: node})
				continue
			}
			routeOf[node] = ri
			posOf[node] = pos
		}
	}

	for node := 1; node < in.NNodes; node++ {
		if visitCount[node] == 0 {
			rep.Violations = append(rep.Violations, Violation{Kind: MissingRequest, Route: -1, Position: -1, Node: node})
			continue
		}
		partner := in.PartnerOf(node)
		if routeOf[partner] == -1 {
			continue // partner missing is reported by its own MissingRequest
		}
		if routeOf[node] != routeOf[partner] {
			rep.Violations = append(rep.Violations, Violation{Kind: UnpairedDelivery, Route: routeOf[node], Position: posOf[node], Node: node})
			continue
		}
		if in.IsDelivery(node) && posOf[node] <= posOf[partner] {
			rep.Violations = append(rep.Violations, Violation{Kind: DeliveryBeforePickup, Route: routeOf[node], Position: posOf[node], Node: node})
		}
	}

	for ri, r := range sol.Routes {
		if len(r.Nodes) < 2 {
			continue
		}
		sched := solution.ComputeSchedule(in, r)
		for pos, node := range r.Nodes {
			if sched.Load[pos] < 0 || sched.Load[pos] > in.Capacity {
				rep.Violations = append(rep.Violations, Violation{Kind: CapacityOverflow, Route: ri, Position: pos, Node: node})
			}
			if sched.Arrival[pos] > in.Due[node] {
				kind := TimeWindowViolation
				if pos == len(r.Nodes)-1 {
					kind = DepotReturnLate
				}
				rep.Violations = append(rep.Violations, Violation{
					Kind: kind, Route: ri, Position: pos, Node: node,
					Arrival: sched.Arrival[pos], Due: in.Due[node],
				})
			}
		}
	}

	return rep
}
