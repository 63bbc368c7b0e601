package solution

import "github.com/katalvlaran/pdptw/instance"

// Schedule is the per-stop arrival-time and cumulative-load trace for one
// route, computed per spec.md §3 invariant 3 (time windows) and invariant 4
// (capacity). It is the shared substrate the feasibility validator and every
// local-search delta computation read from, so they can never disagree about
// what "feasible" means (spec.md §4.1's single-source-of-truth requirement).
type Schedule struct {
	Arrival []int // Arrival[i] is the arrival time at Nodes[i]
	Load    []int // Load[i] is the cumulative load departing Nodes[i]
}

// ComputeSchedule walks the route once, applying:
//
//	a[0] = 0
//	a[i+1] = max(a[i] + service(v_i) + travel(v_i, v_i+1), ready(v_i+1))
//
// and the running load (pickup adds, delivery subtracts). It never rejects
// anything itself — out-of-window arrivals and out-of-capacity loads are
// left in Arrival/Load for the caller (typically feasibility.Validate) to
// detect against Ready/Due/Capacity.
func ComputeSchedule(in *instance.Instance, r *Route) *Schedule {
	n := len(r.Nodes)
	sched := &Schedule{Arrival: make([]int, n), Load: make([]int, n)}
	if n == 0 {
		return sched
	}
	sched.Arrival[0] = 0
	sched.Load[0] = in.Demand[r.Nodes[0]]
	for i := 0; i+1 < n; i++ {
		u, v := r.Nodes[i], r.Nodes[i+1]
		depart := sched.Arrival[i] + in.Service[u] + in.TravelTime[u][v]
		arrival := depart
		if in.Ready[v] > arrival {
			arrival = in.Ready[v]
		}
		sched.Arrival[i+1] = arrival
		sched.Load[i+1] = sched.Load[i] + in.Demand[v]
	}
	return sched
}

// FeasibleSchedule reports whether every stop's arrival is within its time
// window and every cumulative load stays within [0, capacity]. It does not
// check pairing/precedence — that is feasibility.Validate's job, which also
// needs Schedule for the time-window/capacity half of its report.
func FeasibleSchedule(in *instance.Instance, r *Route, sched *Schedule) bool {
	for i, node := range r.Nodes {
		if sched.Arrival[i] > in.Due[node] {
			return false
		}
		if sched.Load[i] < 0 || sched.Load[i] > in.Capacity {
			return false
		}
	}
	return true
}
