// Package localsearch implements the route-level local search used to
// polish a Solution between LNS/AGES rounds (spec.md §4.6): intra-route
// 2-opt, single-node and whole-pair relocate (intra and inter-route), and
// node/pair exchange (intra and inter-route). Every move is accepted only
// if the resulting route(s) stay feasible and every pair keeps its
// pickup-before-delivery, same-route invariant — so local search can never
// be the thing that introduces an infeasible Solution.
//
// Design mirrors tsp/two_opt.go: deterministic first-improvement scanning,
// restart after every accepted move, a soft wall-clock deadline checked
// every 2048 candidate evaluations, and strict sentinel errors. Unlike a
// plain TSP tour, PDPTW routes carry precedence and capacity, so move
// deltas are recomputed via solution.ComputeSchedule rather than the O(1)
// edge-weight algebra a bare cycle permits.
package localsearch

import (
	"errors"
	"time"

	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/solution"
)

// ErrTimeLimit is returned when Run's soft deadline elapses mid-pass.
var ErrTimeLimit = errors.New("localsearch: time limit exceeded")

// Options configures Run.
type Options struct {
	TimeLimit time.Duration // 0 disables the deadline
	MaxPasses int           // 0 ⇒ run until a full cycle finds no improvement
}

// deadlineChecker throttles time.Now() calls the same way two_opt.go does.
type deadlineChecker struct {
	enabled  bool
	deadline time.Time
	step     int
}

func newDeadlineChecker(limit time.Duration) *deadlineChecker {
	if limit <= 0 {
		return &deadlineChecker{}
	}
	return &deadlineChecker{enabled: true, deadline: time.Now().Add(limit)}
}

func (d *deadlineChecker) expired() bool {
	d.step++
	if !d.enabled || (d.step&2047) != 0 {
		return false
	}
	return time.Now().After(d.deadline)
}

// Run repeatedly sweeps 2-opt, relocate, and exchange across every route
// pair until one full cycle makes no improving move (a local optimum under
// the combined neighborhood) or the deadline/pass budget is exhausted. It
// mutates sol in place and always leaves it feasible, since every operator
// only commits moves it has already checked.
func Run(in *instance.Instance, sol *solution.Solution, opts Options) error {
	dc := newDeadlineChecker(opts.TimeLimit)

	passes := 0
	for {
		improved := false

		if twoOptSweep(in, sol, dc) {
			improved = true
		}
		if dc.expired() {
			return ErrTimeLimit
		}
		if relocateSweep(in, sol, dc) {
			improved = true
		}
		if dc.expired() {
			return ErrTimeLimit
		}
		if exchangeSweep(in, sol, dc) {
			improved = true
		}
		if dc.expired() {
			return ErrTimeLimit
		}

		passes++
		if !improved {
			break
		}
		if opts.MaxPasses > 0 && passes >= opts.MaxPasses {
			break
		}
	}

	sol.Recompute(in)
	return nil
}

// precedenceOK reports whether every pair touching r still has its pickup
// strictly before its delivery within r. Used after every move that
// reorders nodes inside a single route; inter-route moves that split a
// pair are rejected earlier, before this check is ever needed.
func precedenceOK(in *instance.Instance, r *solution.Route) bool {
	pos := make(map[int]int, len(r.Nodes))
	for i, n := range r.Nodes {
		pos[n] = i
	}
	for _, n := range r.Nodes {
		if n == 0 {
			continue
		}
		if in.IsDelivery(n) {
			pp, okp := pos[in.PickupOf[n]]
			if !okp || pp >= pos[n] {
				return false
			}
		}
	}
	return true
}

func feasible(in *instance.Instance, r *solution.Route) bool {
	sched := solution.ComputeSchedule(in, r)
	return solution.FeasibleSchedule(in, r, sched) && precedenceOK(in, r)
}
