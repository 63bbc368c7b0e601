// Package solution defines the mutable route collection produced by every
// CORE algorithm (constructor, local search, LNS, AGES, ILS) and the
// lexicographic (vehicle count, then distance) ordering used to compare
// candidates throughout the search.
//
// Ownership (spec.md §3): a Solution is owned by whichever component is
// currently mutating it. Clone() is the only way a candidate crosses an
// ownership boundary — callers that want to keep mutating after handing a
// Solution to another component must Clone() first.
package solution

import "github.com/katalvlaran/pdptw/instance"

// Route is a closed sequence of node indices: Nodes[0] == Nodes[len-1] == 0
// (the depot). Nodes has length >= 2; an empty route (just the depot twice)
// is never retained in a Solution (spec.md §3 invariant 5).
type Route struct {
	Nodes []int
}

// NonDepotLen returns the number of non-depot stops on the route.
func (r *Route) NonDepotLen() int {
	if len(r.Nodes) < 2 {
		return 0
	}
	return len(r.Nodes) - 2
}

// Clone returns a deep copy of the route.
func (r *Route) Clone() *Route {
	nodes := make([]int, len(r.Nodes))
	copy(nodes, r.Nodes)
	return &Route{Nodes: nodes}
}

// Solution is the mutable set of routes under construction or refinement.
// Distance is cached; code that mutates Routes directly must call
// Invalidate or Recompute afterwards so the cache never drifts.
type Solution struct {
	Routes   []*Route
	distance int
	distDone bool
}

// New returns an empty Solution (zero routes).
func New() *Solution {
	return &Solution{}
}

// VehicleCount returns the number of non-empty routes.
func (s *Solution) VehicleCount() int { return len(s.Routes) }

// TotalDistance returns the cached Σ edge length across all routes,
// recomputing once if the cache is stale.
func (s *Solution) TotalDistance(in *instance.Instance) int {
	if !s.distDone {
		s.Recompute(in)
	}
	return s.distance
}

// Recompute forces recomputation of the cached total distance. Call after
// any direct mutation of Routes that bypassed the helpers in this package.
func (s *Solution) Recompute(in *instance.Instance) {
	total := 0
	for _, r := range s.Routes {
		total += RouteDistance(in, r)
	}
	s.distance = total
	s.distDone = true
}

// Invalidate marks the distance cache stale without recomputing; the next
// TotalDistance call will recompute it.
func (s *Solution) Invalidate() { s.distDone = false }

// RouteDistance sums the edge lengths along a single route.
func RouteDistance(in *instance.Instance, r *Route) int {
	total := 0
	for i := 0; i+1 < len(r.Nodes); i++ {
		total += in.Dist[r.Nodes[i]][r.Nodes[i+1]]
	}
	return total
}

// Clone returns a deep copy of the Solution, including the distance cache
// (cheap: an int), so candidates can be handed across ownership boundaries
// (spec.md §5: "solutions are copied on acceptance, not on each candidate").
func (s *Solution) Clone() *Solution {
	routes := make([]*Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	return &Solution{Routes: routes, distance: s.distance, distDone: s.distDone}
}

// Renumber reorders Routes by the index of each route's first non-depot
// node, resolving spec.md §9's open question about route iteration
// stability under perturbation. Call after any structural mutation that can
// reorder or add/remove routes.
func (s *Solution) Renumber() {
	sortRoutesByFirstStop(s.Routes)
}

func sortRoutesByFirstStop(routes []*Route) {
	// Insertion sort: route counts are small (tens), and this runs only
	// after structural mutations, never inside a hot per-candidate loop.
	for i := 1; i < len(routes); i++ {
		j := i
		for j > 0 && firstStop(routes[j-1]) > firstStop(routes[j]) {
			routes[j-1], routes[j] = routes[j], routes[j-1]
			j--
		}
	}
}

func firstStop(r *Route) int {
	if len(r.Nodes) < 2 {
		return -1
	}
	return r.Nodes[1]
}

// Less implements the lexicographic ordering from spec.md §3: fewer
// vehicles wins outright; equal vehicle counts fall back to total distance.
func Less(in *instance.Instance, a, b *Solution) bool {
	av, bv := a.VehicleCount(), b.VehicleCount()
	if av != bv {
		return av < bv
	}
	return a.TotalDistance(in) < b.TotalDistance(in)
}

// RequestSet returns the set of pair-indices (by pickup node id) present
// across every route — used by the LNS tests to assert that destroy+repair
// preserves the request set (spec.md §8).
func (s *Solution) RequestSet(in *instance.Instance) map[int]bool {
	out := make(map[int]bool, in.NRequests)
	for _, r := range s.Routes {
		for _, node := range r.Nodes {
			if in.IsPickup(node) {
				out[node] = true
			}
		}
	}
	return out
}
