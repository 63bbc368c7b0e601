package lns

import (
	"github.com/katalvlaran/pdptw/instance"
	"github.com/katalvlaran/pdptw/rng"
	"github.com/katalvlaran/pdptw/solution"
)

// relatedness weights from spec.md §4.3: distance, time-window, and
// same-route identity contribute 0.4/0.4/0.2 to Shaw's relatedness score
// (w_d, w_t, w_r).
const (
	weightDistance = 0.4
	weightTime     = 0.4
	weightRoute    = 0.2
)

// destroy removes a random count in [min, max] requests from sol (which is
// mutated in place) and returns them, using the configured neighborhood.
func destroy(in *instance.Instance, sol *solution.Solution, stream *rng.Stream, kind DestroyKind, min, max int) []instance.Pair {
	count := min
	if max > min {
		count = min + stream.Intn(max-min+1)
	}
	if count > in.NRequests {
		count = in.NRequests
	}
	if count <= 0 {
		return nil
	}

	var chosen []instance.Pair
	switch kind {
	case ShawRelated:
		chosen = shawRelated(in, sol, stream, count)
	default:
		chosen = randomPairs(in, stream, count)
	}

	for _, pair := range chosen {
		removePairFromSolution(sol, pair)
	}
	sol.Invalidate()
	return chosen
}

// randomPairs samples count distinct requests uniformly without
// replacement, via rng.Stream.PickN (partial Fisher-Yates).
func randomPairs(in *instance.Instance, stream *rng.Stream, count int) []instance.Pair {
	scratch := make([]int, len(in.Pairs))
	idx := stream.PickN(len(in.Pairs), count, scratch)
	out := make([]instance.Pair, len(idx))
	for i, j := range idx {
		out[i] = in.Pairs[j]
	}
	return out
}

// shawRelated seeds on one random request, then repeatedly adds whichever
// remaining request is most related (lowest weighted distance/time/route
// score) to the already-chosen cluster's most recent member. This produces
// geographically/temporally/structurally clustered removals, which
// greedy/regret repair can usually reinsert more cheaply than a uniformly
// random slice.
func shawRelated(in *instance.Instance, sol *solution.Solution, stream *rng.Stream, count int) []instance.Pair {
	remaining := append([]instance.Pair(nil), in.Pairs...)
	seedIdx := stream.Intn(len(remaining))
	chosen := []instance.Pair{remaining[seedIdx]}
	remaining = append(remaining[:seedIdx], remaining[seedIdx+1:]...)

	maxDist, maxTime := normalizers(in)
	routeOf := nodeRouteIndex(sol)

	for len(chosen) < count && len(remaining) > 0 {
		anchor := chosen[len(chosen)-1]
		bestIdx, bestScore := -1, 0.0
		for i, cand := range remaining {
			sameRoute := routeOf[anchor.Pickup] == routeOf[cand.Pickup]
			score := relatedness(in, sameRoute, anchor, cand, maxDist, maxTime)
			if bestIdx == -1 || score < bestScore {
				bestIdx, bestScore = i, score
			}
		}
		chosen = append(chosen, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return chosen
}

// nodeRouteIndex maps every non-depot node to the index of the route
// carrying it, so relatedness can test "identity of containing route"
// (spec.md §4.3's w_r term) without an O(routes) scan per comparison.
func nodeRouteIndex(sol *solution.Solution) map[int]int {
	idx := make(map[int]int)
	for ri, r := range sol.Routes {
		for _, n := range r.Nodes {
			if n != 0 {
				idx[n] = ri
			}
		}
	}
	return idx
}

func normalizers(in *instance.Instance) (maxDist, maxTime float64) {
	maxDist, maxTime = 1, 1
	for i := 0; i < in.NNodes; i++ {
		for j := 0; j < in.NNodes; j++ {
			if d := float64(in.Dist[i][j]); d > maxDist {
				maxDist = d
			}
		}
	}
	for _, p := range in.Pairs {
		if t := absInt(in.Ready[p.Pickup] - in.Ready[p.Delivery]); float64(t) > maxTime {
			maxTime = float64(t)
		}
	}
	return
}

// relatedness is Shaw's pairwise score between requests A and B: lower
// means more related (more worth removing together). Combines normalized
// inverse pickup-to-pickup and delivery-to-delivery distance, normalized
// inverse time-window-centre difference, and whether A and B currently
// share a route, weighted w_d/w_t/w_r (spec.md §4.3).
func relatedness(in *instance.Instance, sameRoute bool, a, b instance.Pair, maxDist, maxTime float64) float64 {
	d := (float64(in.Dist[a.Pickup][b.Pickup]) + float64(in.Dist[a.Delivery][b.Delivery])) / (2 * maxDist)
	// Window centres are compared doubled ((ready+due) rather than half of
	// it) to stay in integers; the halving is folded into the divisor.
	t := float64(absInt((in.Ready[a.Pickup]+in.Due[a.Pickup])-(in.Ready[b.Pickup]+in.Due[b.Pickup]))) / (2 * maxTime)
	r := 1.0
	if sameRoute {
		r = 0
	}
	return weightDistance*d + weightTime*t + weightRoute*r
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// removePairFromSolution strips pair's two nodes out of whichever route
// holds them, dropping the route entirely if it becomes empty.
func removePairFromSolution(sol *solution.Solution, pair instance.Pair) {
	for idx, r := range sol.Routes {
		found := false
		nodes := make([]int, 0, len(r.Nodes))
		for _, n := range r.Nodes {
			if n == pair.Pickup || n == pair.Delivery {
				found = true
				continue
			}
			nodes = append(nodes, n)
		}
		if !found {
			continue
		}
		r.Nodes = nodes
		if len(r.Nodes) <= 2 {
			sol.Routes = append(sol.Routes[:idx], sol.Routes[idx+1:]...)
		}
		return
	}
}
