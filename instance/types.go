// Package instance defines the immutable problem data for the Pickup and
// Delivery Problem with Time Windows: nodes, time windows, demand, pairing,
// and the distance/travel-time matrices every other CORE package reads from.
//
// Design goals (matching the teacher's tsp/dijkstra packages):
//   - Strict sentinel errors; no fmt.Errorf where a sentinel suffices.
//   - Determinism: distances are integers, rounded once at construction.
//   - Immutability: once Build succeeds, an Instance is never mutated.
package instance

import (
	"errors"
	"math"
)

// Validation / input-shape errors.
var (
	// ErrTooFewNodes indicates fewer than 3 nodes (depot + at least one pair).
	ErrTooFewNodes = errors.New("instance: fewer than 3 nodes (need depot + >=1 pair)")

	// ErrOddNodeCount indicates the non-depot nodes do not pair up evenly.
	ErrOddNodeCount = errors.New("instance: non-depot node count is odd, cannot pair")

	// ErrNegativeCapacity indicates a negative vehicle capacity was supplied.
	ErrNegativeCapacity = errors.New("instance: capacity must be non-negative")

	// ErrBadTimeWindow indicates ready[i] > due[i] for some node.
	ErrBadTimeWindow = errors.New("instance: ready > due for some node")

	// ErrNegativeService indicates a negative service duration.
	ErrNegativeService = errors.New("instance: negative service duration")

	// ErrDepotDemand indicates the depot (node 0) has non-zero demand.
	ErrDepotDemand = errors.New("instance: depot demand must be zero")

	// ErrBadPairing indicates pickup_of/delivery_of is not a bijection over
	// exactly the non-depot nodes, or a pickup/delivery demand sign mismatch.
	ErrBadPairing = errors.New("instance: pickup/delivery pairing is inconsistent")

	// ErrNonSquareDist indicates the supplied distance matrix is not n×n.
	ErrNonSquareDist = errors.New("instance: distance matrix is not square")

	// ErrNegativeDist indicates a negative entry in the distance matrix.
	ErrNegativeDist = errors.New("instance: negative distance encountered")

	// ErrAsymmetricDist indicates dist[i][j] != dist[j][i].
	ErrAsymmetricDist = errors.New("instance: asymmetric distance matrix")

	// ErrNonZeroDiagonalDist indicates dist[i][i] != 0 for some i.
	ErrNonZeroDiagonalDist = errors.New("instance: non-zero self-distance")

	// ErrNonPositiveSpeed indicates a negative speed factor was supplied
	// (zero is accepted and means travel time equals distance).
	ErrNonPositiveSpeed = errors.New("instance: speed factor must not be negative")
)

// Pair identifies one pickup-delivery request by node index.
type Pair struct {
	Pickup   int
	Delivery int
}

// Instance is the immutable problem data shared read-only by every solver
// component. Build the zero value only via Build/BuildFromEuclidean; the
// exported fields are read-only by convention once construction succeeds.
type Instance struct {
	NNodes   int
	Capacity int

	// Per-node data, indexed by node id in [0, NNodes).
	X, Y     []float64 // coordinates, only meaningful for Euclidean instances
	Demand   []int     // signed: positive pickup, negative delivery, zero depot
	Ready    []int
	Due      []int
	Service  []int

	// Dist[i][j] is the symmetric, non-negative, integer travel distance.
	// TravelTime[i][j] equals Dist[i][j] unless a speed factor was supplied.
	Dist       [][]int
	TravelTime [][]int

	// PickupOf[d] = p and DeliveryOf[p] = d for every pair (p, d); both are
	// zero (depot, which is never a pickup or delivery) for indices that are
	// not part of a pair — but every non-depot index is part of exactly one.
	PickupOf   []int
	DeliveryOf []int
	Pairs      []Pair

	NRequests int
}

// IsPickup reports whether node i is a pickup node.
func (in *Instance) IsPickup(i int) bool { return i != 0 && in.DeliveryOf[i] != 0 }

// IsDelivery reports whether node i is a delivery node.
func (in *Instance) IsDelivery(i int) bool { return i != 0 && in.PickupOf[i] != 0 }

// PartnerOf returns the paired node for a pickup or delivery node, or 0 for
// the depot.
func (in *Instance) PartnerOf(i int) int {
	if i == 0 {
		return 0
	}
	if in.IsPickup(i) {
		return in.DeliveryOf[i]
	}
	return in.PickupOf[i]
}

// round rounds x to the nearest integer, half-away-from-zero, matching
// math.Round. Kept as a named helper so every caller uses the identical
// rounding convention (spec.md §9's "mixed rounding must not occur").
func round(x float64) int { return int(math.Round(x)) }
