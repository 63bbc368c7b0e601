package instance

import "math"

// Spec bundles the raw per-node data a caller (typically a format parser)
// has already extracted, before pairing/distance derivation.
type Spec struct {
	Capacity int
	X, Y     []float64 // optional; required only for BuildFromEuclidean
	Demand   []int
	Ready    []int
	Due      []int
	Service  []int
	Pairs    []Pair // pickup/delivery node indices, depot excluded

	// Dist, if non-nil, is used verbatim by Build (Format-A style explicit
	// matrix). BuildFromEuclidean ignores Dist and derives it from X/Y.
	Dist [][]int

	// Speed, if > 0, divides distance to produce travel time (rounded to the
	// nearest integer); zero means travel time equals distance exactly.
	Speed float64
}

// Build constructs an Instance from an explicit distance matrix (Format-A
// style). See BuildFromEuclidean for the Format-B, coordinate-derived path.
func Build(s Spec) (*Instance, error) {
	return build(s, s.Dist)
}

// BuildFromEuclidean constructs an Instance whose distance matrix is
// derived from s.X/s.Y via rounded Euclidean distance (Format-B style).
// Rounding happens exactly once, here, so every downstream consumer reads
// the same integers the validator will later check.
func BuildFromEuclidean(s Spec) (*Instance, error) {
	n := len(s.Demand)
	if len(s.X) != n || len(s.Y) != n {
		return nil, ErrNonSquareDist
	}
	dist := make([][]int, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dx := s.X[i] - s.X[j]
			dy := s.Y[i] - s.Y[j]
			dist[i][j] = round(math.Sqrt(dx*dx + dy*dy))
		}
	}
	return build(s, dist)
}

// build is the shared validation + assembly path for Build/BuildFromEuclidean.
func build(s Spec, dist [][]int) (*Instance, error) {
	n := len(s.Demand)
	if n < 3 {
		return nil, ErrTooFewNodes
	}
	if n%2 == 0 {
		return nil, ErrOddNodeCount
	}
	if s.Capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if len(s.Ready) != n || len(s.Due) != n || len(s.Service) != n {
		return nil, ErrTooFewNodes
	}
	if s.Demand[0] != 0 {
		return nil, ErrDepotDemand
	}
	for i := 0; i < n; i++ {
		if s.Ready[i] > s.Due[i] {
			return nil, ErrBadTimeWindow
		}
		if s.Service[i] < 0 {
			return nil, ErrNegativeService
		}
	}
	if s.Speed < 0 {
		return nil, ErrNonPositiveSpeed
	}

	pickupOf := make([]int, n)
	deliveryOf := make([]int, n)
	seen := make([]bool, n)
	for _, p := range s.Pairs {
		if p.Pickup <= 0 || p.Pickup >= n || p.Delivery <= 0 || p.Delivery >= n {
			return nil, ErrBadPairing
		}
		if seen[p.Pickup] || seen[p.Delivery] || p.Pickup == p.Delivery {
			return nil, ErrBadPairing
		}
		seen[p.Pickup], seen[p.Delivery] = true, true
		if s.Demand[p.Pickup] <= 0 || s.Demand[p.Delivery] >= 0 {
			return nil, ErrBadPairing
		}
		if s.Demand[p.Pickup] != -s.Demand[p.Delivery] {
			return nil, ErrBadPairing
		}
		pickupOf[p.Delivery] = p.Pickup
		deliveryOf[p.Pickup] = p.Delivery
	}
	for i := 1; i < n; i++ {
		if !seen[i] {
			return nil, ErrBadPairing
		}
	}

	if err := validateDistMatrix(dist, n); err != nil {
		return nil, err
	}

	travel := dist
	if s.Speed > 0 && s.Speed != 1 {
		travel = make([][]int, n)
		for i := 0; i < n; i++ {
			travel[i] = make([]int, n)
			for j := 0; j < n; j++ {
				travel[i][j] = round(float64(dist[i][j]) / s.Speed)
			}
		}
	}

	in := &Instance{
		NNodes:     n,
		Capacity:   s.Capacity,
		X:          s.X,
		Y:          s.Y,
		Demand:     s.Demand,
		Ready:      s.Ready,
		Due:        s.Due,
		Service:    s.Service,
		Dist:       dist,
		TravelTime: travel,
		PickupOf:   pickupOf,
		DeliveryOf: deliveryOf,
		Pairs:      append([]Pair(nil), s.Pairs...),
		NRequests:  (n - 1) / 2,
	}
	return in, nil
}

// validateDistMatrix enforces: square, non-negative, zero diagonal,
// symmetric. Mirrors tsp/validate.go's validateDistMatrix staging.
func validateDistMatrix(dist [][]int, n int) error {
	if len(dist) != n {
		return ErrNonSquareDist
	}
	for i := 0; i < n; i++ {
		if len(dist[i]) != n {
			return ErrNonSquareDist
		}
	}
	for i := 0; i < n; i++ {
		if dist[i][i] != 0 {
			return ErrNonZeroDiagonalDist
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if dist[i][j] < 0 {
				return ErrNegativeDist
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if dist[i][j] != dist[j][i] {
				return ErrAsymmetricDist
			}
		}
	}
	return nil
}
