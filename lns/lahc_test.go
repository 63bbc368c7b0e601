package lns

import "testing"

// irrelevant is a current key that is strictly better than every candidate
// under test, so it never triggers the check's "<= current" branch — tests
// that want to isolate the history-only comparison pass this as current.
var irrelevant = lahcKey{vehicles: 0, distance: 0}

func TestLAHC_AcceptsNoWorseThanHistory(t *testing.T) {
	seed := lahcKey{vehicles: 2, distance: 100}
	chain := newLAHC(3, seed)

	if !chain.check(lahcKey{vehicles: 2, distance: 100}, irrelevant) {
		t.Fatal("expected equal-to-history candidate to be accepted")
	}
	if !chain.check(lahcKey{vehicles: 2, distance: 50}, irrelevant) {
		t.Fatal("expected better-than-history candidate to be accepted")
	}
	if chain.check(lahcKey{vehicles: 2, distance: 150}, irrelevant) {
		t.Fatal("expected worse-than-history candidate to be rejected")
	}
}

func TestLAHC_FewerVehiclesAlwaysWins(t *testing.T) {
	seed := lahcKey{vehicles: 3, distance: 10}
	chain := newLAHC(1, seed)
	if !chain.check(lahcKey{vehicles: 2, distance: 10000}, irrelevant) {
		t.Fatal("expected fewer vehicles to dominate distance in the LAHC check")
	}
}

func TestLAHC_RecordWrapsCircularly(t *testing.T) {
	seed := lahcKey{vehicles: 1, distance: 0}
	chain := newLAHC(2, seed)

	chain.record(lahcKey{vehicles: 1, distance: 10})
	chain.record(lahcKey{vehicles: 1, distance: 20})
	// buf is now [10, 20], pos wrapped back to 0.
	if chain.check(lahcKey{vehicles: 1, distance: 5}, irrelevant) != true {
		t.Fatal("expected candidate better than buf[0]==10 to be accepted")
	}
	if chain.check(lahcKey{vehicles: 1, distance: 15}, irrelevant) != false {
		t.Fatal("expected candidate worse than buf[0]==10 to be rejected")
	}
}

// TestLAHC_AcceptsWhenNoWorseThanCurrentEvenIfHistoryIsStale covers
// spec.md §4.3 step 5's disjunction: a candidate that is worse than a stale
// (better) history entry must still be accepted if it is no worse than
// current, so genuine improvements over a drifted current are never
// rejected just because an early lucky iteration left a low value behind.
func TestLAHC_AcceptsWhenNoWorseThanCurrentEvenIfHistoryIsStale(t *testing.T) {
	staleGoodHistory := lahcKey{vehicles: 2, distance: 10}
	chain := newLAHC(1, staleGoodHistory)

	candidate := lahcKey{vehicles: 2, distance: 500}
	driftedCurrent := lahcKey{vehicles: 2, distance: 600}

	if !chain.check(candidate, driftedCurrent) {
		t.Fatal("expected candidate no worse than current to be accepted despite a stale better history entry")
	}
}
