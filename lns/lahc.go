package lns

// lahc implements Late Acceptance Hill Climbing (spec.md §4.3): a
// candidate is accepted if it is no worse than the solution that was
// current `history` iterations ago, tracked via a fixed-length circular
// buffer of objective values (vehicle count, distance) rather than the
// objective itself, so the comparison stays exact integer arithmetic.
type lahc struct {
	buf  []lahcKey
	pos  int
	full bool
}

// lahcKey mirrors solution.Less's lexicographic key so LAHC's "no worse
// than" comparison agrees with every other acceptance test in this module.
type lahcKey struct {
	vehicles int
	distance int
}

func newLAHC(length int, seed lahcKey) *lahc {
	if length < 1 {
		length = 1
	}
	buf := make([]lahcKey, length)
	for i := range buf {
		buf[i] = seed
	}
	return &lahc{buf: buf}
}

// check reports whether candidate is acceptable under spec.md §4.3's LAHC
// rule: no worse than the value that was current `length` iterations back,
// *or* no worse than current itself. The second branch is what lets LAHC
// keep accepting genuine improvements even when the history slot still
// holds a stale, better-than-current value from an earlier lucky iteration.
// check does not mutate the history; call record once the accept/reject
// decision is final, with whichever Solution ends up current afterwards.
func (l *lahc) check(candidate, current lahcKey) bool {
	return lessOrEqual(candidate, l.buf[l.pos]) || lessOrEqual(candidate, current)
}

// record overwrites the current history slot with postDecision — the key
// of whatever Solution is current after this iteration's accept/reject
// decision (the candidate if accepted, the unchanged prior current if
// rejected) — then advances the circular position.
func (l *lahc) record(postDecision lahcKey) {
	l.buf[l.pos] = postDecision
	l.pos = (l.pos + 1) % len(l.buf)
}

func lessOrEqual(a, b lahcKey) bool {
	if a.vehicles != b.vehicles {
		return a.vehicles < b.vehicles
	}
	return a.distance <= b.distance
}
