package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/pdptw/rng"
)

func TestNew_SameSeedProducesSameDraws(t *testing.T) {
	a := rng.New(7)
	b := rng.New(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestNew_ZeroSeedIsReproducible(t *testing.T) {
	a := rng.New(0)
	b := rng.New(0)
	assert.Equal(t, a.Intn(1000), b.Intn(1000))
}

func TestDerive_SameIDProducesSameSubStream(t *testing.T) {
	a := rng.New(42).Derive(3)
	b := rng.New(42).Derive(3)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestDerive_DifferentIDsDiverge(t *testing.T) {
	parent := rng.New(42)
	a := parent.Derive(1)
	b := parent.Derive(2)

	diverged := false
	for i := 0; i < 20; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "expected distinct derive ids to produce different draw sequences")
}

func TestDerive_DoesNotCorrelateWithParentFutureDraws(t *testing.T) {
	parent := rng.New(42)
	child := parent.Derive(1)

	childDraws := make([]int, 10)
	for i := range childDraws {
		childDraws[i] = child.Intn(1_000_000)
	}

	parentDraws := make([]int, 10)
	for i := range parentDraws {
		parentDraws[i] = parent.Intn(1_000_000)
	}

	assert.NotEqual(t, childDraws, parentDraws)
}

func TestPickN_ReturnsKDistinctIndicesInRange(t *testing.T) {
	s := rng.New(1)
	scratch := make([]int, 10)
	picked := s.PickN(10, 4, scratch)

	assert.Len(t, picked, 4)
	seen := map[int]bool{}
	for _, v := range picked {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
		assert.False(t, seen[v], "PickN returned a duplicate index")
		seen[v] = true
	}
}

func TestPickN_ClampsKToN(t *testing.T) {
	s := rng.New(1)
	scratch := make([]int, 3)
	picked := s.PickN(3, 10, scratch)
	assert.Len(t, picked, 3)
}

func TestShuffleInts_IsAPermutationOfTheInput(t *testing.T) {
	s := rng.New(5)
	a := []int{0, 1, 2, 3, 4, 5, 6, 7}
	before := append([]int(nil), a...)
	s.ShuffleInts(a)

	assert.ElementsMatch(t, before, a)
}
