package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kandiyiit/sbgen/pkg/sbox"
)

func TestCycleCrossoverBijective(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		a := sbox.Random(rng)
		b := sbox.Random(rng)
		child := CycleCrossover(a, b, rng)
		assert.True(t, child.IsBijective())

		// Every child position comes from one of the parents.
		for p := 0; p < 256; p++ {
			assert.True(t, child[p] == a[p] || child[p] == b[p], "position %d", p)
		}
	}
}

func TestCycleCrossoverOfEqualParents(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	a := sbox.Random(rng)
	child := CycleCrossover(a, a, rng)
	assert.Equal(t, a, child)
}

func TestPMXCrossoverBijective(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		a := sbox.Random(rng)
		b := sbox.Random(rng)
		child := PMXCrossover(a, b, rng)
		assert.True(t, child.IsBijective())
	}
}

func TestPMXCrossoverKeepsSegmentOfA(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	a := sbox.Random(rng)
	b := sbox.Random(rng)
	child := PMXCrossover(a, b, rng)

	// At least one position carries parent a's value (the copied segment).
	fromA := 0
	for p := 0; p < 256; p++ {
		if child[p] == a[p] {
			fromA++
		}
	}
	assert.Greater(t, fromA, 0)
}
