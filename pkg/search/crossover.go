package search

import (
	"math/rand"

	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// CrossoverMethod combines two parent permutations into one child. Both
// operators below preserve bijectivity by construction.
type CrossoverMethod func(a, b sbox.Sbox, rng *rand.Rand) sbox.Sbox

// CycleCrossover copies one cycle of parent a starting at a random position
// and fills the rest from parent b. The cycle follows res[p] = a[p],
// next p = the index holding b[p] in a, until it closes.
func CycleCrossover(a, b sbox.Sbox, rng *rand.Rand) sbox.Sbox {
	var inv [256]int
	for i := 0; i < 256; i++ {
		inv[a[i]] = i
	}

	var res sbox.Sbox
	var written [256]bool

	start := rng.Intn(256)
	p := start
	for {
		res[p] = a[p]
		written[p] = true
		p = inv[b[p]]
		if p == start {
			break
		}
	}

	for i := 0; i < 256; i++ {
		if !written[i] {
			res[i] = b[i]
		}
	}
	return res
}

// PMXCrossover copies the segment a[s..e] and maps every clashing value from
// b through the a->b correspondence until it lands on a free one.
func PMXCrossover(a, b sbox.Sbox, rng *rand.Rand) sbox.Sbox {
	var inv [256]int
	for i := 0; i < 256; i++ {
		inv[a[i]] = i
	}

	start, end := 0, 0
	for start == end {
		start = rng.Intn(256)
		end = rng.Intn(256)
		if start > end {
			start, end = end, start
		}
	}

	var res sbox.Sbox
	var inSegment [256]bool
	var usedValue [256]bool
	for i := start; i <= end; i++ {
		res[i] = a[i]
		inSegment[i] = true
		usedValue[a[i]] = true
	}

	for i := 0; i < 256; i++ {
		if inSegment[i] {
			continue
		}
		v := b[i]
		for usedValue[v] {
			v = b[inv[v]]
		}
		res[i] = v
		usedValue[v] = true
	}
	return res
}
