package search

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/seehuhn/mt19937"
)

// newRand builds a Mersenne-Twister generator for one worker. Each worker
// owns its generator; nothing here is safe for concurrent use.
func newRand(seed uint64) *rand.Rand {
	src := mt19937.New()
	src.Seed(int64(seed))
	return rand.New(src)
}

func entropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("sbgen: cannot read entropy for seeding: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// distinctPositions draws two distinct indices in [0, 255].
func distinctPositions(rng *rand.Rand) (int, int) {
	p1, p2 := 0, 0
	for p1 == p2 {
		p1 = rng.Intn(256)
		p2 = rng.Intn(256)
	}
	return p1, p2
}
