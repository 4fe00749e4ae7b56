package sbox

import (
	"math/bits"
	"math/rand"
)

// EraseFixedPoints searches for an affine variant of s without fixed points
// or inverse fixed points: s'[i] = ROL(s[ROL(i, shift1)], shift2) ^ mask.
// Rotations and xor preserve every spectral property we target, so the
// returned S-box scores identically to the input. The parameter walk is
// random, seeded by seed.
func EraseFixedPoints(s Sbox, seed uint64) Sbox {
	if !HasFixedPoints(s) {
		return s
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	var res Sbox
	for {
		shift1 := rng.Intn(8)
		shift2 := rng.Intn(8)
		mask := byte(rng.Intn(256))

		for i := 0; i < 256; i++ {
			res[i] = bits.RotateLeft8(s[bits.RotateLeft8(byte(i), shift1)], shift2) ^ mask
		}
		if !HasFixedPoints(res) {
			return res
		}
	}
}
