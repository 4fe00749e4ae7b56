package sbox

import "math/bits"

// oneBits[v] is the Hamming weight of the byte value v.
var oneBits [256]uint8

// bitTable[v] holds the eight bits of v, most significant first. The
// algebraic-immunity monomial expansion indexes into it.
var bitTable [256][8]uint8

func init() {
	for v := 0; v < 256; v++ {
		oneBits[v] = uint8(bits.OnesCount8(uint8(v)))
		for k := 0; k < 8; k++ {
			bitTable[v][k] = uint8(v>>(7-k)) & 0x01
		}
	}
}
