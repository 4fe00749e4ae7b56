package sbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFWHTConstantZero(t *testing.T) {
	var tt [256]uint8
	var spectrum [256]int32

	FWHT(&tt, &spectrum)

	// The constant-zero function is perfectly correlated with the zero mask.
	assert.EqualValues(t, 256, spectrum[0])
	for i := 1; i < 256; i++ {
		assert.EqualValues(t, 0, spectrum[i], "index %d", i)
	}
}

func TestFWHTConstantOne(t *testing.T) {
	var tt [256]uint8
	var spectrum [256]int32
	for i := range tt {
		tt[i] = 1
	}

	FWHT(&tt, &spectrum)

	assert.EqualValues(t, -256, spectrum[0])
	for i := 1; i < 256; i++ {
		assert.EqualValues(t, 0, spectrum[i], "index %d", i)
	}
}

func TestFWHTBalanced(t *testing.T) {
	// Components of a bijection are balanced, so spectrum[0] must be 0 and
	// every entry stays within +-256.
	s := aesSbox
	var tt [256]uint8
	var spectrum [256]int32

	for b := 1; b < 256; b++ {
		s.Component(b, &tt)
		FWHT(&tt, &spectrum)
		assert.EqualValues(t, 0, spectrum[0], "mask %d", b)
		for i := 0; i < 256; i++ {
			v := spectrum[i]
			if v < 0 {
				v = -v
			}
			assert.LessOrEqual(t, v, int32(256))
		}
	}
}

func TestComponentParity(t *testing.T) {
	s := Identity()
	var tt [256]uint8
	s.Component(0x81, &tt)
	// parity of bits 7 and 0
	assert.EqualValues(t, 0, tt[0x00])
	assert.EqualValues(t, 1, tt[0x01])
	assert.EqualValues(t, 1, tt[0x80])
	assert.EqualValues(t, 0, tt[0x81])
}

func TestGF2RankFullAndDeficient(t *testing.T) {
	mat := make([][256]bool, 4)
	for i := 0; i < 4; i++ {
		mat[i][i] = true
	}
	assert.Equal(t, 4, gf2Rank(mat, 4))

	mat = make([][256]bool, 3)
	mat[0][0] = true
	mat[1][1] = true
	// row 2 = row 0 + row 1
	mat[2][0] = true
	mat[2][1] = true
	assert.Equal(t, 2, gf2Rank(mat, 3))

	mat = make([][256]bool, 2)
	assert.Equal(t, 0, gf2Rank(mat, 2))
}
