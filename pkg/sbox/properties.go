package sbox

// Nonlinearity returns 128 - max|spectrum|/2 over the spectra of all 255
// nonzero component functions. Bijective 8-bit permutations score at most
// 120; known strong S-boxes reach 104-112.
func Nonlinearity(s Sbox) int32 {
	var tt [256]uint8
	var spectrum [256]int32
	maxSpectrum := int32(0)

	for b := 1; b < 256; b++ {
		s.Component(b, &tt)
		FWHT(&tt, &spectrum)
		for i := 0; i < 256; i++ {
			v := spectrum[i]
			if v < 0 {
				v = -v
			}
			if v > maxSpectrum {
				maxSpectrum = v
			}
		}
	}

	return 128 - maxSpectrum/2
}

// DeltaUniformity returns the maximum entry of the difference distribution
// table: max over a != 0, any b, of |{x : s[x] ^ s[x^a] = b}|.
func DeltaUniformity(s Sbox) int32 {
	maxRes := int32(0)
	var counts [256]int32

	for a := 1; a < 256; a++ {
		counts = [256]int32{}
		for x := 0; x < 256; x++ {
			counts[s[x]^s[x^a]]++
		}
		for b := 0; b < 256; b++ {
			if counts[b] > maxRes {
				maxRes = counts[b]
			}
		}
	}

	return maxRes
}

// monomialRows is the number of monomials of degree <= 2 in 16 variables:
// the constant, 16 linear terms and C(16,2) = 120 products.
const monomialRows = 137

// toMonomials expands the 16 bit values in vars into the monomial vector of
// degree maxDeg. Index 0 is the constant 1, indices 1..16 the linear terms,
// 17..136 the pairwise products in lexicographic order.
func toMonomials(vars *[16]uint8, out *[monomialRows]bool, maxDeg int) {
	out[0] = true
	for i := 1; i <= 16; i++ {
		out[i] = vars[i-1] != 0
	}
	if maxDeg < 2 {
		return
	}
	pos := 17
	for i := 1; i < 16; i++ {
		for j := i + 1; j <= 16; j++ {
			out[pos] = out[i] && out[j]
			pos++
		}
	}
}

func graphVars(s Sbox, i int, vars *[16]uint8) {
	y := s[i]
	for k := 0; k < 8; k++ {
		vars[k] = bitTable[i][k]
		vars[8+k] = bitTable[y][k]
	}
}

// AlgebraicImmunity returns the minimum degree of a nonzero annihilating
// polynomial of the S-box graph, capped at 3: a full-rank degree-2 monomial
// matrix means no quadratic annihilator exists (AI >= 3), otherwise the
// linear matrix decides between 2 and 1.
func AlgebraicImmunity(s Sbox) int32 {
	var vars [16]uint8
	var row [monomialRows]bool
	mat := make([][256]bool, monomialRows)

	for i := 0; i < 256; i++ {
		graphVars(s, i, &vars)
		toMonomials(&vars, &row, 2)
		for j := 0; j < monomialRows; j++ {
			mat[j][i] = row[j]
		}
	}
	if gf2Rank(mat, monomialRows) == monomialRows {
		return 3
	}

	for i := 0; i < 256; i++ {
		graphVars(s, i, &vars)
		toMonomials(&vars, &row, 1)
		for j := 0; j < 17; j++ {
			mat[j][i] = row[j]
		}
	}
	if gf2Rank(mat, 17) == 17 {
		return 2
	}

	return 1
}

// HasFixedPoints reports whether some input maps to itself or to its
// complement.
func HasFixedPoints(s Sbox) bool {
	for i := 0; i < 256; i++ {
		if s[i] == byte(i) || s[i] == byte(i)^0xFF {
			return true
		}
	}
	return false
}
