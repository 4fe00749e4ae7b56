package cost

import (
	"math"

	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// whsKernel is shared by WHS and MaxWHS: each absolute spectrum value v
// contributes |v-x|^r. A negative r is a read-only switch to the reciprocal
// form, skipping zero bases.
func whsKernel[T Number](r, x int32) Function[T] {
	return func(s sbox.Sbox) Info[T] {
		var total T
		maxAbs := sweep(s, func(v int32) {
			base := v - x
			if base < 0 {
				base = -base
			}
			if r >= 0 {
				total += ipow(T(base), r)
			} else if base != 0 {
				total += 1 / ipow(T(base), -r)
			}
		})
		return Info[T]{Cost: total, Nonlinearity: nl(maxAbs)}
	}
}

// WHS is the classic Walsh spectrum cost of Clark et al.
func WHS[T Number](r, x int32) Function[T] {
	return whsKernel[T](r, x)
}

// MaxWHS applies the WHS formula; it is kept as a distinct kind so
// configurations written against the original tool keep working.
func MaxWHS[T Number](r, x int32) Function[T] {
	return whsKernel[T](r, x)
}

// WCF penalises only spectrum values above 32, with the product
// (v-0)(v-4)...(v-32). An S-box at nonlinearity 112 scores exactly zero.
func WCF[T Number]() Function[T] {
	return func(s sbox.Sbox) Info[T] {
		var total T
		maxAbs := sweep(s, func(v int32) {
			if v <= 32 {
				return
			}
			part := T(1)
			for k := int32(32); k >= 0; k -= 4 {
				part *= T(v - k)
			}
			total += part
		})
		return Info[T]{Cost: total, Nonlinearity: nl(maxAbs)}
	}
}

// PCF folds the whole sweep into a histogram of absolute spectrum values,
// finds the top occupied bucket m (searched in steps of 4 from 256 down) and
// sums hist[m-i] / 2^i for i = 0..n-1, i.e. the n consecutive indices
// starting at m.
func PCF[T Number](n int32) Function[T] {
	return func(s sbox.Sbox) Info[T] {
		var hist [257]int32
		maxAbs := sweep(s, func(v int32) {
			hist[v]++
		})

		m := 256
		for m >= 4 && hist[m] == 0 {
			m -= 4
		}

		var total T
		for i := int32(0); i < n && m-int(i) >= 0; i++ {
			total += T(hist[m-int(i)]) / T(int32(1)<<i)
		}
		return Info[T]{Cost: total, Nonlinearity: nl(maxAbs)}
	}
}

// CF1 ignores values at or below the threshold x and charges |v-y|^r / 4 for
// the rest. The negative-r reciprocal form mirrors WHS.
func CF1[T Number](r, x, y int32) Function[T] {
	return func(s sbox.Sbox) Info[T] {
		var total T
		maxAbs := sweep(s, func(v int32) {
			if v <= x {
				return
			}
			base := v - y
			if base < 0 {
				base = -base
			}
			if r >= 0 {
				total += ipow(T(base), r) / 4
			} else if base != 0 {
				total += 1 / (ipow(T(base), -r) * 4)
			}
		})
		return Info[T]{Cost: total, Nonlinearity: nl(maxAbs)}
	}
}

// CF2 charges 2^(((v-y)/4)*r) for values above x. The integer domain floor
// divides (v-y) by 4 and realises the power as a shift, which must stay
// inside 64 bits; the floating-point domain uses a real pow.
func CF2[T Number](r, x, y int32) Function[T] {
	_, integerDomain := any(T(0)).(int64)

	return func(s sbox.Sbox) Info[T] {
		var total T
		maxAbs := sweep(s, func(v int32) {
			if v <= x {
				return
			}
			if integerDomain {
				e := ((v - y) / 4) * r
				if e < 0 || e >= 64 {
					panic("sbgen: cf2 shift width out of the int64 domain")
				}
				total += T(int64(1) << uint(e))
			} else {
				total += T(math.Pow(2, float64(v-y)/4*float64(r)))
			}
		})
		return Info[T]{Cost: total, Nonlinearity: nl(maxAbs)}
	}
}
