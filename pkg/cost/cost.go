package cost

import (
	"github.com/go-errors/errors"

	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// Number is the numeric domain a search runs in. The original tool exposes
// the same choice as double vs int64_t.
type Number interface {
	~int64 | ~float64
}

// Info is the result of scoring one permutation: the scalar cost the engine
// minimises and the nonlinearity extracted from the same spectrum sweep.
type Info[T Number] struct {
	Cost         T
	Nonlinearity int32
}

// Function scores a permutation. Implementations are pure: no shared state,
// safe to call from any number of workers at once.
type Function[T Number] func(s sbox.Sbox) Info[T]

// Kind names a cost function for configuration surfaces.
type Kind string

const (
	KindWHS    Kind = "whs"
	KindMaxWHS Kind = "max_whs"
	KindWCF    Kind = "wcf"
	KindPCF    Kind = "pcf"
	KindCF1    Kind = "cf1"
	KindCF2    Kind = "cf2"
)

// New resolves a kind plus its parameter list into a scoring closure. The
// parameter arity is fixed per kind: whs/max_whs take (r, x), pcf takes (n),
// cf1/cf2 take (r, x, y), wcf takes nothing.
func New[T Number](kind Kind, params []int32) (Function[T], error) {
	switch kind {
	case KindWHS:
		if len(params) != 2 {
			return nil, errors.Errorf("cost function whs expects 2 parameters (r, x), got %d", len(params))
		}
		return WHS[T](params[0], params[1]), nil
	case KindMaxWHS:
		if len(params) != 2 {
			return nil, errors.Errorf("cost function max_whs expects 2 parameters (r, x), got %d", len(params))
		}
		return MaxWHS[T](params[0], params[1]), nil
	case KindWCF:
		if len(params) != 0 {
			return nil, errors.Errorf("cost function wcf takes no parameters, got %d", len(params))
		}
		return WCF[T](), nil
	case KindPCF:
		if len(params) != 1 {
			return nil, errors.Errorf("cost function pcf expects 1 parameter (n), got %d", len(params))
		}
		return PCF[T](params[0]), nil
	case KindCF1:
		if len(params) != 3 {
			return nil, errors.Errorf("cost function cf1 expects 3 parameters (r, x, y), got %d", len(params))
		}
		return CF1[T](params[0], params[1], params[2]), nil
	case KindCF2:
		if len(params) != 3 {
			return nil, errors.Errorf("cost function cf2 expects 3 parameters (r, x, y), got %d", len(params))
		}
		return CF2[T](params[0], params[1], params[2]), nil
	default:
		return nil, errors.Errorf("unknown cost function %q", kind)
	}
}

// sweep walks every nonzero output mask, transforms the component truth
// table, feeds each absolute spectrum value to fold and returns the maximum
// absolute value seen. Every cost function is a fold over this sweep.
func sweep(s sbox.Sbox, fold func(v int32)) int32 {
	var tt [256]uint8
	var spectrum [256]int32
	maxAbs := int32(0)

	for b := 1; b < 256; b++ {
		s.Component(b, &tt)
		sbox.FWHT(&tt, &spectrum)
		for i := 0; i < 256; i++ {
			v := spectrum[i]
			if v < 0 {
				v = -v
			}
			if v > 256 {
				panic("sbgen: spectrum value out of range")
			}
			if v > maxAbs {
				maxAbs = v
			}
			fold(v)
		}
	}

	return maxAbs
}

// ipow raises v to a small positive integer power by repeated multiply.
func ipow[T Number](v T, e int32) T {
	if e <= 0 {
		return 1
	}
	p := v
	for k := int32(1); k < e; k++ {
		p *= v
	}
	return p
}

func nl(maxAbs int32) int32 {
	return 128 - maxAbs/2
}
