package search

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// Targets is the property bundle a search must satisfy. Nonlinearity is
// always active; delta uniformity and algebraic immunity only when their Use
// flag is set. Seeding is entropy-based unless the caller pins a seed, in
// which case worker i derives its own seed as Seed XOR i: single-threaded
// runs replay exactly, multi-threaded runs only best-effort.
type Targets struct {
	Nonlinearity         int32
	DeltaUniformity      int32
	UseDeltaUniformity   bool
	AlgebraicImmunity    int32
	UseAlgebraicImmunity bool

	Seed          uint64
	UseRandomSeed bool
}

// AdditionalPropertiesMet gates a candidate that already satisfies the
// nonlinearity target on the optional targets. These checks are expensive
// (the AI rank alone is O(137*256*256)), which is why they only run on
// nonlinearity hits.
func (t Targets) AdditionalPropertiesMet(s sbox.Sbox) bool {
	if t.UseDeltaUniformity && sbox.DeltaUniformity(s) > t.DeltaUniformity {
		return false
	}
	if t.UseAlgebraicImmunity && sbox.AlgebraicImmunity(s) < t.AlgebraicImmunity {
		return false
	}
	return true
}

func (t Targets) masterSeed() uint64 {
	if t.UseRandomSeed {
		return entropySeed()
	}
	return t.Seed
}

// meetsTarget is the full target check used on every scored proposal.
func meetsTarget(t Targets, nonlinearity int32, s sbox.Sbox) bool {
	return nonlinearity >= t.Nonlinearity && t.AdditionalPropertiesMet(s)
}

func ensureLog(e *logrus.Entry) *logrus.Entry {
	if e != nil {
		return e
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
