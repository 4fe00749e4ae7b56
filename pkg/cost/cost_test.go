package cost

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kandiyiit/sbgen/pkg/sbox"
)

func randomSbox(seed int64) sbox.Sbox {
	return sbox.Random(rand.New(rand.NewSource(seed)))
}

func TestWHSDeterministic(t *testing.T) {
	fn := WHS[float64](12, 0)
	s := randomSbox(7)
	first := fn(s)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, fn(s))
	}
}

func TestNonlinearityExtractionMatchesEvaluator(t *testing.T) {
	fns := map[string]Function[float64]{
		"whs":     WHS[float64](12, 0),
		"max_whs": MaxWHS[float64](12, 0),
		"wcf":     WCF[float64](),
		"pcf":     PCF[float64](5),
		"cf1":     CF1[float64](3, 32, 0),
		"cf2":     CF2[float64](2, 32, 0),
	}

	for _, seed := range []int64{1, 2, 3} {
		s := randomSbox(seed)
		want := sbox.Nonlinearity(s)
		for name, fn := range fns {
			assert.Equal(t, want, fn(s).Nonlinearity, "%s seed %d", name, seed)
		}
	}
}

func TestWHSIntegerAndFloatAgree(t *testing.T) {
	// r=2 keeps every term exact in both domains.
	fnF := WHS[float64](2, 0)
	fnI := WHS[int64](2, 0)
	s := randomSbox(11)

	f := fnF(s)
	i := fnI(s)
	assert.Equal(t, f.Nonlinearity, i.Nonlinearity)
	assert.EqualValues(t, i.Cost, int64(f.Cost))
}

func TestWHSNegativeExponent(t *testing.T) {
	// With x=0 every base is a nonzero even spectrum magnitude or zero;
	// the reciprocal branch must skip the zeros and stay finite.
	fn := WHS[float64](-2, 0)
	s := randomSbox(13)
	info := fn(s)
	assert.Greater(t, info.Cost, 0.0)
	assert.Less(t, info.Cost, float64(255*256))
}

func TestWCFAtNonlinearity112IsZero(t *testing.T) {
	// At nonlinearity 112 every |spectrum| value is at most 32, which the
	// WCF kernel does not charge for.
	aes := aesReference()
	info := WCF[float64]()(aes)
	assert.EqualValues(t, 0, info.Cost)
	assert.EqualValues(t, 112, info.Nonlinearity)

	infoInt := WCF[int64]()(aes)
	assert.EqualValues(t, 0, infoInt.Cost)
}

func TestWCFChargesWeakSbox(t *testing.T) {
	info := WCF[float64]()(sbox.Identity())
	assert.Greater(t, info.Cost, 0.0)
	assert.EqualValues(t, 0, info.Nonlinearity)
}

func TestPCF(t *testing.T) {
	aes := aesReference()
	info := PCF[float64](1)(aes)
	// Top occupied bucket of the AES spectrum is 32; its population is
	// positive and the level-1 cost equals it exactly.
	assert.Greater(t, info.Cost, 0.0)
	assert.Equal(t, info.Cost, float64(int64(info.Cost)))

	deeper := PCF[float64](5)(aes)
	assert.GreaterOrEqual(t, deeper.Cost, info.Cost)
}

func TestCF1ThresholdSkipsEverything(t *testing.T) {
	// x=256 puts every spectrum value below the threshold.
	info := CF1[float64](3, 256, 0)(randomSbox(17))
	assert.EqualValues(t, 0, info.Cost)
}

func TestCF2Domains(t *testing.T) {
	s := aesReference()

	f := CF2[float64](2, 0, 0)(s)
	assert.Greater(t, f.Cost, 0.0)
	assert.EqualValues(t, 112, f.Nonlinearity)

	// Integer domain: max magnitude 32 gives shift (32/4)*2 = 16, well
	// inside 64 bits.
	i := CF2[int64](2, 0, 0)(s)
	assert.Greater(t, i.Cost, int64(0))
	assert.EqualValues(t, 112, i.Nonlinearity)
}

func TestCF2IntegerShiftOverflowPanics(t *testing.T) {
	// A spectrum value of 256 with r=1 and y=0 would need a 1<<64.
	fn := CF2[int64](1, 0, 0)
	assert.Panics(t, func() { fn(sbox.Identity()) })
}

func TestNew(t *testing.T) {
	type scenario struct {
		kind    Kind
		params  []int32
		wantErr bool
	}

	scenarios := []scenario{
		{KindWHS, []int32{12, 0}, false},
		{KindWHS, []int32{12}, true},
		{KindMaxWHS, []int32{12, 0}, false},
		{KindWCF, nil, false},
		{KindWCF, []int32{1}, true},
		{KindPCF, []int32{5}, false},
		{KindPCF, nil, true},
		{KindCF1, []int32{3, 32, 0}, false},
		{KindCF2, []int32{2, 32, 0}, false},
		{KindCF2, []int32{2}, true},
		{Kind("nope"), nil, true},
	}

	for _, sc := range scenarios {
		fn, err := New[float64](sc.kind, sc.params)
		if sc.wantErr {
			assert.Error(t, err, "%s", sc.kind)
			assert.Nil(t, fn)
		} else {
			assert.NoError(t, err, "%s", sc.kind)
			assert.NotNil(t, fn)
		}
	}
}

// aesReference rebuilds the AES S-box from its generator polynomial so the
// test does not depend on another package's fixture.
func aesReference() sbox.Sbox {
	var s sbox.Sbox
	var p, q uint8 = 1, 1
	for {
		if p&0x80 != 0 {
			p ^= (p << 1) ^ 0x1b
		} else {
			p ^= p << 1
		}

		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		x := q ^ rotl8(q, 1) ^ rotl8(q, 2) ^ rotl8(q, 3) ^ rotl8(q, 4)
		s[p] = x ^ 0x63
		if p == 1 {
			break
		}
	}
	s[0] = 0x63
	return s
}

func rotl8(v uint8, n uint) uint8 {
	return v<<n | v>>(8-n)
}
