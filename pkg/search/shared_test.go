package search

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishBetter(t *testing.T) {
	st := newSharedState[float64](nil)
	st.best = candidateWith(100, 50)

	replaced, frozen := st.publishBetter(candidateWith(102, 60), BetterNL[float64], 2)
	assert.True(t, replaced)
	assert.False(t, frozen)
	assert.EqualValues(t, 102, st.snapshot().Cost.Nonlinearity)

	// Two non-improving publishes grow the frozen counter; the third trips
	// the threshold.
	for i := 0; i < 2; i++ {
		replaced, frozen = st.publishBetter(candidateWith(90, 1), BetterNL[float64], 2)
		assert.False(t, replaced)
		assert.False(t, frozen)
	}
	replaced, frozen = st.publishBetter(candidateWith(90, 1), BetterNL[float64], 2)
	assert.False(t, replaced)
	assert.True(t, frozen)

	// An improvement resets the counter.
	replaced, _ = st.publishBetter(candidateWith(104, 1), BetterNL[float64], 2)
	assert.True(t, replaced)
	_, frozen = st.publishBetter(candidateWith(90, 1), BetterNL[float64], 2)
	assert.False(t, frozen)
}

func TestPublishTargetMetIsMonotonic(t *testing.T) {
	st := newSharedState[float64](nil)

	assert.True(t, st.publishTargetMet(candidateWith(104, 7)))
	assert.True(t, st.isFound())

	// Later publishes change nothing.
	assert.False(t, st.publishTargetMet(candidateWith(106, 1)))
	assert.EqualValues(t, 104, st.snapshot().Cost.Nonlinearity)

	replaced, frozen := st.publishBetter(candidateWith(110, 0), BetterNL[float64], 1)
	assert.False(t, replaced)
	assert.False(t, frozen)
	assert.EqualValues(t, 104, st.snapshot().Cost.Nonlinearity)
}

func TestMetropolis(t *testing.T) {
	st := newSharedState[float64](nil)
	st.best = candidateWith(100, 50)

	// A comparator winner is taken no matter the draw.
	accepted, stop := st.metropolis(candidateWith(102, 60), BetterNL[float64], 0.999999, 0.001, 100)
	assert.True(t, accepted)
	assert.False(t, stop)

	// A worse candidate with u below exp(-delta/T) is still taken.
	accepted, _ = st.metropolis(candidateWith(90, 61), BetterNL[float64], 0.0, 1e9, 100)
	assert.True(t, accepted)
	assert.EqualValues(t, 90, st.snapshot().Cost.Nonlinearity)

	// A worse candidate with u ~ 1 and a cold walk is rejected.
	accepted, _ = st.metropolis(candidateWith(80, 1e6), BetterNL[float64], 0.999999, 1e-9, 100)
	assert.False(t, accepted)
}

func TestIterationCounter(t *testing.T) {
	st := newSharedState[int64](nil)
	for i := 0; i < 5; i++ {
		st.bump()
	}
	assert.EqualValues(t, 5, st.iterationCount())
}

func TestIterationCounterSharedWithCaller(t *testing.T) {
	var total atomic.Uint64
	st := newSharedState[float64](&total)
	st.bump()
	st.bump()
	assert.EqualValues(t, 2, total.Load())
	assert.EqualValues(t, 2, st.iterationCount())
}
