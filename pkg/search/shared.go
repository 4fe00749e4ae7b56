package search

import (
	"math"
	"sync/atomic"

	"github.com/sasha-s/go-deadlock"

	"github.com/kandiyiit/sbgen/pkg/cost"
)

// sharedState is the record all workers of one search compete over. The
// mutex guards best, found and frozen; the iteration total is a bare atomic
// so bumping it never contends with publishing.
type sharedState[T cost.Number] struct {
	mu         deadlock.Mutex
	best       Candidate[T]
	found      bool
	frozen     int32
	iterations *atomic.Uint64
}

// newSharedState builds the record. When the caller hands in a counter the
// engine publishes its iteration total there, so progress can be watched
// from outside while the search runs.
func newSharedState[T cost.Number](counter *atomic.Uint64) *sharedState[T] {
	if counter == nil {
		counter = new(atomic.Uint64)
	}
	return &sharedState[T]{iterations: counter}
}

func (st *sharedState[T]) bump() { st.iterations.Add(1) }

func (st *sharedState[T]) iterationCount() uint64 { return st.iterations.Load() }

func (st *sharedState[T]) snapshot() Candidate[T] {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.best
}

func (st *sharedState[T]) isFound() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.found
}

// publishBetter installs c as the new best when the comparator prefers it,
// resetting the frozen counter; otherwise the counter grows. The second
// result reports that the counter has passed maxFrozen and the caller should
// stop. Once the target has been met the record is frozen for good.
func (st *sharedState[T]) publishBetter(c Candidate[T], better Comparator[T], maxFrozen int32) (replaced, frozenExceeded bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.found {
		return false, false
	}
	if better(c, st.best) {
		st.best = c
		st.frozen = 0
		return true, false
	}
	st.frozen++
	return false, st.frozen > maxFrozen
}

// metropolis is the simulated-annealing acceptance step: comparator winners
// are taken unconditionally, losers with probability exp(-delta/temperature)
// against the pre-drawn uniform u. Accepting replaces the shared best even
// when the candidate is worse - that is the walk.
func (st *sharedState[T]) metropolis(c Candidate[T], better Comparator[T], u, temperature float64, maxFrozen int32) (accepted, stop bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.found {
		return false, true
	}
	delta := float64(c.Cost.Cost - st.best.Cost.Cost)
	if better(c, st.best) || u < math.Exp(-delta/temperature) {
		st.best = c
		st.frozen = 0
		return true, false
	}
	st.frozen++
	return false, st.frozen >= maxFrozen
}

// publishTargetMet records a candidate that satisfies the whole target
// bundle and flips the found flag. The flag transitions once; later calls
// are no-ops. It reports whether this call was the transition.
func (st *sharedState[T]) publishTargetMet(c Candidate[T]) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.found {
		return false
	}
	st.best = c
	st.found = true
	return true
}
