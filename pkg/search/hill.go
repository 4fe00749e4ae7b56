package search

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/kandiyiit/sbgen/pkg/cost"
	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// HillClimbParams configures a hill-climbing run.
type HillClimbParams[T cost.Number] struct {
	Targets

	ThreadCount    int32
	TryPerThread   int32
	MaxFrozenCount int32

	CostFunction cost.Function[T]
	Comparator   Comparator[T]

	Log *logrus.Entry

	// IterationTotal, when set, receives the running iteration total of
	// the search so callers can report progress while it runs.
	IterationTotal *atomic.Uint64
}

func (p *HillClimbParams[T]) validate() error {
	if p.ThreadCount < 1 {
		return &ValidationError{Param: "thread_count", Reason: "must be at least 1"}
	}
	if p.TryPerThread < 0 {
		return &ValidationError{Param: "try_per_thread", Reason: "must be non-negative"}
	}
	if p.MaxFrozenCount < 0 {
		return &ValidationError{Param: "max_frozen_count", Reason: "must be non-negative"}
	}
	if p.CostFunction == nil {
		return &ValidationError{Param: "cost_function", Reason: "must be set"}
	}
	return nil
}

// HillClimb runs the greedy single-transposition search. It returns the
// first candidate meeting the whole target bundle, or nil when every
// worker's budget is exhausted or the frozen counter trips.
func HillClimb[T cost.Number](p HillClimbParams[T]) (*sbox.Sbox, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	better := p.Comparator
	if better == nil {
		better = BetterNL[T]
	}
	log := ensureLog(p.Log)

	master := p.masterSeed()
	rng := newRand(master)

	st := newSharedState[T](p.IterationTotal)
	st.best.Sbox = sbox.Random(rng)
	st.best.Cost = p.CostFunction(st.best.Sbox)

	var wg sync.WaitGroup
	for i := int32(0); i < p.ThreadCount; i++ {
		wg.Add(1)
		go func(id int32) {
			defer wg.Done()
			hillWorker(p, st, better, log, newRand(master^uint64(id)))
		}(i)
	}
	wg.Wait()

	if !st.found {
		return nil, nil
	}
	result := st.best.Sbox
	return &result, nil
}

func hillWorker[T cost.Number](p HillClimbParams[T], st *sharedState[T], better Comparator[T], log *logrus.Entry, rng *rand.Rand) {
	for i := int32(0); i < p.TryPerThread; i++ {
		if st.isFound() {
			return
		}
		st.bump()

		cand := st.snapshot()
		p1, p2 := distinctPositions(rng)
		cand.Sbox.Swap(p1, p2)
		cand.Cost = p.CostFunction(cand.Sbox)

		if meetsTarget(p.Targets, cand.Cost.Nonlinearity, cand.Sbox) {
			if st.publishTargetMet(cand) {
				log.WithFields(logrus.Fields{
					"cost":         cand.Cost.Cost,
					"nonlinearity": cand.Cost.Nonlinearity,
					"iterations":   st.iterationCount(),
				}).Info("target s-box found")
			}
			return
		}

		replaced, frozenExceeded := st.publishBetter(cand, better, p.MaxFrozenCount)
		if replaced {
			log.WithFields(logrus.Fields{
				"cost":         cand.Cost.Cost,
				"nonlinearity": cand.Cost.Nonlinearity,
				"iterations":   st.iterationCount(),
			}).Debug("better s-box")
		}
		if frozenExceeded {
			log.WithField("iterations", st.iterationCount()).
				Info("search stopped: frozen counter exceeded")
			return
		}
	}
}
