package search

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/kandiyiit/sbgen/pkg/cost"
	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// AnnealParams configures a simulated-annealing run. The frozen budget is
// max_frozen_outer_loops per thread: the shared counter trips at
// MaxFrozenOuterLoops * ThreadCount consecutive rejections.
type AnnealParams[T cost.Number] struct {
	Targets

	ThreadCount         int32
	MaxOuterLoops       int32
	MaxInnerLoops       int32
	MaxFrozenOuterLoops int32

	InitialTemperature float64
	Alpha              float64

	CostFunction cost.Function[T]
	Comparator   Comparator[T]

	Log *logrus.Entry

	// IterationTotal, when set, receives the running iteration total of
	// the search so callers can report progress while it runs.
	IterationTotal *atomic.Uint64
}

func (p *AnnealParams[T]) validate() error {
	if p.ThreadCount < 1 {
		return &ValidationError{Param: "thread_count", Reason: "must be at least 1"}
	}
	if p.MaxOuterLoops < 0 || p.MaxInnerLoops < 0 || p.MaxFrozenOuterLoops < 0 {
		return &ValidationError{Param: "loop_bounds", Reason: "must be non-negative"}
	}
	if p.InitialTemperature <= 0 {
		return &ValidationError{Param: "initial_temperature", Reason: "must be positive"}
	}
	if p.Alpha <= 0 || p.Alpha > 1 {
		return &ValidationError{Param: "alpha", Reason: "must be in (0, 1]"}
	}
	if p.CostFunction == nil {
		return &ValidationError{Param: "cost_function", Reason: "must be set"}
	}
	return nil
}

// SimulatedAnneal runs the Metropolis walk. Each worker carries its own
// temperature, cooled by Alpha once after every completed inner loop - not
// per proposal.
func SimulatedAnneal[T cost.Number](p AnnealParams[T]) (*sbox.Sbox, error) {
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
			annealWorker(p, st, better, log, newRand(master^uint64(id)))
		}(i)
	}
	wg.Wait()

	if !st.found {
		return nil, nil
	}
	result := st.best.Sbox
	return &result, nil
}

func annealWorker[T cost.Number](p AnnealParams[T], st *sharedState[T], better Comparator[T], log *logrus.Entry, rng *rand.Rand) {
	temperature := p.InitialTemperature
	maxFrozen := p.MaxFrozenOuterLoops * p.ThreadCount

	for outer := int32(0); outer < p.MaxOuterLoops; outer++ {
		for inner := int32(0); inner < p.MaxInnerLoops; inner++ {
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
						"temperature":  temperature,
						"iterations":   st.iterationCount(),
					}).Info("target s-box found")
				}
				return
			}

			u := rng.Float64()
			accepted, stop := st.metropolis(cand, better, u, temperature, maxFrozen)
			if accepted {
				log.WithFields(logrus.Fields{
					"cost":         cand.Cost.Cost,
					"nonlinearity": cand.Cost.Nonlinearity,
					"temperature":  temperature,
				}).Debug("accepted s-box")
			}
			if stop {
				if !st.isFound() {
					log.WithField("iterations", st.iterationCount()).
						Info("search stopped: frozen counter exceeded")
				}
				return
			}
		}

		temperature *= p.Alpha
	}
}
