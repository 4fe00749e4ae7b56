package search

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"github.com/kandiyiit/sbgen/pkg/cost"
	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// GeneticParams configures a genetic run.
type GeneticParams[T cost.Number] struct {
	Targets

	ThreadCount            int32
	InitialPopulationCount int32
	SelectionCount         int32
	IterationsCount        int32
	MutantsPerParent       int32
	CrossoverCount         int32
	ChildPerParent         int32
	UseCrossover           bool
	DeleteParents          bool

	Selection SelectionMethod[T]
	Crossover CrossoverMethod

	CostFunction cost.Function[T]
	Comparator   Comparator[T]

	Log *logrus.Entry

	// IterationTotal, when set, receives the running iteration total of
	// the search so callers can report progress while it runs.
	IterationTotal *atomic.Uint64
}

func (p *GeneticParams[T]) validate() error {
	if p.ThreadCount < 1 {
		return &ValidationError{Param: "thread_count", Reason: "must be at least 1"}
	}
	if p.InitialPopulationCount < p.SelectionCount {
		return &ValidationError{Param: "initial_population_count", Reason: "must be at least selection_count"}
	}
	if p.SelectionCount < 0 || p.IterationsCount < 0 || p.MutantsPerParent < 0 ||
		p.CrossoverCount < 0 || p.ChildPerParent < 0 {
		return &ValidationError{Param: "genetic_counts", Reason: "must be non-negative"}
	}
	if p.UseCrossover && p.Crossover == nil {
		return &ValidationError{Param: "crossover_method", Reason: "must be set when crossover is enabled"}
	}
	if p.CostFunction == nil {
		return &ValidationError{Param: "cost_function", Reason: "must be set"}
	}
	return nil
}

// successor is one unit of work for a generation: a parent carried over from
// selection, or a crossover child that still needs scoring.
type successor[T cost.Number] struct {
	cand   Candidate[T]
	scored bool
}

// Genetic runs the evolutionary search: seed a random population, then per
// generation select survivors, optionally cross them over, and let workers
// mutate every successor into the next population. A mutant meeting the
// whole target bundle ends the run immediately.
func Genetic[T cost.Number](p GeneticParams[T]) (*sbox.Sbox, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	better := p.Comparator
	if better == nil {
		better = BetterNL[T]
	}
	selection := p.Selection
	if selection == nil {
		selection = BasicSelection[T]
	}
	log := ensureLog(p.Log)

	master := p.masterSeed()
	rng := newRand(master)
	st := newSharedState[T](p.IterationTotal)

	pop := NewPopulation(better)
	var popMu deadlock.Mutex

	var wg sync.WaitGroup
	for i := int32(0); i < p.InitialPopulationCount; i++ {
		wg.Add(1)
		go func(id int32) {
			defer wg.Done()
			r := newRand(master ^ uint64(id))
			c := Candidate[T]{Sbox: sbox.Random(r)}
			c.Cost = p.CostFunction(c.Sbox)
			popMu.Lock()
			pop.Add(c)
			popMu.Unlock()
		}(i)
	}
	wg.Wait()

	workerRngs := make([]*rand.Rand, p.ThreadCount)
	for i := range workerRngs {
		workerRngs[i] = newRand(master ^ uint64(i))
	}

	for iter := int32(0); iter < p.IterationsCount && !st.isFound(); iter++ {
		successors := makeSuccessors(selection(pop, int(p.SelectionCount), rng))

		if p.UseCrossover && len(successors) > 1 {
			for k := int32(0); k < p.CrossoverCount; k++ {
				a := successors[rng.Intn(len(successors))].cand.Sbox
				b := successors[rng.Intn(len(successors))].cand.Sbox
				for c := int32(0); c < p.ChildPerParent; c++ {
					child := p.Crossover(a, b, rng)
					successors = append(successors, successor[T]{cand: Candidate[T]{Sbox: child}})
				}
			}
		}

		next := NewPopulation(better)
		queue := &successorQueue[T]{items: successors}

		for w := int32(0); w < p.ThreadCount; w++ {
			wg.Add(1)
			go func(r *rand.Rand) {
				defer wg.Done()
				geneticWorker(p, st, queue, next, &popMu, log, r)
			}(workerRngs[w])
		}
		wg.Wait()

		pop = next

		log.WithFields(logrus.Fields{
			"generation": iter,
			"population": pop.Len(),
			"iterations": st.iterationCount(),
		}).Debug("generation complete")
	}

	if !st.found {
		return nil, nil
	}
	result := st.best.Sbox
	return &result, nil
}

func makeSuccessors[T cost.Number](selected []Candidate[T]) []successor[T] {
	out := make([]successor[T], len(selected))
	for i, c := range selected {
		out[i] = successor[T]{cand: c, scored: true}
	}
	return out
}

type successorQueue[T cost.Number] struct {
	mu    deadlock.Mutex
	items []successor[T]
	pos   int
}

func (q *successorQueue[T]) next() (successor[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pos >= len(q.items) {
		return successor[T]{}, false
	}
	s := q.items[q.pos]
	q.pos++
	return s, true
}

func geneticWorker[T cost.Number](p GeneticParams[T], st *sharedState[T], queue *successorQueue[T], next *Population[T], nextMu *deadlock.Mutex, log *logrus.Entry, rng *rand.Rand) {
	for {
		if st.isFound() {
			return
		}
		item, ok := queue.next()
		if !ok {
			return
		}

		if !item.scored {
			st.bump()
			item.cand.Cost = p.CostFunction(item.cand.Sbox)
			item.scored = true
			if publishIfTargetMet(p, st, item.cand, log) {
				return
			}
		}

		if !p.DeleteParents {
			nextMu.Lock()
			next.Add(item.cand)
			nextMu.Unlock()
		}

		for m := int32(0); m < p.MutantsPerParent; m++ {
			if st.isFound() {
				return
			}
			st.bump()

			mutant := item.cand
			p1, p2 := distinctPositions(rng)
			mutant.Sbox.Swap(p1, p2)
			mutant.Cost = p.CostFunction(mutant.Sbox)

			if publishIfTargetMet(p, st, mutant, log) {
				return
			}

			nextMu.Lock()
			next.Add(mutant)
			nextMu.Unlock()
		}
	}
}

func publishIfTargetMet[T cost.Number](p GeneticParams[T], st *sharedState[T], c Candidate[T], log *logrus.Entry) bool {
	if !meetsTarget(p.Targets, c.Cost.Nonlinearity, c.Sbox) {
		return false
	}
	if st.publishTargetMet(c) {
		log.WithFields(logrus.Fields{
			"cost":         c.Cost.Cost,
			"nonlinearity": c.Cost.Nonlinearity,
			"iterations":   st.iterationCount(),
		}).Info("target s-box found")
	}
	return true
}
