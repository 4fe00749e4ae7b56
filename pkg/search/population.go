package search

import (
	"container/heap"

	"github.com/kandiyiit/sbgen/pkg/cost"
	"github.com/kandiyiit/sbgen/pkg/sbox"
)

// Candidate pairs a permutation with its most recent score. Candidates are
// value copies; populations and the shared record never alias them.
type Candidate[T cost.Number] struct {
	Sbox sbox.Sbox
	Cost cost.Info[T]
}

// Comparator reports whether a ranks strictly above b. It must be a strict
// weak order: ties resolve to "not better" on both sides.
type Comparator[T cost.Number] func(a, b Candidate[T]) bool

// BetterNL is the default ordering: higher nonlinearity wins, equal
// nonlinearities fall back to lower cost.
func BetterNL[T cost.Number](a, b Candidate[T]) bool {
	if a.Cost.Nonlinearity != b.Cost.Nonlinearity {
		return a.Cost.Nonlinearity > b.Cost.Nonlinearity
	}
	return a.Cost.Cost < b.Cost.Cost
}

// BetterCost orders by cost alone, lower first.
func BetterCost[T cost.Number](a, b Candidate[T]) bool {
	return a.Cost.Cost < b.Cost.Cost
}

// Population is a priority queue of candidates; the best candidate under the
// configured comparator sits at the top. It is not synchronised - the
// genetic engine guards it with its own mutex.
type Population[T cost.Number] struct {
	items  []Candidate[T]
	better Comparator[T]
}

func NewPopulation[T cost.Number](better Comparator[T]) *Population[T] {
	return &Population[T]{better: better}
}

// Len, Less, Swap, Push and Pop implement heap.Interface; use the typed
// methods below instead of calling them directly.
func (p *Population[T]) Len() int { return len(p.items) }

func (p *Population[T]) Less(i, j int) bool { return p.better(p.items[i], p.items[j]) }

func (p *Population[T]) Swap(i, j int) { p.items[i], p.items[j] = p.items[j], p.items[i] }

func (p *Population[T]) Push(x any) { p.items = append(p.items, x.(Candidate[T])) }

func (p *Population[T]) Pop() any {
	last := len(p.items) - 1
	c := p.items[last]
	p.items = p.items[:last]
	return c
}

func (p *Population[T]) Empty() bool { return len(p.items) == 0 }

// Add inserts a candidate.
func (p *Population[T]) Add(c Candidate[T]) { heap.Push(p, c) }

// Best removes and returns the top candidate. It panics on an empty
// population; callers check Empty first.
func (p *Population[T]) Best() Candidate[T] { return heap.Pop(p).(Candidate[T]) }

// Peek returns the top candidate without removing it.
func (p *Population[T]) Peek() Candidate[T] { return p.items[0] }
