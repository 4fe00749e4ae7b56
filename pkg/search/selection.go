package search

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/kandiyiit/sbgen/pkg/cost"
)

// SelectionMethod draws up to count survivors out of the population,
// consuming it. Implementations must cope with populations smaller than
// count (take everything) and with a zero cost sum.
type SelectionMethod[T cost.Number] func(pop *Population[T], count int, rng *rand.Rand) []Candidate[T]

// drainRanked empties the population best-first, collapsing runs of equal
// cost so no two survivors tie.
func drainRanked[T cost.Number](pop *Population[T]) []Candidate[T] {
	var res []Candidate[T]
	for !pop.Empty() {
		s := pop.Best()
		res = append(res, s)
		for !pop.Empty() && pop.Peek().Cost.Cost == s.Cost.Cost {
			pop.Best()
		}
	}
	return res
}

// BasicSelection keeps the count best candidates, skipping cost ties.
func BasicSelection[T cost.Number](pop *Population[T], count int, _ *rand.Rand) []Candidate[T] {
	out := make([]Candidate[T], 0, count)
	for j := 0; j < count; j++ {
		if pop.Empty() {
			return out
		}
		s := pop.Best()
		out = append(out, s)
		for !pop.Empty() && pop.Peek().Cost.Cost == s.Cost.Cost {
			pop.Best()
		}
	}
	return out
}

// RankSequentialSelection walks the ranked candidates cyclically, accepting
// position p with probability 1 - 2p/(count*(count+1)) until count are in.
func RankSequentialSelection[T cost.Number](pop *Population[T], count int, rng *rand.Rand) []Candidate[T] {
	res := drainRanked(pop)
	if len(res) <= count {
		return res
	}

	out := make([]Candidate[T], 0, count)
	selected := make([]bool, len(res))
	i := 0
	for len(out) < count {
		pos := i % len(res)
		i++
		if selected[pos] {
			continue
		}
		if rng.Float64() < 1-(2*float64(pos))/(float64(count)*float64(count+1)) {
			selected[pos] = true
			out = append(out, res[pos])
		}
	}
	return out
}

// RouletteWheelSequentialSelection is the same cyclic walk with acceptance
// probability 1 - cost/sum. A zero cost sum accepts unconditionally.
func RouletteWheelSequentialSelection[T cost.Number](pop *Population[T], count int, rng *rand.Rand) []Candidate[T] {
	res := drainRanked(pop)
	if len(res) <= count {
		return res
	}
	sum := lo.SumBy(res, func(c Candidate[T]) T { return c.Cost.Cost })

	out := make([]Candidate[T], 0, count)
	selected := make([]bool, len(res))
	i := 0
	for len(out) < count {
		pos := i % len(res)
		i++
		if selected[pos] {
			continue
		}
		accept := sum == 0 || rng.Float64() < 1-float64(res[pos].Cost.Cost)/float64(sum)
		if accept {
			selected[pos] = true
			out = append(out, res[pos])
		}
	}
	return out
}
