package gaengine

import (
	"math/rand"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// tournamentSelect picks the fitter of k randomly drawn individuals
// (smaller composite objective wins; infeasible individuals always lose).
func tournamentSelect(rng *rand.Rand, pop []individual, k int) individual {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < k; i++ {
		candidate := pop[rng.Intn(len(pop))]
		if better(candidate, best) {
			best = candidate
		}
	}
	return best
}

func better(a, b individual) bool {
	if a.feasible != b.feasible {
		return a.feasible
	}
	if !a.feasible {
		return false
	}
	return a.objective < b.objective
}

// orderCrossover implements OX: a contiguous slice of parent1's order is
// copied verbatim into the child at the same positions, and the remaining
// positions are filled with parent2's ids in their relative order, skipping
// ids already placed.
func orderCrossover(rng *rand.Rand, parent1, parent2 []domain.TaskId) []domain.TaskId {
	n := len(parent1)
	if n < 2 {
		return append([]domain.TaskId(nil), parent1...)
	}
	child := make([]domain.TaskId, n)
	taken := make(map[domain.TaskId]bool, n)

	a, b := rng.Intn(n), rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	for i := a; i <= b; i++ {
		child[i] = parent1[i]
		taken[parent1[i]] = true
	}

	pos := (b + 1) % n
	for _, id := range parent2 {
		if taken[id] {
			continue
		}
		child[pos] = id
		taken[id] = true
		pos = (pos + 1) % n
	}
	return child
}

// swapMutate swaps two random positions with probability rate, returning a
// fresh slice (the input is never mutated in place).
func swapMutate(rng *rand.Rand, order []domain.TaskId, rate float64) []domain.TaskId {
	mutated := make([]domain.TaskId, len(order))
	copy(mutated, order)
	if rng.Float64() >= rate || len(mutated) < 2 {
		return mutated
	}
	i, j := rng.Intn(len(mutated)), rng.Intn(len(mutated))
	mutated[i], mutated[j] = mutated[j], mutated[i]
	return mutated
}
