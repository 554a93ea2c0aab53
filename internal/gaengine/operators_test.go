package gaengine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

func TestOrderCrossover_ProducesPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	parent1 := []domain.TaskId{domain.NewTaskId(), domain.NewTaskId(), domain.NewTaskId(), domain.NewTaskId()}
	parent2 := append([]domain.TaskId(nil), parent1...)
	rng.Shuffle(len(parent2), func(i, j int) { parent2[i], parent2[j] = parent2[j], parent2[i] })

	child := orderCrossover(rng, parent1, parent2)

	assert.Len(t, child, len(parent1))
	seen := make(map[domain.TaskId]bool, len(child))
	for _, id := range child {
		assert.False(t, seen[id], "child must not repeat a task id")
		seen[id] = true
	}
}

func TestOrderCrossover_EmptyParentsDoesNotPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	child := orderCrossover(rng, nil, nil)
	assert.Empty(t, child)
}

func TestSwapMutate_NeverDropsOrDuplicatesIds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	order := []domain.TaskId{domain.NewTaskId(), domain.NewTaskId(), domain.NewTaskId()}

	mutated := swapMutate(rng, order, 1.0)

	assert.ElementsMatch(t, order, mutated)
}

func TestTournamentSelect_PrefersFeasibleOverInfeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	feasible := individual{feasible: true, objective: 100}
	infeasible := individual{feasible: false}
	pop := []individual{infeasible, infeasible, feasible}

	winner := tournamentSelect(rng, pop, 3)
	assert.True(t, winner.feasible)
}

func TestBetter_ComparesObjectiveWhenBothFeasible(t *testing.T) {
	lower := individual{feasible: true, objective: 10}
	higher := individual{feasible: true, objective: 20}
	assert.True(t, better(lower, higher))
	assert.False(t, better(higher, lower))
}
