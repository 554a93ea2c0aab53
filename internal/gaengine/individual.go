// Package gaengine implements the genetic-algorithm scheduling engine: a
// population of task permutations evolved by tournament selection, order
// crossover and swap mutation, each decoded to a concrete schedule by
// internal/decode's shared greedy list-scheduler and scored by the
// scheduler package's composite objective.
package gaengine

import (
	"math/rand"

	"github.com/pintowar/bellum-sub001/internal/decode"
	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/scheduler"
)

// individual is one candidate solution: a permutation of the project's task
// ids, its decoded project, and the composite objective of that decode.
type individual struct {
	order     []domain.TaskId
	decoded   domain.Project
	objective int64
	feasible  bool
}

// universe is the fixed problem context every individual is evaluated
// against: the project, the chooser used to decode a permutation, and the
// base task-id ordering permutations are drawn over.
type universe struct {
	project domain.Project
	chooser decode.EmployeeChooser
	taskIDs []domain.TaskId
}

func (u *universe) evaluate(order []domain.TaskId) individual {
	repaired, err := decode.RepairOrder(u.project.AllTasks(), order)
	if err != nil {
		return individual{order: order, feasible: false}
	}
	decoded, err := decode.Schedule(u.project, repaired, u.chooser)
	if err != nil {
		return individual{order: order, feasible: false}
	}
	return individual{
		order:     order,
		decoded:   decoded,
		objective: scheduler.CompositeObjective(decoded),
		feasible:  true,
	}
}

// randomPermutation returns a random permutation of base.
func randomPermutation(rng *rand.Rand, base []domain.TaskId) []domain.TaskId {
	perm := make([]domain.TaskId, len(base))
	copy(perm, base)
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}
