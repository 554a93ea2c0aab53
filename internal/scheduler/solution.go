package scheduler

import (
	"sync"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// ObjectiveWeight is the fixed multiplier on makespan in the composite
// objective used to order solutions: 100*makespan + priorityCost. Kept as a
// named constant per the documented assumption that priorityCost stays
// below 100 for realistically sized projects; callers with pathologically
// high priority-inversion counts should prefer a true lexicographic
// comparison instead.
const ObjectiveWeight = 100

// SchedulerSolution is one point in a scheduler's anytime solution stream:
// a project (fully or partially assigned), whether it is proven optimal,
// how long the solver had been running when it was found, and an
// engine-specific stats bag.
type SchedulerSolution struct {
	Project  domain.Project
	Optimal  bool
	Duration time.Duration
	Stats    map[string]any
}

// CompositeObjective returns 100*makespan(minutes) + priorityCost, the
// value solutions are compared by. A project with no assigned tasks has
// zero makespan and is treated as objective 0. Engines use this to compare
// candidate schedules during search.
func CompositeObjective(p domain.Project) int64 {
	var makespanMinutes int64
	if total, ok := p.TotalDuration(); ok {
		makespanMinutes = int64(total / time.Minute)
	}
	return ObjectiveWeight*makespanMinutes + int64(p.PriorityCost())
}

// SolutionHistory is the ordered, append-only list of strict improvements
// a scheduler run produced. Safe for concurrent append from a portfolio of
// workers.
type SolutionHistory struct {
	mu      sync.Mutex
	entries []SchedulerSolution
	best    int64
	hasBest bool
}

// NewSolutionHistory returns an empty history.
func NewSolutionHistory() *SolutionHistory {
	return &SolutionHistory{}
}

// TryAppend appends s if it strictly improves on the current best
// composite objective (or if the history is empty), and reports whether it
// was appended.
func (h *SolutionHistory) TryAppend(s SchedulerSolution) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj := CompositeObjective(s.Project)
	if h.hasBest && obj >= h.best {
		return false
	}
	h.entries = append(h.entries, s)
	h.best = obj
	h.hasBest = true
	return true
}

// MarkLastOptimal updates the most recently appended entry's Optimal flag in
// place. Used when an engine's terminal solution ties the last strict
// improvement already recorded (the usual case: the terminal solution IS
// that same project) but proves optimality, something TryAppend's strict
// comparison would otherwise silently drop.
func (h *SolutionHistory) MarkLastOptimal(optimal bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return
	}
	h.entries[len(h.entries)-1].Optimal = optimal
}

// All returns a defensive copy of the recorded solutions in arrival order.
func (h *SolutionHistory) All() []SchedulerSolution {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := make([]SchedulerSolution, len(h.entries))
	copy(cp, h.entries)
	return cp
}

// LastProject returns the project of the most recently appended solution.
func (h *SolutionHistory) LastProject() (domain.Project, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return domain.Project{}, false
	}
	return h.entries[len(h.entries)-1].Project, true
}

// Len reports the number of recorded solutions.
func (h *SolutionHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
