package decode

import (
	"github.com/pintowar/bellum-sub001/internal/domain"
)

// RepairOrder returns a dependsOn-respecting visiting order over tasks,
// following preferred as closely as possible: it is preferred's order with
// any not-yet-visited dependency pulled forward in front of the task that
// needs it. This
// lets a CP branch or a GA permutation that happens to violate precedence
// still decode deterministically into a feasible schedule.
func RepairOrder(tasks []domain.Task, preferred []domain.TaskId) ([]domain.TaskId, error) {
	byID := make(map[domain.TaskId]domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.Base().ID] = t
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[domain.TaskId]int, len(tasks))
	order := make([]domain.TaskId, 0, len(tasks))
	var stack []domain.TaskId

	var visit func(id domain.TaskId) error
	visit = func(id domain.TaskId) error {
		switch state[id] {
		case visited:
			return nil
		case visiting:
			start := 0
			for i, sid := range stack {
				if sid == id {
					start = i
					break
				}
			}
			path := append(append([]domain.TaskId{}, stack[start:]...), id)
			return &domain.CircularDependencyError{Path: path}
		}
		state[id] = visiting
		stack = append(stack, id)

		if t, ok := byID[id]; ok {
			if dep := t.Base().DependsOn; dep != nil {
				if err := visit(*dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = visited
		order = append(order, id)
		return nil
	}

	for _, id := range preferred {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	// Any task absent from preferred (defensive: callers should pass a full
	// permutation) is appended in project order.
	for _, t := range tasks {
		if err := visit(t.Base().ID); err != nil {
			return nil, err
		}
	}

	return order, nil
}
