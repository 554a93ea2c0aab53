// Package decode implements the shared greedy list-scheduler both the CP
// engine (decoding a branch's employee assignment) and the GA engine
// (decoding a permutation) use to turn a candidate solution into a concrete
// domain.Project: visit tasks in a dependsOn-respecting order, and for each
// one pick a start time no earlier than its predecessor's end and its
// employee's next free instant.
package decode

import (
	"fmt"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
)

// EmployeeChooser picks the employee (and resulting duration) for task,
// given the instant it becomes ready to start (precedence-cleared) and a
// snapshot of every employee's next-free instant so far. Returning an error
// aborts the decode.
type EmployeeChooser func(task domain.Task, ready time.Time, employeeFree map[domain.EmployeeId]time.Time) (domain.EmployeeId, time.Duration, error)

// Schedule decodes project by visiting order (must cover exactly project's
// task ids) and assigning each non-pinned task a start time and employee
// via choose. Already-pinned AssignedTasks are preserved verbatim; their
// employee is treated as busy until the latest pinned end, whatever the
// visiting order. Returns a new Project with every task
// assigned, in project's original (not visiting) order.
func Schedule(project domain.Project, order []domain.TaskId, choose EmployeeChooser) (domain.Project, error) {
	tasksByID := make(map[domain.TaskId]domain.Task, len(project.AllTasks()))
	for _, t := range project.AllTasks() {
		tasksByID[t.Base().ID] = t
	}
	if len(order) != len(tasksByID) {
		return domain.Project{}, fmt.Errorf("decode: order has %d tasks, project has %d", len(order), len(tasksByID))
	}

	decoded := make(map[domain.TaskId]domain.Task, len(tasksByID))
	employeeFree := make(map[domain.EmployeeId]time.Time)
	// Reserve every pinned slot up front, so tasks visited before a pinned
	// task cannot be placed on top of it.
	for _, t := range project.AllTasks() {
		if pinned, ok := t.(domain.AssignedTask); ok && pinned.Pinned {
			if free, seen := employeeFree[pinned.Employee]; !seen || pinned.EndsAt().After(free) {
				employeeFree[pinned.Employee] = pinned.EndsAt()
			}
		}
	}

	for _, id := range order {
		t, ok := tasksByID[id]
		if !ok {
			return domain.Project{}, fmt.Errorf("decode: order references unknown task %s", id)
		}

		if pinned, ok := t.(domain.AssignedTask); ok && pinned.Pinned {
			decoded[id] = pinned
			if free, seen := employeeFree[pinned.Employee]; !seen || pinned.EndsAt().After(free) {
				employeeFree[pinned.Employee] = pinned.EndsAt()
			}
			continue
		}

		ready := project.KickOff()
		if dep := t.Base().DependsOn; dep != nil {
			depTask, ok := decoded[*dep]
			if !ok {
				return domain.Project{}, fmt.Errorf("decode: task %s visited before its dependency %s", id, *dep)
			}
			if depAssigned, ok := depTask.(domain.AssignedTask); ok && depAssigned.EndsAt().After(ready) {
				ready = depAssigned.EndsAt()
			}
		}

		employeeID, duration, err := choose(t, ready, employeeFree)
		if err != nil {
			return domain.Project{}, fmt.Errorf("decode: choosing employee for task %s: %w", id, err)
		}

		start := ready
		if free, ok := employeeFree[employeeID]; ok && free.After(start) {
			start = free
		}

		assigned := domain.Assign(t, employeeID, start, duration)
		decoded[id] = assigned
		employeeFree[employeeID] = assigned.EndsAt()
	}

	result := make([]domain.Task, len(project.AllTasks()))
	for i, t := range project.AllTasks() {
		d, ok := decoded[t.Base().ID]
		if !ok {
			return domain.Project{}, fmt.Errorf("decode: task %s was never visited", t.Base().ID)
		}
		result[i] = d
	}
	return project.WithTasks(result), nil
}

// FixedAssignmentChooser builds an EmployeeChooser that always assigns the
// employee given by assignment, estimating duration via est. The CP engine
// does not use it: it decodes with its own chooser that reads the
// precomputed duration matrix.
func FixedAssignmentChooser(project domain.Project, assignment map[domain.TaskId]domain.EmployeeId, est estimator.TimeEstimator) EmployeeChooser {
	return func(task domain.Task, ready time.Time, employeeFree map[domain.EmployeeId]time.Time) (domain.EmployeeId, time.Duration, error) {
		employeeID, ok := assignment[task.Base().ID]
		if !ok {
			return domain.EmployeeId{}, 0, fmt.Errorf("no assignment for task %s", task.Base().ID)
		}
		employee, ok := project.FindEmployee(employeeID)
		if !ok {
			return domain.EmployeeId{}, 0, fmt.Errorf("unknown employee %s in assignment", employeeID)
		}
		duration, err := est.Estimate(employee, task)
		if err != nil {
			return domain.EmployeeId{}, 0, err
		}
		return employeeID, duration, nil
	}
}

// EarliestFinishChooser builds an EmployeeChooser that, for each task,
// picks the employee (in project.AllEmployees order, ties broken by that
// order for determinism) minimizing the task's finish time. Used by the GA
// engine's permutation decoder.
func EarliestFinishChooser(project domain.Project, est estimator.TimeEstimator) EmployeeChooser {
	employees := project.AllEmployees()
	return func(task domain.Task, ready time.Time, employeeFree map[domain.EmployeeId]time.Time) (domain.EmployeeId, time.Duration, error) {
		var (
			bestEmployee domain.EmployeeId
			bestDuration time.Duration
			bestFinish   time.Time
			found        bool
		)
		for _, employee := range employees {
			duration, err := est.Estimate(employee, task)
			if err != nil {
				return domain.EmployeeId{}, 0, err
			}
			start := ready
			if free, ok := employeeFree[employee.ID()]; ok && free.After(start) {
				start = free
			}
			finish := start.Add(duration)
			if !found || finish.Before(bestFinish) {
				bestEmployee, bestDuration, bestFinish, found = employee.ID(), duration, finish, true
			}
		}
		if !found {
			return domain.EmployeeId{}, 0, fmt.Errorf("project has no employees to assign task %s", task.Base().ID)
		}
		return bestEmployee, bestDuration, nil
	}
}
