// Package cpengine implements the CP-style scheduling engine: a
// branch-and-bound search over per-task employee assignment, decoding each
// candidate assignment to a concrete schedule via internal/decode and
// comparing it by the scheduler package's composite objective.
package cpengine

import (
	"fmt"
	"time"

	"github.com/pintowar/bellum-sub001/internal/decode"
	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
)

// Model is the built CP model for one solve: the duration matrix M[e][t] in
// minutes (aligned to Employees/Tasks order), the tasks in a
// dependency-respecting visiting order, which of them are pre-pinned, and
// the employee symmetry groups used for symmetry-breaking.
type Model struct {
	Project   domain.Project
	Employees []domain.Employee
	Tasks     []domain.Task
	Minutes   [][]int

	Order      []domain.TaskId
	Unassigned []domain.TaskId // Order minus pinned task ids, still in dependency order
	Pinned     map[domain.TaskId]domain.AssignedTask

	RootTasks     map[domain.TaskId]bool // tasks with no predecessor
	EmployeeGroup []int                  // EmployeeGroup[i] = symmetry group id of Employees[i]

	EmployeeIndex map[domain.EmployeeId]int
	TaskIndex     map[domain.TaskId]int
}

// BuildModel computes the duration matrix, visiting order, pinned set and
// symmetry groups for project under est.
func BuildModel(project domain.Project, est estimator.TimeEstimator) (*Model, error) {
	employees := project.AllEmployees()
	tasks := project.AllTasks()

	minutes := make([][]int, len(employees))
	for ei, employee := range employees {
		row := make([]int, len(tasks))
		for ti, task := range tasks {
			d, err := est.Estimate(employee, task)
			if err != nil {
				return nil, fmt.Errorf("cpengine: estimating duration for employee %s task %s: %w", employee.ID(), task.Base().ID, err)
			}
			row[ti] = int(d / time.Minute)
		}
		minutes[ei] = row
	}

	ids := make([]domain.TaskId, len(tasks))
	for i, t := range tasks {
		ids[i] = t.Base().ID
	}
	order, err := decode.RepairOrder(tasks, ids)
	if err != nil {
		return nil, fmt.Errorf("cpengine: %w", err)
	}

	pinned := make(map[domain.TaskId]domain.AssignedTask)
	for _, t := range tasks {
		if a, ok := t.(domain.AssignedTask); ok && a.Pinned {
			pinned[a.ID] = a
		}
	}

	var unassigned []domain.TaskId
	for _, id := range order {
		if _, ok := pinned[id]; !ok {
			unassigned = append(unassigned, id)
		}
	}

	root := make(map[domain.TaskId]bool, len(tasks))
	for _, t := range tasks {
		root[t.Base().ID] = t.Base().DependsOn == nil
	}

	employeeIndex := make(map[domain.EmployeeId]int, len(employees))
	for i, e := range employees {
		employeeIndex[e.ID()] = i
	}
	taskIndex := make(map[domain.TaskId]int, len(tasks))
	for i, t := range tasks {
		taskIndex[t.Base().ID] = i
	}

	return &Model{
		Project:       project,
		Employees:     employees,
		Tasks:         tasks,
		Minutes:       minutes,
		Order:         order,
		Unassigned:    unassigned,
		Pinned:        pinned,
		RootTasks:     root,
		EmployeeGroup: symmetryGroups(minutes),
		EmployeeIndex: employeeIndex,
		TaskIndex:     taskIndex,
	}, nil
}

// DurationOf returns the precomputed duration for assigning employee to
// task.
func (m *Model) DurationOf(employee domain.EmployeeId, task domain.TaskId) (time.Duration, bool) {
	ei, ok := m.EmployeeIndex[employee]
	if !ok {
		return 0, false
	}
	ti, ok := m.TaskIndex[task]
	if !ok {
		return 0, false
	}
	return time.Duration(m.Minutes[ei][ti]) * time.Minute, true
}

// symmetryGroups assigns each employee (by index) a group id shared with
// every other employee whose duration row is identical, in first-seen
// order.
func symmetryGroups(minutes [][]int) []int {
	groups := make([]int, len(minutes))
	type key = string
	seen := make(map[key]int, len(minutes))
	for i, row := range minutes {
		k := fmt.Sprint(row)
		if g, ok := seen[k]; ok {
			groups[i] = g
			continue
		}
		g := len(seen)
		seen[k] = g
		groups[i] = g
	}
	return groups
}
