package domain

import (
	"strings"
	"time"
)

// ScheduledStatus classifies how much of a project's task set is assigned.
type ScheduledStatus int

const (
	ScheduledNone ScheduledStatus = iota
	ScheduledPartial
	ScheduledComplete
)

func (s ScheduledStatus) String() string {
	switch s {
	case ScheduledNone:
		return "NONE"
	case ScheduledPartial:
		return "PARTIAL"
	case ScheduledComplete:
		return "SCHEDULED"
	default:
		return "UNKNOWN"
	}
}

// Project is an immutable value type: a kickoff instant, a set of employees
// unique by id, and a set of tasks unique by id. A scheduler never mutates
// a Project; it returns a new one via WithTasks.
type Project struct {
	id        ProjectId
	name      string
	kickOff   time.Time
	employees []Employee
	tasks     []Task
}

// NewProject validates structural uniqueness (duplicate ids are rejected)
// and constructs a Project. It does not check precedence/overlap/cycle
// invariants — call Validate or IsValid for that.
func NewProject(id ProjectId, name string, kickOff time.Time, employees []Employee, tasks []Task) (Project, error) {
	if strings.TrimSpace(name) == "" {
		return Project{}, newValidationError("project.name", "must not be blank")
	}

	empCopy := make([]Employee, len(employees))
	copy(empCopy, employees)
	seenEmp := make(map[EmployeeId]struct{}, len(empCopy))
	for _, e := range empCopy {
		if _, dup := seenEmp[e.ID()]; dup {
			return Project{}, newValidationError("project.employees", "duplicate employee id %s", e.ID())
		}
		seenEmp[e.ID()] = struct{}{}
	}

	taskCopy := make([]Task, len(tasks))
	copy(taskCopy, tasks)
	seenTask := make(map[TaskId]struct{}, len(taskCopy))
	for _, t := range taskCopy {
		id := t.Base().ID
		if _, dup := seenTask[id]; dup {
			return Project{}, newValidationError("project.tasks", "duplicate task id %s", id)
		}
		seenTask[id] = struct{}{}
	}

	return Project{id: id, name: name, kickOff: kickOff, employees: empCopy, tasks: taskCopy}, nil
}

func (p Project) ID() ProjectId      { return p.id }
func (p Project) Name() string       { return p.name }
func (p Project) KickOff() time.Time { return p.kickOff }

// AllEmployees returns employees in deterministic insertion order.
func (p Project) AllEmployees() []Employee {
	cp := make([]Employee, len(p.employees))
	copy(cp, p.employees)
	return cp
}

// AllTasks returns tasks in deterministic insertion order.
func (p Project) AllTasks() []Task {
	cp := make([]Task, len(p.tasks))
	copy(cp, p.tasks)
	return cp
}

// WithTasks returns a new Project with the same id/name/kickoff/employees
// but tasks replaced wholesale. Used by schedulers to emit decoded
// solutions without mutating the input project.
func (p Project) WithTasks(tasks []Task) Project {
	cp := make([]Task, len(tasks))
	copy(cp, tasks)
	return Project{id: p.id, name: p.name, kickOff: p.kickOff, employees: p.employees, tasks: cp}
}

// FindTask returns the task with the given id, if present.
func (p Project) FindTask(id TaskId) (Task, bool) {
	for _, t := range p.tasks {
		if t.Base().ID == id {
			return t, true
		}
	}
	return Task(nil), false
}

// FindEmployee returns the employee with the given id, if present.
func (p Project) FindEmployee(id EmployeeId) (Employee, bool) {
	for _, e := range p.employees {
		if e.ID() == id {
			return e, true
		}
	}
	return Employee{}, false
}

// ScheduledStatus reports whether none, some, or all tasks are assigned.
func (p Project) ScheduledStatus() ScheduledStatus {
	if len(p.tasks) == 0 {
		return ScheduledComplete
	}
	assigned := 0
	for _, t := range p.tasks {
		if _, ok := t.(AssignedTask); ok {
			assigned++
		}
	}
	switch {
	case assigned == 0:
		return ScheduledNone
	case assigned == len(p.tasks):
		return ScheduledComplete
	default:
		return ScheduledPartial
	}
}

// EndsAt returns the maximum EndsAt over assigned tasks, if any.
func (p Project) EndsAt() (time.Time, bool) {
	var max time.Time
	found := false
	for _, t := range p.tasks {
		a, ok := t.(AssignedTask)
		if !ok {
			continue
		}
		end := a.EndsAt()
		if !found || end.After(max) {
			max = end
			found = true
		}
	}
	return max, found
}

// TotalDuration returns EndsAt() - KickOff(), if the project has at least
// one assigned task.
func (p Project) TotalDuration() (time.Duration, bool) {
	end, ok := p.EndsAt()
	if !ok {
		return 0, false
	}
	return end.Sub(p.kickOff), true
}

// PriorityCost counts ordered pairs of assigned tasks (t1, t2) where t1
// started earlier than t2 but has a numerically larger (lower) priority
// value — a priority inversion.
func (p Project) PriorityCost() int {
	var assigned []AssignedTask
	for _, t := range p.tasks {
		if a, ok := t.(AssignedTask); ok {
			assigned = append(assigned, a)
		}
	}
	cost := 0
	for i := range assigned {
		for j := range assigned {
			if i == j {
				continue
			}
			t1, t2 := assigned[i], assigned[j]
			if t1.StartAt.Before(t2.StartAt) && t1.Priority.Value() > t2.Priority.Value() {
				cost++
			}
		}
	}
	return cost
}

// Validate reports the first invariant violation found: a dangling
// dependency reference, a precedence cycle, an employee double-booking,
// or a task ending after one of its dependents starts.
func (p Project) Validate() error {
	taskByID := make(map[TaskId]Task, len(p.tasks))
	for _, t := range p.tasks {
		taskByID[t.Base().ID] = t
	}

	for _, t := range p.tasks {
		dep := t.Base().DependsOn
		if dep == nil {
			continue
		}
		if _, ok := taskByID[*dep]; !ok {
			return &UnknownTaskError{TaskId: *dep}
		}
	}

	if cycle := findCycle(p.tasks); cycle != nil {
		return &CircularDependencyError{Path: cycle}
	}

	var assigned []AssignedTask
	for _, t := range p.tasks {
		if a, ok := t.(AssignedTask); ok {
			assigned = append(assigned, a)
		}
	}
	for i := 0; i < len(assigned); i++ {
		for j := i + 1; j < len(assigned); j++ {
			if assigned[i].Overlaps(assigned[j]) {
				return &OverlapError{Employee: assigned[i].Employee, First: assigned[i].ID, Second: assigned[j].ID}
			}
		}
	}

	for _, t := range p.tasks {
		a, ok := t.(AssignedTask)
		if !ok || a.DependsOn == nil {
			continue
		}
		dep, ok := taskByID[*a.DependsOn]
		if !ok {
			continue
		}
		depAssigned, ok := dep.(AssignedTask)
		if !ok {
			continue
		}
		if depAssigned.EndsAt().After(a.StartAt) {
			return &PrecedenceViolationError{Predecessor: depAssigned.ID, Successor: a.ID}
		}
	}

	return nil
}

// IsValid reports whether Validate returns nil.
func (p Project) IsValid() bool {
	return p.Validate() == nil
}

// findCycle runs DFS coloring over the dependsOn graph and returns the
// cycle path (task ids) if one exists, or nil.
func findCycle(tasks []Task) []TaskId {
	const (
		white = iota
		gray
		black
	)
	color := make(map[TaskId]int, len(tasks))
	byID := make(map[TaskId]Task, len(tasks))
	for _, t := range tasks {
		id := t.Base().ID
		color[id] = white
		byID[id] = t
	}

	var stack []TaskId
	var cycle []TaskId

	var visit func(id TaskId) bool
	visit = func(id TaskId) bool {
		color[id] = gray
		stack = append(stack, id)

		t, ok := byID[id]
		if ok {
			if dep := t.Base().DependsOn; dep != nil {
				switch color[*dep] {
				case white:
					if visit(*dep) {
						return true
					}
				case gray:
					// found the back edge; extract the cycle suffix from stack.
					start := 0
					for i, sid := range stack {
						if sid == *dep {
							start = i
							break
						}
					}
					cycle = append([]TaskId{}, stack[start:]...)
					cycle = append(cycle, *dep)
					return true
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	// deterministic traversal order.
	for _, t := range tasks {
		id := t.Base().ID
		if color[id] == white {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}
