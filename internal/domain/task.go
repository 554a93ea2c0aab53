package domain

import (
	"strings"
	"time"
)

// TaskBase holds the fields shared by every task variant.
type TaskBase struct {
	ID             TaskId
	Description    string
	Priority       TaskPriority
	RequiredSkills map[string]SkillPoint
	DependsOn      *TaskId
}

// Task is a sealed union of UnassignedTask and AssignedTask. Callers
// pattern-match on the concrete type at decode sites; there is no shared
// inheritance hierarchy beyond the embedded TaskBase.
type Task interface {
	Base() TaskBase
	isTask()
}

// UnassignedTask is a task with no employee, start time or duration yet.
type UnassignedTask struct {
	TaskBase
}

func (t UnassignedTask) Base() TaskBase { return t.TaskBase }
func (UnassignedTask) isTask()          {}

// AssignedTask is a task pinned to an employee with a concrete start time
// and duration. Pinned marks tasks the caller pre-assigned before scheduling
// that a scheduler must preserve verbatim.
type AssignedTask struct {
	TaskBase
	Employee EmployeeId
	StartAt  time.Time
	Duration time.Duration
	Pinned   bool
}

func (t AssignedTask) Base() TaskBase { return t.TaskBase }
func (AssignedTask) isTask()          {}

// EndsAt returns StartAt + Duration.
func (t AssignedTask) EndsAt() time.Time { return t.StartAt.Add(t.Duration) }

// Overlaps reports whether t and o share an employee and their half-open
// intervals [StartAt, EndsAt) intersect.
func (t AssignedTask) Overlaps(o AssignedTask) bool {
	if t.Employee != o.Employee {
		return false
	}
	return t.StartAt.Before(o.EndsAt()) && o.StartAt.Before(t.EndsAt())
}

// NewUnassignedTask validates and constructs an UnassignedTask.
func NewUnassignedTask(id TaskId, description string, priority TaskPriority, requiredSkills map[string]SkillPoint, dependsOn *TaskId) (UnassignedTask, error) {
	base, err := newTaskBase(id, description, priority, requiredSkills, dependsOn)
	if err != nil {
		return UnassignedTask{}, err
	}
	return UnassignedTask{TaskBase: base}, nil
}

func newTaskBase(id TaskId, description string, priority TaskPriority, requiredSkills map[string]SkillPoint, dependsOn *TaskId) (TaskBase, error) {
	if strings.TrimSpace(description) == "" {
		return TaskBase{}, newValidationError("task.description", "must not be blank")
	}
	if !priority.Valid() {
		return TaskBase{}, newValidationError("task.priority", "invalid priority %d", priority)
	}
	cp := make(map[string]SkillPoint, len(requiredSkills))
	for k, v := range requiredSkills {
		cp[k] = v
	}
	var dep *TaskId
	if dependsOn != nil {
		d := *dependsOn
		dep = &d
	}
	return TaskBase{ID: id, Description: description, Priority: priority, RequiredSkills: cp, DependsOn: dep}, nil
}

// Assign returns a new AssignedTask carrying t's base fields. Pinned is
// false; pin explicitly with Pin if this assignment must survive scheduling.
func Assign(t Task, employee EmployeeId, start time.Time, duration time.Duration) AssignedTask {
	return AssignedTask{TaskBase: t.Base(), Employee: employee, StartAt: start, Duration: duration}
}

// Pin returns a with Pinned set to true.
func Pin(a AssignedTask) AssignedTask {
	a.Pinned = true
	return a
}

// Unassign returns a new UnassignedTask carrying t's base fields.
func Unassign(t Task) UnassignedTask {
	return UnassignedTask{TaskBase: t.Base()}
}

// ChangeDependency returns a copy of t with DependsOn replaced by dep.
func ChangeDependency(t Task, dep *TaskId) Task {
	base := t.Base()
	var d *TaskId
	if dep != nil {
		v := *dep
		d = &v
	}
	base.DependsOn = d
	switch v := t.(type) {
	case AssignedTask:
		v.TaskBase = base
		return v
	default:
		return UnassignedTask{TaskBase: base}
	}
}
