// Package testutil provides fixture builders for RCPSP domain objects,
// mirroring the teacher's functional-options fixture style.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// Kickoff is the fixed kickoff instant used by every sample project, chosen
// to match the scenario fixtures' expected wall-clock results.
var Kickoff = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

// EmployeeOption customizes a constructed Employee.
type EmployeeOption func(*employeeSpec)

type employeeSpec struct {
	name   string
	skills map[string]domain.SkillPoint
}

// WithSkills sets an employee's skill vector.
func WithSkills(skills map[string]domain.SkillPoint) EmployeeOption {
	return func(s *employeeSpec) { s.skills = skills }
}

// NewEmployee builds a validated Employee for tests, failing the test on
// construction error.
func NewEmployee(t *testing.T, name string, opts ...EmployeeOption) domain.Employee {
	t.Helper()
	spec := employeeSpec{name: name}
	for _, opt := range opts {
		opt(&spec)
	}
	emp, err := domain.NewEmployee(domain.NewEmployeeId(), spec.name, spec.skills)
	require.NoError(t, err)
	return emp
}

// TaskOption customizes a constructed UnassignedTask.
type TaskOption func(*taskSpec)

type taskSpec struct {
	priority  domain.TaskPriority
	skills    map[string]domain.SkillPoint
	dependsOn *domain.TaskId
}

// WithPriority sets a task's priority.
func WithPriority(p domain.TaskPriority) TaskOption {
	return func(s *taskSpec) { s.priority = p }
}

// WithRequiredSkills sets a task's required-skill vector.
func WithRequiredSkills(skills map[string]domain.SkillPoint) TaskOption {
	return func(s *taskSpec) { s.skills = skills }
}

// DependsOn sets a task's predecessor by id.
func DependsOn(id domain.TaskId) TaskOption {
	return func(s *taskSpec) { s.dependsOn = &id }
}

// NewTask builds a validated UnassignedTask for tests, failing the test on
// construction error.
func NewTask(t *testing.T, description string, opts ...TaskOption) domain.UnassignedTask {
	t.Helper()
	spec := taskSpec{priority: domain.PriorityMajor}
	for _, opt := range opts {
		opt(&spec)
	}
	tsk, err := domain.NewUnassignedTask(domain.NewTaskId(), description, spec.priority, spec.skills, spec.dependsOn)
	require.NoError(t, err)
	return tsk
}

// SampleFiveTaskProject is the S1/S2/S6 scenario fixture: 5 tasks, 3
// employees, with task3 depending on task1 and task4 depending on task2.
// Rows of DurationMatrix are indexed by Employees order; columns by Tasks
// order.
type SampleFiveTaskProject struct {
	Employees      []domain.Employee
	Tasks          []domain.UnassignedTask
	DurationMatrix [][]int
}

// NewSampleFiveTaskProject builds the S1 scenario fixture: E1/E2/E3 with
// duration matrix
//
//	E1: 10 20 30 40 50
//	E2: 15 25 35 45 55
//	E3: 12 22 32 42 52
//
// and precedences task3->task1, task4->task2 (task3 depends on task1,
// task4 depends on task2). The optimal CP assignment (E3: task1,task3;
// E1: task2,task4; E2: task5) achieves a 60-minute makespan from Kickoff.
func NewSampleFiveTaskProject(t *testing.T) SampleFiveTaskProject {
	t.Helper()

	e1 := NewEmployee(t, "E1")
	e2 := NewEmployee(t, "E2")
	e3 := NewEmployee(t, "E3")

	task1 := NewTask(t, "task1")
	task2 := NewTask(t, "task2")
	task5 := NewTask(t, "task5")
	task3 := NewTask(t, "task3", DependsOn(task1.ID))
	task4 := NewTask(t, "task4", DependsOn(task2.ID))

	return SampleFiveTaskProject{
		Employees: []domain.Employee{e1, e2, e3},
		Tasks:     []domain.UnassignedTask{task1, task2, task3, task4, task5},
		DurationMatrix: [][]int{
			{10, 20, 30, 40, 50},
			{15, 25, 35, 45, 55},
			{12, 22, 32, 42, 52},
		},
	}
}

// Project builds the domain.Project for this fixture with all tasks
// unassigned.
func (f SampleFiveTaskProject) Project(t *testing.T) domain.Project {
	t.Helper()
	tasks := make([]domain.Task, len(f.Tasks))
	for i, tsk := range f.Tasks {
		tasks[i] = tsk
	}
	p, err := domain.NewProject(domain.NewProjectId(), "sample-five-task", Kickoff, f.Employees, tasks)
	require.NoError(t, err)
	return p
}

// ProjectWithTask1Pinned builds the S2 scenario fixture: task1 pre-assigned
// to Employees[0] at Kickoff for the given duration, the rest unassigned.
func (f SampleFiveTaskProject) ProjectWithTask1Pinned(t *testing.T, duration time.Duration) domain.Project {
	t.Helper()
	tasks := make([]domain.Task, len(f.Tasks))
	for i, tsk := range f.Tasks {
		if i == 0 {
			pinned := domain.Pin(domain.Assign(tsk, f.Employees[0].ID(), Kickoff, duration))
			tasks[i] = pinned
			continue
		}
		tasks[i] = tsk
	}
	p, err := domain.NewProject(domain.NewProjectId(), "sample-five-task-pinned", Kickoff, f.Employees, tasks)
	require.NoError(t, err)
	return p
}

// NewCyclicThreeTaskProject builds the S4 scenario fixture: task1 depends
// on task5, task5 depends on task3, task3 depends on task1 (1->5->3->1).
func NewCyclicThreeTaskProject(t *testing.T) domain.Project {
	t.Helper()

	id1 := domain.NewTaskId()
	id3 := domain.NewTaskId()
	id5 := domain.NewTaskId()

	task1, err := domain.NewUnassignedTask(id1, "task1", domain.PriorityMajor, nil, &id5)
	require.NoError(t, err)
	task3, err := domain.NewUnassignedTask(id3, "task3", domain.PriorityMajor, nil, &id1)
	require.NoError(t, err)
	task5, err := domain.NewUnassignedTask(id5, "task5", domain.PriorityMajor, nil, &id3)
	require.NoError(t, err)

	emp := NewEmployee(t, "E1")
	p, err := domain.NewProject(domain.NewProjectId(), "cyclic", Kickoff, []domain.Employee{emp}, []domain.Task{task1, task3, task5})
	require.NoError(t, err)
	return p
}
