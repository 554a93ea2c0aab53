package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func mustEmployee(t *testing.T, name string) Employee {
	t.Helper()
	e, err := NewEmployee(NewEmployeeId(), name, map[string]SkillPoint{"go": 5})
	require.NoError(t, err)
	return e
}

func mustUnassigned(t *testing.T, desc string, prio TaskPriority, dep *TaskId) UnassignedTask {
	t.Helper()
	task, err := NewUnassignedTask(NewTaskId(), desc, prio, map[string]SkillPoint{"go": 3}, dep)
	require.NoError(t, err)
	return task
}

func TestProject_ScheduledStatus(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	t1 := mustUnassigned(t, "t1", PriorityMajor, nil)
	t2 := mustUnassigned(t, "t2", PriorityMajor, nil)

	empty, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, nil)
	require.NoError(t, err)
	assert.Equal(t, ScheduledComplete, empty.ScheduledStatus(), "no tasks means vacuously scheduled")

	none, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{t1, t2})
	require.NoError(t, err)
	assert.Equal(t, ScheduledNone, none.ScheduledStatus())

	a1 := Assign(t1, emp.ID(), kickoff, 10*time.Minute)
	partial := none.WithTasks([]Task{a1, t2})
	assert.Equal(t, ScheduledPartial, partial.ScheduledStatus())

	a2 := Assign(t2, emp.ID(), kickoff.Add(10*time.Minute), 5*time.Minute)
	full := none.WithTasks([]Task{a1, a2})
	assert.Equal(t, ScheduledComplete, full.ScheduledStatus())
}

func TestProject_EndsAtAndTotalDuration(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	t1 := mustUnassigned(t, "t1", PriorityMajor, nil)
	a1 := Assign(t1, emp.ID(), kickoff, 90*time.Minute)

	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{a1})
	require.NoError(t, err)

	end, ok := p.EndsAt()
	require.True(t, ok)
	assert.Equal(t, kickoff.Add(90*time.Minute), end)

	dur, ok := p.TotalDuration()
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, dur)
}

func TestProject_PriorityCost_CountsInversions(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	low := mustUnassigned(t, "low-priority-first", PriorityMinor, nil)  // value 3
	high := mustUnassigned(t, "high-priority-second", PriorityCritical, nil) // value 1

	aLow := Assign(low, emp.ID(), kickoff, 10*time.Minute)
	aHigh := Assign(high, emp.ID(), kickoff.Add(10*time.Minute), 10*time.Minute)

	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{aLow, aHigh})
	require.NoError(t, err)
	assert.Equal(t, 1, p.PriorityCost(), "lower-priority task started before the higher-priority one")
}

func TestProject_Validate_DanglingDependency(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	missing := TaskId(NewTaskId())
	t1 := mustUnassigned(t, "t1", PriorityMajor, &missing)

	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{t1})
	require.NoError(t, err)

	err = p.Validate()
	require.Error(t, err)
	var ute *UnknownTaskError
	assert.ErrorAs(t, err, &ute)
	assert.False(t, p.IsValid())
}

// TestProject_Validate_CycleRejection implements scenario S4: tasks 1->5->3->1
// form a cycle and Validate must report it with the cycle path in the message.
func TestProject_Validate_CycleRejection(t *testing.T) {
	id1, id3, id5 := NewTaskId(), NewTaskId(), NewTaskId()

	t1, err := NewUnassignedTask(id1, "task1", PriorityMajor, nil, &id5)
	require.NoError(t, err)
	t3, err := NewUnassignedTask(id3, "task3", PriorityMajor, nil, &id1)
	require.NoError(t, err)
	t5, err := NewUnassignedTask(id5, "task5", PriorityMajor, nil, &id3)
	require.NoError(t, err)

	emp := mustEmployee(t, "Alice")
	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{t1, t3, t5})
	require.NoError(t, err)

	assert.False(t, p.IsValid())
	verr := p.Validate()
	require.Error(t, verr)
	var cerr *CircularDependencyError
	require.ErrorAs(t, verr, &cerr)
	assert.Contains(t, verr.Error(), "circular dependency")
	assert.GreaterOrEqual(t, len(cerr.Path), 3)
}

func TestProject_Validate_OverlapRejected(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	t1 := mustUnassigned(t, "t1", PriorityMajor, nil)
	t2 := mustUnassigned(t, "t2", PriorityMajor, nil)

	a1 := Assign(t1, emp.ID(), kickoff, 30*time.Minute)
	a2 := Assign(t2, emp.ID(), kickoff.Add(10*time.Minute), 30*time.Minute) // overlaps a1

	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{a1, a2})
	require.NoError(t, err)

	assert.False(t, p.IsValid())
	var oerr *OverlapError
	assert.ErrorAs(t, p.Validate(), &oerr)
}

func TestProject_Validate_PrecedenceRespected(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	pred := mustUnassigned(t, "pred", PriorityMajor, nil)
	predID := pred.ID
	succ := mustUnassigned(t, "succ", PriorityMajor, &predID)

	aPred := Assign(pred, emp.ID(), kickoff, 30*time.Minute)
	aSucc := Assign(succ, emp.ID(), aPred.EndsAt(), 10*time.Minute)

	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{aPred, aSucc})
	require.NoError(t, err)
	assert.True(t, p.IsValid())
}

func TestProject_Validate_PrecedenceViolated(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	pred := mustUnassigned(t, "pred", PriorityMajor, nil)
	predID := pred.ID
	succ := mustUnassigned(t, "succ", PriorityMajor, &predID)

	aPred := Assign(pred, emp.ID(), kickoff, 30*time.Minute)
	// starts before predecessor ends, and on a different employee so it
	// isn't caught by the overlap check instead.
	other := mustEmployee(t, "Bob")
	aSucc := Assign(succ, other.ID(), kickoff.Add(5*time.Minute), 10*time.Minute)

	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp, other}, []Task{aPred, aSucc})
	require.NoError(t, err)

	assert.False(t, p.IsValid())
	var perr *PrecedenceViolationError
	assert.ErrorAs(t, p.Validate(), &perr)
}

func TestProject_DuplicateIdsRejected(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	_, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp, emp}, nil)
	require.Error(t, err)
}

func TestProject_WithTasksDoesNotMutateOriginal(t *testing.T) {
	emp := mustEmployee(t, "Alice")
	t1 := mustUnassigned(t, "t1", PriorityMajor, nil)
	p, err := NewProject(NewProjectId(), "P", kickoff, []Employee{emp}, []Task{t1})
	require.NoError(t, err)

	a1 := Assign(t1, emp.ID(), kickoff, 10*time.Minute)
	scheduled := p.WithTasks([]Task{a1})

	assert.Equal(t, ScheduledNone, p.ScheduledStatus(), "original project must remain unassigned")
	assert.Equal(t, ScheduledComplete, scheduled.ScheduledStatus())
}
