package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnassignedTask_BlankDescription(t *testing.T) {
	_, err := NewUnassignedTask(NewTaskId(), "  ", PriorityMajor, nil, nil)
	require.Error(t, err)
}

func TestNewUnassignedTask_InvalidPriority(t *testing.T) {
	_, err := NewUnassignedTask(NewTaskId(), "desc", TaskPriority(99), nil, nil)
	require.Error(t, err)
}

func TestAssignThenUnassign_RoundTrips(t *testing.T) {
	u, err := NewUnassignedTask(NewTaskId(), "desc", PriorityMinor, map[string]SkillPoint{"go": 4}, nil)
	require.NoError(t, err)

	empID := NewEmployeeId()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a := Assign(u, empID, start, 2*time.Hour)

	assert.Equal(t, empID, a.Employee)
	assert.Equal(t, start, a.StartAt)
	assert.Equal(t, start.Add(2*time.Hour), a.EndsAt())
	assert.False(t, a.Pinned)

	pinned := Pin(a)
	assert.True(t, pinned.Pinned)

	back := Unassign(pinned)
	assert.Equal(t, u.ID, back.ID)
	assert.Equal(t, u.Description, back.Description)
}

func TestChangeDependency(t *testing.T) {
	u, err := NewUnassignedTask(NewTaskId(), "desc", PriorityMajor, nil, nil)
	require.NoError(t, err)

	dep := NewTaskId()
	changed := ChangeDependency(u, &dep)
	assert.Equal(t, &dep, changed.Base().DependsOn)

	cleared := ChangeDependency(changed, nil)
	assert.Nil(t, cleared.Base().DependsOn)
}

func TestAssignedTask_Overlaps(t *testing.T) {
	u1, _ := NewUnassignedTask(NewTaskId(), "t1", PriorityMajor, nil, nil)
	u2, _ := NewUnassignedTask(NewTaskId(), "t2", PriorityMajor, nil, nil)
	emp := NewEmployeeId()
	other := NewEmployeeId()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a1 := Assign(u1, emp, start, time.Hour)

	overlapping := Assign(u2, emp, start.Add(30*time.Minute), time.Hour)
	assert.True(t, a1.Overlaps(overlapping))

	adjacent := Assign(u2, emp, a1.EndsAt(), time.Hour)
	assert.False(t, a1.Overlaps(adjacent), "half-open intervals touching at the boundary do not overlap")

	differentEmployee := Assign(u2, other, start, time.Hour)
	assert.False(t, a1.Overlaps(differentEmployee))
}
