package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

func TestNewSampleFiveTaskProject_IsValid(t *testing.T) {
	fixture := NewSampleFiveTaskProject(t)
	project := fixture.Project(t)
	assert.True(t, project.IsValid())
	assert.Len(t, project.AllEmployees(), 3)
	assert.Len(t, project.AllTasks(), 5)
}

func TestProjectWithTask1Pinned_PreservesPin(t *testing.T) {
	fixture := NewSampleFiveTaskProject(t)
	project := fixture.ProjectWithTask1Pinned(t, 10*time.Minute)

	task1, ok := project.FindTask(fixture.Tasks[0].ID)
	require.True(t, ok)
	assigned, ok := task1.(domain.AssignedTask)
	require.True(t, ok)
	assert.True(t, assigned.Pinned)
	assert.Equal(t, fixture.Employees[0].ID(), assigned.Employee)
	assert.True(t, assigned.StartAt.Equal(Kickoff))
	assert.Equal(t, 10*time.Minute, assigned.Duration)
}

func TestNewCyclicThreeTaskProject_IsInvalid(t *testing.T) {
	project := NewCyclicThreeTaskProject(t)
	err := project.Validate()
	require.Error(t, err)
	assert.False(t, project.IsValid())
}
