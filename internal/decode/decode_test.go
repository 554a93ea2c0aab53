package decode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
	"github.com/pintowar/bellum-sub001/internal/testutil"
)

func TestSchedule_EarliestFinishChooser_RespectsDependencies(t *testing.T) {
	fixture := testutil.NewSampleFiveTaskProject(t)
	project := fixture.Project(t)

	matrixEst, err := estimator.NewMatrixEstimator(fixture.Employees, taskSlice(fixture), fixture.DurationMatrix)
	require.NoError(t, err)

	order, err := RepairOrder(project.AllTasks(), idsOf(project.AllTasks()))
	require.NoError(t, err)

	scheduled, err := Schedule(project, order, EarliestFinishChooser(project, matrixEst))
	require.NoError(t, err)

	task1, ok := scheduled.FindTask(fixture.Tasks[0].ID)
	require.True(t, ok)
	task3, ok := scheduled.FindTask(fixture.Tasks[2].ID)
	require.True(t, ok)

	a1 := task1.(domain.AssignedTask)
	a3 := task3.(domain.AssignedTask)
	assert.False(t, a3.StartAt.Before(a1.EndsAt()), "task3 must not start before task1 ends")
	assert.True(t, scheduled.IsValid())
	assert.Equal(t, domain.ScheduledComplete, scheduled.ScheduledStatus())
}

func TestSchedule_Deterministic(t *testing.T) {
	fixture := testutil.NewSampleFiveTaskProject(t)
	project := fixture.Project(t)
	matrixEst, err := estimator.NewMatrixEstimator(fixture.Employees, taskSlice(fixture), fixture.DurationMatrix)
	require.NoError(t, err)

	order, err := RepairOrder(project.AllTasks(), idsOf(project.AllTasks()))
	require.NoError(t, err)

	first, err := Schedule(project, order, EarliestFinishChooser(project, matrixEst))
	require.NoError(t, err)
	second, err := Schedule(project, order, EarliestFinishChooser(project, matrixEst))
	require.NoError(t, err)

	for _, t1 := range first.AllTasks() {
		t2, ok := second.FindTask(t1.Base().ID)
		require.True(t, ok)
		assert.Equal(t, t1, t2)
	}
}

func TestSchedule_PreservesPinnedTask(t *testing.T) {
	fixture := testutil.NewSampleFiveTaskProject(t)
	project := fixture.ProjectWithTask1Pinned(t, 10*time.Minute)

	matrixEst, err := estimator.NewMatrixEstimator(fixture.Employees, taskSlice(fixture), fixture.DurationMatrix)
	require.NoError(t, err)

	order, err := RepairOrder(project.AllTasks(), idsOf(project.AllTasks()))
	require.NoError(t, err)

	scheduled, err := Schedule(project, order, EarliestFinishChooser(project, matrixEst))
	require.NoError(t, err)

	task1, ok := scheduled.FindTask(fixture.Tasks[0].ID)
	require.True(t, ok)
	a1 := task1.(domain.AssignedTask)
	assert.True(t, a1.Pinned)
	assert.Equal(t, fixture.Employees[0].ID(), a1.Employee)
	assert.True(t, a1.StartAt.Equal(testutil.Kickoff))
	assert.Equal(t, 10*time.Minute, a1.Duration)
}

func TestRepairOrder_DetectsCycle(t *testing.T) {
	project := testutil.NewCyclicThreeTaskProject(t)
	_, err := RepairOrder(project.AllTasks(), idsOf(project.AllTasks()))
	require.Error(t, err)
}

func taskSlice(f testutil.SampleFiveTaskProject) []domain.Task {
	tasks := make([]domain.Task, len(f.Tasks))
	for i, t := range f.Tasks {
		tasks[i] = t
	}
	return tasks
}

func idsOf(tasks []domain.Task) []domain.TaskId {
	ids := make([]domain.TaskId, len(tasks))
	for i, t := range tasks {
		ids[i] = t.Base().ID
	}
	return ids
}
