package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

func TestPearsonEstimator_SkillsEstimation_IdenticalVectors(t *testing.T) {
	d, err := PearsonEstimator{}.skillsEstimation([]int{1, 2, 3}, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)
}

func TestPearsonEstimator_SkillsEstimation_ReversedVectors(t *testing.T) {
	d, err := PearsonEstimator{}.skillsEstimation([]int{1, 2, 3}, []int{3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 85*time.Minute, d)
}

func TestPearsonEstimator_SkillsEstimation_ConstantVector(t *testing.T) {
	d, err := PearsonEstimator{}.skillsEstimation([]int{1, 2, 3}, []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, d)
}

func TestPearsonEstimator_SkillsEstimation_MismatchedLengths(t *testing.T) {
	_, err := PearsonEstimator{}.skillsEstimation([]int{1, 2}, []int{1, 2, 3})
	require.Error(t, err)
	var mismatch *IllegalSkillSetsError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.NEmp)
	assert.Equal(t, 3, mismatch.NTask)
}

func TestPearsonEstimator_SkillsEstimation_EmptyVectors(t *testing.T) {
	_, err := PearsonEstimator{}.skillsEstimation(nil, nil)
	require.Error(t, err)
	var illegal *IllegalNumSkillsError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "employee", illegal.Kind)
	assert.Equal(t, 0, illegal.Size)
}

func skillMap(t *testing.T, values ...int) map[string]domain.SkillPoint {
	t.Helper()
	names := []string{"a", "b", "c", "d", "e"}
	require.LessOrEqual(t, len(values), len(names))
	m := make(map[string]domain.SkillPoint, len(values))
	for i, v := range values {
		sp, err := domain.NewSkillPoint(v)
		require.NoError(t, err)
		m[names[i]] = sp
	}
	return m
}

func TestPearsonEstimator_Estimate_AlignsViaSkillUnion(t *testing.T) {
	emp, err := domain.NewEmployee(domain.NewEmployeeId(), "e", skillMap(t, 1, 2, 3))
	require.NoError(t, err)
	task, err := domain.NewUnassignedTask(domain.NewTaskId(), "t", domain.PriorityMajor, skillMap(t, 1, 2, 3), nil)
	require.NoError(t, err)

	d, err := PearsonEstimator{}.Estimate(emp, task)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)
}

func TestPearsonEstimator_Estimate_MissingKeysDefaultToZero(t *testing.T) {
	empSkills := map[string]domain.SkillPoint{"go": 5}
	taskSkills := map[string]domain.SkillPoint{"rust": 5}
	emp, err := domain.NewEmployee(domain.NewEmployeeId(), "e", empSkills)
	require.NoError(t, err)
	task, err := domain.NewUnassignedTask(domain.NewTaskId(), "t", domain.PriorityMajor, taskSkills, nil)
	require.NoError(t, err)

	d, err := PearsonEstimator{}.Estimate(emp, task)
	require.NoError(t, err)
	assert.Equal(t, 85*time.Minute, d, "disjoint skill keys align to [5,0] vs [0,5], perfectly anti-correlated")
}

func TestPearsonEstimator_Estimate_TooFewSkills(t *testing.T) {
	emp, err := domain.NewEmployee(domain.NewEmployeeId(), "e", nil)
	require.NoError(t, err)
	task, err := domain.NewUnassignedTask(domain.NewTaskId(), "t", domain.PriorityMajor, nil, nil)
	require.NoError(t, err)

	_, err = PearsonEstimator{}.Estimate(emp, task)
	require.Error(t, err)
	var illegal *IllegalNumSkillsError
	require.ErrorAs(t, err, &illegal)
}
