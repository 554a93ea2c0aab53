// Package estimator implements the TimeEstimator abstraction: a
// skill-correlation (Pearson) variant, an explicit-lookup (Matrix) variant,
// and a memoizing cache (EstimationMatrix) wrapping either.
package estimator

import (
	"sort"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// TimeEstimator estimates how long a task will take a given employee.
type TimeEstimator interface {
	Estimate(employee domain.Employee, task domain.Task) (time.Duration, error)
}

// skillEstimator is the protected hook concrete estimators implement to
// turn two aligned, equal-length skill vectors into a duration. It backs
// the default Estimate() template implemented by estimateViaSkillUnion.
type skillEstimator interface {
	skillsEstimation(employeeSkills, taskSkills []int) (time.Duration, error)
}

// estimateViaSkillUnion builds the union of employee and task skill keys
// (missing key -> 0), aligns them into two equal-length integer vectors in
// a deterministic (sorted) key order, and delegates to se.
func estimateViaSkillUnion(se skillEstimator, employee domain.Employee, task domain.Task) (time.Duration, error) {
	empSkills := employee.Skills()
	taskSkills := task.Base().RequiredSkills

	keySet := make(map[string]struct{}, len(empSkills)+len(taskSkills))
	for k := range empSkills {
		keySet[k] = struct{}{}
	}
	for k := range taskSkills {
		keySet[k] = struct{}{}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	empVec := make([]int, len(keys))
	taskVec := make([]int, len(keys))
	for i, k := range keys {
		empVec[i] = empSkills[k].Int()
		taskVec[i] = taskSkills[k].Int()
	}

	return se.skillsEstimation(empVec, taskVec)
}
