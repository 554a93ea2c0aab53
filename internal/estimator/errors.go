package estimator

import (
	"errors"
	"fmt"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// errSkillsNotSupported is returned by estimators (the matrix variant) whose
// skillsEstimation helper is not used for their estimation strategy.
var errSkillsNotSupported = errors.New("skillsEstimation: not supported by this estimator")

// IllegalNumSkillsError reports a skill vector shorter than two entries.
type IllegalNumSkillsError struct {
	Kind string // "employee" or "task"
	Size int
}

func (e *IllegalNumSkillsError) Error() string {
	return fmt.Sprintf("illegal number of %s skills: %d (need at least 2)", e.Kind, e.Size)
}

// IllegalSkillSetsError reports mismatched skill-vector lengths.
type IllegalSkillSetsError struct {
	NEmp  int
	NTask int
}

func (e *IllegalSkillSetsError) Error() string {
	return fmt.Sprintf("illegal skill sets: employee has %d skills, task requires %d", e.NEmp, e.NTask)
}

// UnknownEmployeeError reports an estimation-matrix lookup miss on an
// employee id.
type UnknownEmployeeError struct {
	EmployeeId domain.EmployeeId
}

func (e *UnknownEmployeeError) Error() string {
	return fmt.Sprintf("unknown employee: %s", e.EmployeeId)
}

// UnknownTaskError reports an estimation-matrix lookup miss on a task id.
type UnknownTaskError struct {
	TaskId domain.TaskId
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task: %s", e.TaskId)
}

// validateSkillVectors enforces the shared precondition of skillsEstimation:
// both vectors must have at least two entries and equal length.
func validateSkillVectors(employeeSkills, taskSkills []int) error {
	if len(employeeSkills) < 2 {
		return &IllegalNumSkillsError{Kind: "employee", Size: len(employeeSkills)}
	}
	if len(taskSkills) < 2 {
		return &IllegalNumSkillsError{Kind: "task", Size: len(taskSkills)}
	}
	if len(employeeSkills) != len(taskSkills) {
		return &IllegalSkillSetsError{NEmp: len(employeeSkills), NTask: len(taskSkills)}
	}
	return nil
}
