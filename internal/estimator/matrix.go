package estimator

import (
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// MatrixEstimator is a dense employee x task duration lookup table, indexed
// by the project's employee and task order at construction time.
// Estimate is a direct lookup; skillsEstimation is not used.
type MatrixEstimator struct {
	minutes   [][]int
	empIndex  map[domain.EmployeeId]int
	taskIndex map[domain.TaskId]int
}

// NewMatrixEstimator builds a MatrixEstimator from a project's employee and
// task ordering and a dense |employees| x |tasks| minute matrix.
func NewMatrixEstimator(employees []domain.Employee, tasks []domain.Task, minutes [][]int) (*MatrixEstimator, error) {
	if len(minutes) != len(employees) {
		return nil, &domain.ValidationError{Path: "matrix.rows", Message: "row count must match employee count"}
	}
	for _, row := range minutes {
		if len(row) != len(tasks) {
			return nil, &domain.ValidationError{Path: "matrix.cols", Message: "column count must match task count"}
		}
	}

	empIndex := make(map[domain.EmployeeId]int, len(employees))
	for i, e := range employees {
		empIndex[e.ID()] = i
	}
	taskIndex := make(map[domain.TaskId]int, len(tasks))
	for i, t := range tasks {
		taskIndex[t.Base().ID] = i
	}

	rows := make([][]int, len(minutes))
	for i, row := range minutes {
		rows[i] = append([]int(nil), row...)
	}

	return &MatrixEstimator{minutes: rows, empIndex: empIndex, taskIndex: taskIndex}, nil
}

func (m *MatrixEstimator) Estimate(employee domain.Employee, task domain.Task) (time.Duration, error) {
	ei, ok := m.empIndex[employee.ID()]
	if !ok {
		return 0, &UnknownEmployeeError{EmployeeId: employee.ID()}
	}
	ti, ok := m.taskIndex[task.Base().ID]
	if !ok {
		return 0, &UnknownTaskError{TaskId: task.Base().ID}
	}
	return time.Duration(m.minutes[ei][ti]) * time.Minute, nil
}

func (m *MatrixEstimator) skillsEstimation(employeeSkills, taskSkills []int) (time.Duration, error) {
	return 0, errSkillsNotSupported
}
