package cpengine

import (
	"fmt"
	"time"

	"github.com/pintowar/bellum-sub001/internal/decode"
	"github.com/pintowar/bellum-sub001/internal/domain"
)

// fixedMinutesChooser builds an EmployeeChooser that assigns the employee
// given by assignment, reading the duration from the model's precomputed
// matrix instead of calling the estimator again mid-search.
func fixedMinutesChooser(model *Model, assignment map[domain.TaskId]domain.EmployeeId) decode.EmployeeChooser {
	return func(task domain.Task, ready time.Time, employeeFree map[domain.EmployeeId]time.Time) (domain.EmployeeId, time.Duration, error) {
		employeeID, ok := assignment[task.Base().ID]
		if !ok {
			return domain.EmployeeId{}, 0, fmt.Errorf("cpengine: no assignment for task %s", task.Base().ID)
		}
		duration, ok := model.DurationOf(employeeID, task.Base().ID)
		if !ok {
			return domain.EmployeeId{}, 0, fmt.Errorf("cpengine: unknown employee/task pair %s/%s", employeeID, task.Base().ID)
		}
		return employeeID, duration, nil
	}
}
