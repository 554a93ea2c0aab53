package main

import (
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
)

// demoProject builds a five-task sample project with the same duration
// matrix and precedences as the test suite's sample fixture (three
// employees, task3 depending on task1 and task4 depending on task2), but
// with its own task names and mixed priorities, kicking off at the given
// instant.
func demoProject(kickOff time.Time) (domain.Project, estimator.TimeEstimator, error) {
	e1, err := domain.NewEmployee(domain.NewEmployeeId(), "Alice", nil)
	if err != nil {
		return domain.Project{}, nil, err
	}
	e2, err := domain.NewEmployee(domain.NewEmployeeId(), "Bob", nil)
	if err != nil {
		return domain.Project{}, nil, err
	}
	e3, err := domain.NewEmployee(domain.NewEmployeeId(), "Carla", nil)
	if err != nil {
		return domain.Project{}, nil, err
	}
	employees := []domain.Employee{e1, e2, e3}

	task1, err := domain.NewUnassignedTask(domain.NewTaskId(), "design schema", domain.PriorityCritical, nil, nil)
	if err != nil {
		return domain.Project{}, nil, err
	}
	task2, err := domain.NewUnassignedTask(domain.NewTaskId(), "write API docs", domain.PriorityMinor, nil, nil)
	if err != nil {
		return domain.Project{}, nil, err
	}
	task5, err := domain.NewUnassignedTask(domain.NewTaskId(), "set up CI", domain.PriorityMajor, nil, nil)
	if err != nil {
		return domain.Project{}, nil, err
	}
	task1ID := task1.ID
	task2ID := task2.ID
	task3, err := domain.NewUnassignedTask(domain.NewTaskId(), "implement migrations", domain.PriorityMajor, nil, &task1ID)
	if err != nil {
		return domain.Project{}, nil, err
	}
	task4, err := domain.NewUnassignedTask(domain.NewTaskId(), "publish API docs", domain.PriorityMinor, nil, &task2ID)
	if err != nil {
		return domain.Project{}, nil, err
	}

	tasks := []domain.Task{task1, task2, task3, task4, task5}
	project, err := domain.NewProject(domain.NewProjectId(), "rcpss-demo", kickOff, employees, tasks)
	if err != nil {
		return domain.Project{}, nil, err
	}

	matrix := [][]int{
		{10, 20, 30, 40, 50},
		{15, 25, 35, 45, 55},
		{12, 22, 32, 42, 52},
	}
	est, err := estimator.NewMatrixEstimator(employees, tasks, matrix)
	if err != nil {
		return domain.Project{}, nil, err
	}
	return project, est, nil
}
