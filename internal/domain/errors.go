package domain

import "fmt"

// ValidationError reports a failed value-type construction or project
// invariant check. Path identifies the field or invariant that failed.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func newValidationError(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// CircularDependencyError reports a cycle found in a project's precedence
// graph. Path lists the task ids that form the cycle, in traversal order.
type CircularDependencyError struct {
	Path []TaskId
}

func (e *CircularDependencyError) Error() string {
	msg := "circular dependency detected: "
	for i, id := range e.Path {
		if i > 0 {
			msg += " -> "
		}
		msg += id.String()
	}
	return msg
}

// UnknownTaskError reports a dependsOn reference to a task id that is not
// present in the project.
type UnknownTaskError struct {
	TaskId TaskId
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task referenced: %s", e.TaskId)
}

// OverlapError reports two assigned tasks sharing an employee whose
// intervals intersect.
type OverlapError struct {
	Employee EmployeeId
	First    TaskId
	Second   TaskId
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("employee %s has overlapping tasks %s and %s", e.Employee, e.First, e.Second)
}

// PrecedenceViolationError reports a task starting before its dependency ends.
type PrecedenceViolationError struct {
	Predecessor TaskId
	Successor   TaskId
}

func (e *PrecedenceViolationError) Error() string {
	return fmt.Sprintf("task %s starts before its dependency %s ends", e.Successor, e.Predecessor)
}
