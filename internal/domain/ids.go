package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// EmployeeId, TaskId and ProjectId are opaque, globally-unique, time-ordered
// identifiers (UUIDv7 semantics: monotonic by creation time, collision-free
// in practice). Equality is by value since they wrap a comparable [16]byte
// array.
type (
	EmployeeId uuid.UUID
	TaskId     uuid.UUID
	ProjectId  uuid.UUID
)

// NewEmployeeId mints a fresh time-ordered employee id.
func NewEmployeeId() EmployeeId { return EmployeeId(mustNewV7()) }

// NewTaskId mints a fresh time-ordered task id.
func NewTaskId() TaskId { return TaskId(mustNewV7()) }

// NewProjectId mints a fresh time-ordered project id.
func NewProjectId() ProjectId { return ProjectId(mustNewV7()) }

// mustNewV7 panics only if the platform's entropy source is broken, which
// uuid.NewV7 treats as unrecoverable for any caller generating ids at runtime.
func mustNewV7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(fmt.Sprintf("domain: generating uuidv7: %v", err))
	}
	return id
}

func (id EmployeeId) String() string { return uuid.UUID(id).String() }
func (id TaskId) String() string     { return uuid.UUID(id).String() }
func (id ProjectId) String() string  { return uuid.UUID(id).String() }

// ParseEmployeeId parses a canonical UUID string into an EmployeeId.
func ParseEmployeeId(s string) (EmployeeId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EmployeeId{}, newValidationError("employeeId", "invalid id %q: %v", s, err)
	}
	return EmployeeId(id), nil
}

// ParseTaskId parses a canonical UUID string into a TaskId.
func ParseTaskId(s string) (TaskId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskId{}, newValidationError("taskId", "invalid id %q: %v", s, err)
	}
	return TaskId(id), nil
}

// ParseProjectId parses a canonical UUID string into a ProjectId.
func ParseProjectId(s string) (ProjectId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectId{}, newValidationError("projectId", "invalid id %q: %v", s, err)
	}
	return ProjectId(id), nil
}
