package domain

// TaskPriority ranks tasks for the secondary scheduling objective. Lower
// value means higher priority: a task with a smaller value must not start
// after a task with a larger value, all else equal (see Project.PriorityCost).
type TaskPriority int

const (
	PriorityCritical TaskPriority = 1
	PriorityMajor    TaskPriority = 2
	PriorityMinor    TaskPriority = 3
)

// Value returns the wire/comparator ordinal for the priority.
func (p TaskPriority) Value() int { return int(p) }

func (p TaskPriority) String() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityMajor:
		return "MAJOR"
	case PriorityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether p is one of the three defined priority levels.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityMajor, PriorityMinor:
		return true
	default:
		return false
	}
}
