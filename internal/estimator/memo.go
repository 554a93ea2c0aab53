package estimator

import (
	"sync"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

type estimationKey struct {
	employee domain.EmployeeId
	task     domain.TaskId
}

// EstimationMatrix is a lazy memoizing cache over a TimeEstimator: each
// (employee, task) pair is estimated at most once, and the result reused on
// every subsequent lookup.
type EstimationMatrix struct {
	delegate TimeEstimator

	mu    sync.Mutex
	cache map[estimationKey]time.Duration
}

// NewEstimationMatrix wraps delegate with a memoizing cache.
func NewEstimationMatrix(delegate TimeEstimator) *EstimationMatrix {
	return &EstimationMatrix{
		delegate: delegate,
		cache:    make(map[estimationKey]time.Duration),
	}
}

// Estimate returns the cached duration for (employee, task) if present,
// otherwise calls the delegate estimator once and caches the result. The
// lock is held across the delegate call so concurrent callers for the same
// pair still only invoke the delegate once.
func (m *EstimationMatrix) Estimate(employee domain.Employee, task domain.Task) (time.Duration, error) {
	key := estimationKey{employee: employee.ID(), task: task.Base().ID}

	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.cache[key]; ok {
		return d, nil
	}

	d, err := m.delegate.Estimate(employee, task)
	if err != nil {
		return 0, err
	}
	m.cache[key] = d
	return d, nil
}
