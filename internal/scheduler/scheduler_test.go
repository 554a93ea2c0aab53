package scheduler

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveParallelism(t *testing.T) {
	assert.Equal(t, 1, ResolveParallelism(1))
	assert.Equal(t, 4, ResolveParallelism(4))
	assert.Equal(t, 1, ResolveParallelism(0))

	auto := ResolveParallelism(-1)
	assert.GreaterOrEqual(t, auto, 1)
	assert.LessOrEqual(t, auto, runtime.NumCPU())
}
