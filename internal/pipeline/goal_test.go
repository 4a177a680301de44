package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReached(t *testing.T) {
	assert.False(t, Reached(4, 5))
	assert.True(t, Reached(5, 5))
	assert.True(t, Reached(5.01, 5))
}

func TestGoalEvaluator_FiresOncePerSegment(t *testing.T) {
	g := NewGoalEvaluator(5)
	fired := 0
	for metric := 0.0; metric <= 12; metric++ {
		if g.Observe(metric) {
			fired++
			assert.Equal(t, 5.0, metric)
		}
	}
	assert.Equal(t, 1, fired)
	assert.True(t, g.Reached())

	g.Reset()
	assert.False(t, g.Reached())
	assert.False(t, g.Observe(1))
	assert.True(t, g.Observe(7))
	assert.False(t, g.Observe(8))
}

func TestGoalEvaluator_Progress(t *testing.T) {
	g := NewGoalEvaluator(4)
	assert.Equal(t, 0.5, g.Progress(2))
	assert.Equal(t, 1.5, g.Progress(6))
	assert.Equal(t, 4.0, g.Goal())
	assert.Zero(t, NewGoalEvaluator(0).Progress(3))
}
