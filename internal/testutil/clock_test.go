package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_StartsAtZero(t *testing.T) {
	clock := NewStepClock()
	assert.Equal(t, int64(0), clock.Current())
}

func TestStepClock_NextIncrementsMonotonically(t *testing.T) {
	clock := NewStepClock()

	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(1), clock.Current())

	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(3), clock.Next())
	assert.Equal(t, int64(3), clock.Current())
}

func TestStepClock_Reset(t *testing.T) {
	clock := NewStepClock()
	clock.Next()
	clock.Next()

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}
