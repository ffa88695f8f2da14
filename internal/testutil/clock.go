package testutil

// StepClock numbers the operations of a scenario run.
//
// The first call to Next returns 1. A fresh clock per run keeps step numbers
// identical across runs so golden traces compare byte for byte.
//
// Not safe for concurrent use; a scenario executes its steps in order.
type StepClock struct {
	seq int64
}

// NewStepClock creates a clock starting at 0.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Next advances the clock and returns the new step number.
func (c *StepClock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the last step number handed out, or 0.
func (c *StepClock) Current() int64 {
	return c.seq
}

// Reset rewinds the clock so the next call to Next returns 1.
func (c *StepClock) Reset() {
	c.seq = 0
}
