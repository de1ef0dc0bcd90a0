// Package anim holds the frame-driven evaluators that move the strip: a
// momentum decay, a damped spring and a linear timing. Each one wraps a Clock.
// A stopped clock means the next Step seeds fresh state from its arguments;
// a running clock means Step continues where the last frame left off.
package anim

import "time"

// Clock gates an evaluator. Callers decide when to stop it.
type Clock struct {
	running bool
	started time.Duration
}

// Start marks the clock running from now. Starting a running clock is a no-op.
func (c *Clock) Start(now time.Duration) {
	if c.running {
		return
	}
	c.running = true
	c.started = now
}

// Stop halts the clock.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether the clock has been started and not stopped since.
func (c *Clock) Running() bool {
	return c.running
}

// Elapsed is the time since Start, or 0 for a stopped clock.
func (c *Clock) Elapsed(now time.Duration) time.Duration {
	if !c.running {
		return 0
	}
	return now - c.started
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
