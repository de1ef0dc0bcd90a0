package anim

import "time"

// DefaultDuration is the length of a selection transition.
const DefaultDuration = 300 * time.Millisecond

// TimingState is the observable state of a Timing evaluator.
type TimingState struct {
	Position float64
	Finished bool
	Time     time.Duration
}

// Timing interpolates linearly between two values over Duration.
type Timing struct {
	Clock    Clock
	Duration time.Duration
	State    TimingState

	from, to float64
}

// NewTiming returns a stopped timing. A non-positive duration means DefaultDuration.
func NewTiming(d time.Duration) *Timing {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Timing{Duration: d}
}

// Step returns the interpolated value at frame time now. start and dest are
// captured when the clock is stopped; later calls while running ignore them.
// Finished stays set until the next run begins.
func (t *Timing) Step(now time.Duration, start, dest float64) float64 {
	if !t.Clock.Running() {
		t.from, t.to = start, dest
		t.State = TimingState{Position: start}
		t.Clock.Start(now)
	}

	elapsed := t.Clock.Elapsed(now)
	t.State.Time = elapsed
	if elapsed >= t.Duration {
		t.State.Position = t.to
		t.State.Finished = true
		t.Clock.Stop()
		return t.State.Position
	}

	frac := float64(elapsed) / float64(t.Duration)
	t.State.Position = t.from + (t.to-t.from)*frac
	return t.State.Position
}

// Finished reports whether the last run reached its destination.
func (t *Timing) Finished() bool { return t.State.Finished }
