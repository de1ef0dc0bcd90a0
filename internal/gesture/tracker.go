// Package gesture recognizes horizontal pans and taps from raw pointer state.
package gesture

import (
	"math"
	"time"

	"github.com/depeter/photostrip/internal/interaction"
)

const (
	DefaultSlop           = 10
	DefaultVelocityWindow = 100 * time.Millisecond
)

// Event is the result of one Update.
type Event struct {
	// Sample is the pan state to forward to the engine. It is only meaningful
	// when Changed is set.
	Sample  interaction.Sample
	Changed bool

	// Tap is set on the frame a press ends without becoming a pan. X and Y
	// are where the press started.
	Tap  bool
	X, Y float64
}

type point struct {
	x float64
	t time.Duration
}

// Tracker turns per-frame pointer state into pan samples. A press becomes a
// pan once it moves more than Slop horizontally; a release before that is a
// tap, unless the pointer strayed more than Slop vertically.
type Tracker struct {
	Slop           float64
	VelocityWindow time.Duration

	down           bool
	startX, startY float64
	strayed        bool
	phase          interaction.Phase
	recent         []point
}

func NewTracker() *Tracker {
	return &Tracker{Slop: DefaultSlop, VelocityWindow: DefaultVelocityWindow}
}

// Phase is the current recognizer phase.
func (t *Tracker) Phase() interaction.Phase { return t.phase }

// Update consumes the pointer state for the frame at time now.
func (t *Tracker) Update(pressed bool, x, y float64, now time.Duration) Event {
	switch {
	case pressed && !t.down:
		t.down = true
		t.startX, t.startY = x, y
		t.strayed = false
		t.recent = t.recent[:0]
		t.record(x, now)
		return t.emit(interaction.PhaseBegan, 0, 0)

	case pressed:
		t.record(x, now)
		dx := x - t.startX
		if t.phase == interaction.PhaseBegan {
			if math.Abs(y-t.startY) > t.Slop {
				t.strayed = true
			}
			if t.strayed || math.Abs(dx) <= t.Slop {
				return Event{}
			}
		}
		return t.emit(interaction.PhaseActive, dx, 0)

	case t.down:
		t.down = false
		t.record(x, now)
		if t.phase == interaction.PhaseActive {
			return t.emit(interaction.PhaseEnd, x-t.startX, t.velocity())
		}
		ev := t.emit(interaction.PhaseFailed, 0, 0)
		if !t.strayed {
			ev.Tap, ev.X, ev.Y = true, t.startX, t.startY
		}
		return ev
	}
	return Event{}
}

// Cancel aborts an ongoing press, e.g. when the window loses focus.
func (t *Tracker) Cancel() Event {
	if !t.down {
		return Event{}
	}
	t.down = false
	if t.phase == interaction.PhaseActive {
		return t.emit(interaction.PhaseCancelled, t.recent[len(t.recent)-1].x-t.startX, 0)
	}
	return t.emit(interaction.PhaseFailed, 0, 0)
}

func (t *Tracker) emit(phase interaction.Phase, tx, vx float64) Event {
	t.phase = phase
	return Event{
		Sample:  interaction.Sample{TranslationX: tx, VelocityX: vx, Phase: phase},
		Changed: true,
	}
}

func (t *Tracker) record(x float64, now time.Duration) {
	t.recent = append(t.recent, point{x: x, t: now})
	cut := 0
	for cut < len(t.recent)-1 && now-t.recent[cut].t > t.VelocityWindow {
		cut++
	}
	t.recent = append(t.recent[:0], t.recent[cut:]...)
}

// velocity is px/s over the recorded window.
func (t *Tracker) velocity() float64 {
	if len(t.recent) < 2 {
		return 0
	}
	first, last := t.recent[0], t.recent[len(t.recent)-1]
	dt := (last.t - first.t).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}
