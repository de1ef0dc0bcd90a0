package interaction

import (
	"math"
	"time"
)

// Friction is the divisor applied to drag deltas when the row is pulled past
// a boundary: 1 in bounds, growing linearly with the overshoot and saturating
// at maxFriction once the overshoot reaches span.
func Friction(overshoot, maxFriction, span float64) float64 {
	return math.Max(1, math.Min(maxFriction, 1+overshoot*(maxFriction-1)/span))
}

// overshoot is how far position lies outside [right, 0].
func overshoot(position, right float64) float64 {
	switch {
	case position > 0:
		return position
	case position < right:
		return right - position
	}
	return 0
}

// RightBoundary is the most negative offset the row may rest at. It is
// measured against the expanded row whenever the strip is expanded or on its
// way there, so a selection change mid-drag moves the bound with it.
func (e *Engine) RightBoundary() float64 {
	w := e.collapsedWidth
	if e.state.usesExpandedRow() {
		w = e.expandedWidth
	}
	return math.Min(e.cfg.ContainerWidth-w, 0)
}

// dragAndRelease moves the row with the finger while the pan is active and
// settles it once released: springs back past either bound, momentum decay
// for a fling inside them, otherwise the row stays put. The release velocity
// is consumed by whichever branch first handles it.
func (e *Engine) dragAndRelease(now time.Duration) {
	right := e.RightBoundary()

	if e.gesture.Phase == PhaseActive {
		e.setDriver(DriverDrag)
		e.decay.Clock.Stop()
		e.spring.Clock.Stop()

		delta := e.gesture.TranslationX - e.lastTranslation
		e.position += delta / Friction(overshoot(e.position, right), e.cfg.MaxFriction, e.cfg.FrictionSpan)
		e.lastTranslation = e.gesture.TranslationX
		return
	}

	e.lastTranslation = 0
	switch {
	case e.position > 0:
		e.setDriver(DriverSpring)
		e.position = e.spring.Step(now, e.position, 0)
		e.gesture.VelocityX = 0
	case e.position < right:
		e.setDriver(DriverSpring)
		e.position = e.spring.Step(now, e.position, right)
		e.gesture.VelocityX = 0
	case e.decay.Clock.Running():
		e.position = e.decay.Step(now, e.position, 0)
	case e.position < 0 && e.position > right &&
		math.Abs(e.gesture.VelocityX) > e.cfg.FlingThreshold &&
		!e.spring.Clock.Running():
		e.setDriver(DriverDecay)
		e.position = e.decay.Step(now, e.position, e.gesture.VelocityX)
		e.gesture.VelocityX = 0
	default:
		e.setDriver(DriverNone)
	}
}

// trackGesture keeps the drag anchor current on frames where the drag
// controller does not run, so a drag resumed after a transition does not jump.
func (e *Engine) trackGesture() {
	if e.gesture.Phase == PhaseActive {
		e.lastTranslation = e.gesture.TranslationX
	} else {
		e.lastTranslation = 0
	}
}
