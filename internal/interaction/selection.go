package interaction

import "time"

// Expand requests the Collapsed -> Expanding transition toward target. It
// returns false, and changes nothing, unless the strip is collapsed with no
// transition already requested.
func (e *Engine) Expand(target float64) bool {
	if e.needsAnimate || e.state != Collapsed {
		return false
	}
	e.expandingTarget = target
	e.request(Expanding)
	return true
}

// Collapse requests the Expanded -> Collapsing transition toward target.
func (e *Engine) Collapse(target float64) bool {
	if e.needsAnimate || e.state != Expanded {
		return false
	}
	e.collapsingTarget = target
	e.request(Collapsing)
	return true
}

// Snap requests a reposition to target without leaving the expanded layout.
func (e *Engine) Snap(target float64) bool {
	if e.needsAnimate || e.state != Expanded {
		return false
	}
	e.snapTarget = target
	e.request(Snapping)
	return true
}

// Busy reports whether a selection intent would be ignored right now.
func (e *Engine) Busy() bool {
	return e.needsAnimate || !e.state.Stable()
}

func (e *Engine) request(s SelectionState) {
	e.pending = s
	e.needsAnimate = true
}

// applyPending enters the requested state and clears the latch, so a target
// written twice before the next frame still starts only one transition.
func (e *Engine) applyPending() {
	if !e.needsAnimate {
		return
	}
	e.needsAnimate = false
	e.setState(e.pending)
}

// setState switches state. Any change kills residual momentum: decay and
// spring stop and the last gesture velocity is dropped.
func (e *Engine) setState(s SelectionState) {
	if s == e.state {
		return
	}
	e.state = s
	e.decay.Clock.Stop()
	e.spring.Clock.Stop()
	e.gesture.VelocityX = 0
	if e.driver == DriverDecay || e.driver == DriverSpring {
		e.driver = DriverNone
	}
}

// runSelection advances an Expanding or Collapsing transition. progress runs
// 0 -> 1 while expanding and 1 -> 0 while collapsing; the position is
// interpolated from the snapshot taken when the transition clock started.
func (e *Engine) runSelection(now time.Duration) {
	e.setDriver(DriverTransition)
	if !e.span.Clock.Running() {
		e.prevPosition = e.position
	}

	start, dest := 0.0, 1.0
	if e.state == Collapsing {
		start, dest = 1, 0
	}
	e.progress = e.span.Step(now, start, dest)

	if e.span.Finished() {
		if e.state == Expanding {
			e.setState(Expanded)
			e.position = e.expandingTarget
		} else {
			e.setState(Collapsed)
			e.position = e.collapsingTarget
		}
		e.prevPosition = e.position
		e.setDriver(DriverNone)
		return
	}

	if e.state == Expanding {
		e.position = lerp(e.prevPosition, e.expandingTarget, e.progress)
	} else {
		e.position = lerp(e.collapsingTarget, e.prevPosition, e.progress)
	}
}

// snapTo moves the row to snapTarget and returns to Expanded when done.
func (e *Engine) snapTo(now time.Duration) {
	e.setDriver(DriverSnap)
	if !e.snap.Clock.Running() {
		e.prevPosition = e.position
	}
	e.position = e.snap.Step(now, e.prevPosition, e.snapTarget)
	if e.snap.Finished() {
		e.position = e.snapTarget
		e.prevPosition = e.position
		e.setState(Expanded)
		e.setDriver(DriverNone)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
