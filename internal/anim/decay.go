package anim

import (
	"math"
	"time"
)

// Deceleration constants per scroll physics profile.
const (
	DecelerationIOS     = 0.998
	DecelerationAndroid = 0.985
)

// DecayVelocityEpsilon is the speed, in px/s, below which a decay is finished.
const DecayVelocityEpsilon = 5

// Decay advances a position by exponentially decaying velocity.
type Decay struct {
	Clock        Clock
	Deceleration float64

	velocity float64
	time     time.Duration
	finished bool
}

// NewDecay returns a stopped decay with the given per-millisecond deceleration.
func NewDecay(deceleration float64) *Decay {
	return &Decay{Deceleration: deceleration}
}

// Step returns the position for frame time now. The first call after the
// clock was stopped seeds the decay with velocity (px/s); later calls ignore
// it. position is the current externally held value, so a decay can be nudged
// between frames. The clock stops itself once the speed falls below
// DecayVelocityEpsilon.
func (d *Decay) Step(now time.Duration, position, velocity float64) float64 {
	if !d.Clock.Running() {
		d.velocity = velocity
		d.time = now
		d.finished = false
		d.Clock.Start(now)
	}

	dt := millis(now - d.time)
	kv := math.Pow(d.Deceleration, dt)
	kx := d.Deceleration * (1 - kv) / (1 - d.Deceleration)
	v0 := d.velocity / 1000

	d.velocity = v0 * kv * 1000
	d.time = now
	x := position + v0*kx

	if math.Abs(d.velocity) < DecayVelocityEpsilon {
		d.finished = true
		d.Clock.Stop()
	}
	return x
}

// Velocity is the current decayed velocity in px/s.
func (d *Decay) Velocity() float64 { return d.velocity }

// Finished reports whether the last Step ended the decay.
func (d *Decay) Finished() bool { return d.finished }
