package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// maxSpringStep bounds a single integration step so a stalled frame does not
// teleport the spring.
const maxSpringStep = 64 * time.Millisecond

// SpringConfig describes a damped spring in physical terms.
type SpringConfig struct {
	Damping                   float64
	Mass                      float64
	Stiffness                 float64
	RestSpeedThreshold        float64
	RestDisplacementThreshold float64
}

// DefaultSpring is the boundary bounce-back spring.
var DefaultSpring = SpringConfig{
	Damping:                   28,
	Mass:                      0.3,
	Stiffness:                 188.296,
	RestSpeedThreshold:        0.001,
	RestDisplacementThreshold: 0.001,
}

// AngularFrequency is the undamped angular frequency sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio is c / (2*sqrt(k*m)).
func (c SpringConfig) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Spring drives a position toward a target.
type Spring struct {
	Clock  Clock
	Config SpringConfig

	position float64
	velocity float64
	time     time.Duration
	finished bool
}

// NewSpring returns a stopped spring.
func NewSpring(cfg SpringConfig) *Spring {
	return &Spring{Config: cfg}
}

// Step returns the spring position at frame time now. The first call after
// the clock was stopped seeds the spring at position with zero velocity;
// while running the spring integrates its own state. On settle the position
// lands exactly on target and the clock stops.
func (s *Spring) Step(now time.Duration, position, target float64) float64 {
	if !s.Clock.Running() {
		s.position = position
		s.velocity = 0
		s.time = now
		s.finished = false
		s.Clock.Start(now)
	}

	dt := min(now-s.time, maxSpringStep)
	s.time = now
	if dt > 0 {
		sp := harmonica.NewSpring(dt.Seconds(), s.Config.AngularFrequency(), s.Config.DampingRatio())
		s.position, s.velocity = sp.Update(s.position, s.velocity, target)
	}

	if math.Abs(s.velocity) < s.Config.RestSpeedThreshold &&
		math.Abs(target-s.position) < s.Config.RestDisplacementThreshold {
		s.position = target
		s.velocity = 0
		s.finished = true
		s.Clock.Stop()
	}
	return s.position
}

// Finished reports whether the last Step settled the spring.
func (s *Spring) Finished() bool { return s.finished }
