// Package interaction turns pan gestures and selection intents into a single
// horizontal offset for the strip, one frame at a time. An Engine owns every
// scalar and clock involved; the host writes input with HandleGesture and
// calls Step once per animation tick, always from the same goroutine.
package interaction

import (
	"time"

	"github.com/depeter/photostrip/internal/anim"
)

// EndThreshold is the share of the row width left to scroll at which more
// images are requested.
const EndThreshold = 0.25

// Config holds the engine's static parameters.
type Config struct {
	ContainerWidth     float64
	Deceleration       float64
	Spring             anim.SpringConfig
	TransitionDuration time.Duration

	MaxFriction    float64
	FrictionSpan   float64
	FlingThreshold float64
}

// DefaultConfig returns the stock physics for a container of the given width.
func DefaultConfig(containerWidth float64) Config {
	return Config{
		ContainerWidth:     containerWidth,
		Deceleration:       anim.DecelerationIOS,
		Spring:             anim.DefaultSpring,
		TransitionDuration: anim.DefaultDuration,
		MaxFriction:        5,
		FrictionSpan:       100,
		FlingThreshold:     5,
	}
}

// Frame is the engine output for one tick.
type Frame struct {
	Position float64
	Progress float64
	State    SelectionState
	Driver   Driver
}

// Engine is the interaction state of one mounted strip.
type Engine struct {
	cfg Config

	// OnEndReached is called once each time the visible end of the row
	// crosses into the last quarter of the row.
	OnEndReached func()

	gesture         Sample
	lastTranslation float64

	position     float64
	prevPosition float64
	progress     float64
	state        SelectionState
	driver       Driver

	collapsedWidth float64
	expandedWidth  float64

	expandingTarget  float64
	collapsingTarget float64
	snapTarget       float64
	pending          SelectionState
	needsAnimate     bool

	decay  *anim.Decay
	spring *anim.Spring
	span   *anim.Timing
	snap   *anim.Timing

	end EndDetector
}

// NewEngine returns a collapsed engine at offset 0.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig(cfg.ContainerWidth)
	if cfg.Deceleration == 0 {
		cfg.Deceleration = def.Deceleration
	}
	if cfg.Spring == (anim.SpringConfig{}) {
		cfg.Spring = def.Spring
	}
	if cfg.MaxFriction == 0 {
		cfg.MaxFriction = def.MaxFriction
	}
	if cfg.FrictionSpan == 0 {
		cfg.FrictionSpan = def.FrictionSpan
	}
	if cfg.FlingThreshold == 0 {
		cfg.FlingThreshold = def.FlingThreshold
	}
	return &Engine{
		cfg:    cfg,
		decay:  anim.NewDecay(cfg.Deceleration),
		spring: anim.NewSpring(cfg.Spring),
		span:   anim.NewTiming(cfg.TransitionDuration),
		snap:   anim.NewTiming(cfg.TransitionDuration),
	}
}

// Config returns the engine parameters.
func (e *Engine) Config() Config { return e.cfg }

// SetContainerWidth updates the visible width, e.g. after a window resize.
func (e *Engine) SetContainerWidth(w float64) {
	e.cfg.ContainerWidth = w
}

// SetRowWidths updates the collapsed and expanded row widths.
func (e *Engine) SetRowWidths(collapsed, expanded float64) {
	e.collapsedWidth = collapsed
	e.expandedWidth = expanded
}

// HandleGesture records the latest pan sample. It takes effect on the next Step.
func (e *Engine) HandleGesture(s Sample) {
	e.gesture = s
}

// Step evaluates one frame at time now, in a fixed order: pending selection
// intent, then exactly one of snap / transition / drag, then end detection.
func (e *Engine) Step(now time.Duration) Frame {
	e.applyPending()

	switch e.state {
	case Snapping:
		e.trackGesture()
		e.snapTo(now)
	case Expanding, Collapsing:
		e.trackGesture()
		e.runSelection(now)
	default:
		e.dragAndRelease(now)
		e.prevPosition = e.position
	}

	e.checkEndReached()
	return e.Frame()
}

// Frame returns the current output without advancing.
func (e *Engine) Frame() Frame {
	return Frame{
		Position: e.position,
		Progress: e.progress,
		State:    e.state,
		Driver:   e.driver,
	}
}

// State returns the selection state.
func (e *Engine) State() SelectionState { return e.state }

// Position returns the row offset.
func (e *Engine) Position() float64 { return e.position }

// setDriver hands the position to d, stopping the clock of whichever
// evaluator held it before.
func (e *Engine) setDriver(d Driver) {
	if d == e.driver {
		return
	}
	switch e.driver {
	case DriverDecay:
		e.decay.Clock.Stop()
	case DriverSpring:
		e.spring.Clock.Stop()
	case DriverTransition:
		e.span.Clock.Stop()
	case DriverSnap:
		e.snap.Clock.Stop()
	}
	e.driver = d
}

// RowWidth is the row width that applies to the current state.
func (e *Engine) RowWidth() float64 {
	if e.state == Collapsed || e.state == Collapsing {
		return e.collapsedWidth
	}
	return e.expandedWidth
}

func (e *Engine) checkEndReached() {
	if e.state == Expanding || e.state == Collapsing {
		return
	}
	if e.end.Observe(e.RowWidth(), e.cfg.ContainerWidth, e.position) && e.OnEndReached != nil {
		e.OnEndReached()
	}
}
