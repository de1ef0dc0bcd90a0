package anim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

func TestClock_Lifecycle(t *testing.T) {
	var c Clock
	assert.False(t, c.Running())
	assert.Zero(t, c.Elapsed(time.Second))

	c.Start(100 * time.Millisecond)
	c.Start(200 * time.Millisecond)
	assert.True(t, c.Running())
	assert.Equal(t, 150*time.Millisecond, c.Elapsed(250*time.Millisecond), "second Start is ignored")

	c.Stop()
	assert.False(t, c.Running())
}

func TestDecay_SlowsAndStops(t *testing.T) {
	d := NewDecay(DecelerationAndroid)
	pos := 0.0
	now := time.Duration(0)

	pos = d.Step(now, pos, -2000)
	require.True(t, d.Clock.Running())
	assert.Equal(t, 0.0, pos, "first frame has no elapsed time")

	prevSpeed := math.Inf(1)
	for i := 0; i < 600 && d.Clock.Running(); i++ {
		now += frame
		next := d.Step(now, pos, 0)
		assert.Less(t, next, pos, "keeps moving in the fling direction")
		assert.LessOrEqual(t, math.Abs(d.Velocity()), prevSpeed)
		prevSpeed = math.Abs(d.Velocity())
		pos = next
	}

	assert.False(t, d.Clock.Running())
	assert.True(t, d.Finished())
	assert.Less(t, math.Abs(d.Velocity()), float64(DecayVelocityEpsilon))
}

func TestDecay_TravelMatchesClosedForm(t *testing.T) {
	d := NewDecay(DecelerationIOS)
	d.Step(0, 0, 1000)
	got := d.Step(100*time.Millisecond, 0, 0)

	kv := math.Pow(DecelerationIOS, 100)
	want := DecelerationIOS * (1 - kv) / (1 - DecelerationIOS)
	assert.InDelta(t, want, got, 1e-9)
}

func TestDecay_ReseedsOnlyAfterStop(t *testing.T) {
	d := NewDecay(DecelerationIOS)
	d.Step(0, 0, 500)
	d.Step(frame, 0, 99999)
	assert.Less(t, d.Velocity(), 500.0, "velocity argument ignored while running")

	d.Clock.Stop()
	d.Step(2*frame, 0, 800)
	assert.Equal(t, 800.0, d.Velocity())
}

func TestSpring_SettlesExactlyOnTarget(t *testing.T) {
	s := NewSpring(DefaultSpring)
	pos := 120.0
	now := time.Duration(0)

	for i := 0; i < 600; i++ {
		pos = s.Step(now, pos, 0)
		if !s.Clock.Running() {
			break
		}
		now += frame
	}

	require.False(t, s.Clock.Running(), "spring must settle")
	assert.True(t, s.Finished())
	assert.Equal(t, 0.0, pos)
}

func TestSpring_SettledIsNoOp(t *testing.T) {
	s := NewSpring(DefaultSpring)
	pos := s.Step(time.Second, 0, 0)
	assert.Equal(t, 0.0, pos)
	assert.False(t, s.Clock.Running())

	pos = s.Step(2*time.Second, pos, 0)
	assert.Equal(t, 0.0, pos)
	assert.False(t, s.Clock.Running())
}

func TestSpring_ApproachesWithoutOvershoot(t *testing.T) {
	s := NewSpring(DefaultSpring)
	require.Greater(t, DefaultSpring.DampingRatio(), 1.0, "default spring is overdamped")

	pos := -300.0
	now := time.Duration(0)
	for i := 0; i < 600 && (i == 0 || s.Clock.Running()); i++ {
		pos = s.Step(now, pos, -100)
		assert.LessOrEqual(t, pos, -100.0+1e-9)
		now += frame
	}
	assert.Equal(t, -100.0, pos)
}

func TestSpring_LongFrameIsClamped(t *testing.T) {
	a := NewSpring(DefaultSpring)
	a.Step(0, 100, 0)
	long := a.Step(10*time.Second, 100, 0)

	b := NewSpring(DefaultSpring)
	b.Step(0, 100, 0)
	clamped := b.Step(maxSpringStep, 100, 0)

	assert.InDelta(t, clamped, long, 1e-9)
}

func TestTiming_Linear(t *testing.T) {
	tm := NewTiming(0)
	require.Equal(t, DefaultDuration, tm.Duration)

	assert.Equal(t, 0.0, tm.Step(0, 0, 1))
	assert.InDelta(t, 0.5, tm.Step(150*time.Millisecond, 0, 1), 1e-9)
	assert.False(t, tm.Finished())

	assert.Equal(t, 1.0, tm.Step(300*time.Millisecond, 0, 1))
	assert.True(t, tm.Finished())
	assert.False(t, tm.Clock.Running())
}

func TestTiming_RestartClearsFinished(t *testing.T) {
	tm := NewTiming(100 * time.Millisecond)
	tm.Step(0, 1, 0)
	tm.Step(200*time.Millisecond, 1, 0)
	require.True(t, tm.Finished())

	v := tm.Step(time.Second, 5, 10)
	assert.Equal(t, 5.0, v)
	assert.False(t, tm.Finished())
	assert.InDelta(t, 7.5, tm.Step(time.Second+50*time.Millisecond, 0, 0), 1e-9)
}
