package curling

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
)

const tick = time.Second / 60

var (
	idle  = input.Intent{}
	space = input.Intent{Action: true}
)

func TestBandScoreIsStepFunction(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 100},
		{29.9, 100},
		{30, 80},
		{59, 80},
		{60, 60},
		{89.9, 60},
		{90, 40},
		{120, 20},
		{149.9, 20},
		{150, 0},
		{1000, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandScore(tt.distance), "distance %v", tt.distance)
	}
}

func TestStoneFrictionIsGeometric(t *testing.T) {
	st := NewStone()
	st.Launch(50, 0)
	v0 := st.Speed()
	dt := tick.Seconds()

	for n := 1; n <= 100; n++ {
		st.Update(dt)
		require.False(t, st.Stopped)
		assert.InDelta(t, v0*math.Pow(config.StoneFriction, float64(n)), st.Speed(), 1e-9)
	}
}

func TestStoneStopsBelowThreshold(t *testing.T) {
	st := NewStone()
	st.Launch(0.5, 0)
	st.Update(tick.Seconds())

	assert.True(t, st.Stopped)
	assert.Zero(t, st.Speed())
}

func TestStoneClampsAtFarBoundary(t *testing.T) {
	st := NewStone()
	st.Launch(100, 0)
	for i := 0; i < 1000 && st.Moving(); i++ {
		st.Update(tick.Seconds())
	}

	assert.True(t, st.Stopped)
	assert.Equal(t, config.CurlingFarBoundary, st.Y)
}

func TestStoneStaysOnTrack(t *testing.T) {
	st := NewStone()
	st.Launch(100, config.CurlingMaxAngle)
	for i := 0; i < 1000 && st.Moving(); i++ {
		st.Update(tick.Seconds())
	}

	assert.True(t, st.Stopped)
	assert.LessOrEqual(t, st.X, float64(config.CurlingTargetX)+config.CurlingTrackHalfWidth)
}

func TestCollisionTransfersVelocity(t *testing.T) {
	mover := &Stone{X: 480, Y: 200, VY: -100, Radius: 20, Active: true}
	other := &Stone{X: 480, Y: 170, Radius: 20, Active: true, Stopped: true}

	require.True(t, collide(mover, other))

	assert.InDelta(t, -60, other.VY, 1e-9)
	assert.InDelta(t, -60, mover.VY, 1e-9)
	assert.False(t, other.Stopped)
	assert.True(t, other.Active)
	assert.InDelta(t, 40, mover.Y-other.Y, 1e-9, "separated to touching")
	assert.InDelta(t, 185, (mover.Y+other.Y)/2, 1e-9, "split evenly")
}

func TestCollisionIgnoresSeparatedStones(t *testing.T) {
	mover := &Stone{X: 480, Y: 300, VY: -100, Radius: 20, Active: true}
	other := &Stone{X: 480, Y: 200, Radius: 20, Active: true, Stopped: true}
	assert.False(t, collide(mover, other))
	assert.Zero(t, other.VY)
}

func TestTouchingStonesDoNotCollide(t *testing.T) {
	mover := &Stone{X: 480, Y: 240, VY: -100, Radius: 20, Active: true}
	other := &Stone{X: 480, Y: 200, Radius: 20, Active: true, Stopped: true}
	assert.False(t, collide(mover, other))
	assert.True(t, other.Stopped)
}

// throw aims, charges to the given number of ticks and releases.
func throw(s *Session, chargeTicks int) {
	s.Update(tick, space)
	for i := 0; i < chargeTicks; i++ {
		s.Update(tick, idle)
	}
	s.Update(tick, space)
}

func settle(s *Session) {
	for i := 0; i < 2000; i++ {
		if _, sliding := s.Phase.(Sliding); !sliding {
			return
		}
		s.Update(tick, idle)
	}
}

func TestThrowScoresByRestingDistance(t *testing.T) {
	rec := &event.Recorder{}
	s := NewSession(rec)
	s.TimeLeft = 1000

	throw(s, 20)
	p, ok := s.Phase.(Sliding)
	require.True(t, ok)
	assert.InDelta(t, 50, p.Power, 0.5)

	settle(s)

	require.Len(t, s.Scores, 1)
	st := s.Stones[0]
	assert.Equal(t, BandScore(st.DistanceToTarget()), s.Scores[0])
	assert.Equal(t, s.Scores[0], s.Best)
	assert.Equal(t, config.CurlingThrows-1, s.ThrowsLeft)
	assert.IsType(t, Aiming{}, s.Phase)
	assert.Equal(t, 1, rec.Count(event.StoneLaunched))
	assert.Equal(t, 1, rec.Count(event.StoneStopped))
}

func TestPowerFiftyReachesHouse(t *testing.T) {
	s := NewSession(nil)
	s.Current.Launch(50, 0)
	s.Phase = Sliding{Power: 50}
	settle(s)

	require.Len(t, s.Scores, 1)
	assert.Equal(t, BandScore(s.Stones[0].DistanceToTarget()), s.Scores[0])
	assert.Positive(t, s.Scores[0])
}

func TestBestOfThrowsRetained(t *testing.T) {
	s := NewSession(nil)
	s.TimeLeft = 1000

	for _, charge := range []int{20, 5, 30} {
		throw(s, charge)
		settle(s)
	}

	require.Len(t, s.Scores, config.CurlingThrows)
	best := 0
	for _, sc := range s.Scores {
		best = max(best, sc)
	}
	assert.Equal(t, best, s.Best)
	assert.True(t, s.Done())
	assert.Equal(t, Resolved{}, s.Phase)
}

func TestAngleClampedWhileAiming(t *testing.T) {
	s := NewSession(nil)
	for i := 0; i < 120; i++ {
		s.Update(tick, input.Intent{MoveX: 1})
	}
	p, ok := s.Phase.(Aiming)
	require.True(t, ok)
	assert.Equal(t, config.CurlingMaxAngle, p.Angle)
}

func TestPowerOscillatesWhileCharging(t *testing.T) {
	s := NewSession(nil)
	s.Update(tick, space)

	peak := 0.0
	for i := 0; i < 60; i++ {
		s.Update(tick, idle)
		p := s.Phase.(Charging)
		assert.GreaterOrEqual(t, p.Power, 0.0)
		assert.LessOrEqual(t, p.Power, config.MaxPower)
		peak = max(peak, p.Power)
	}
	assert.Equal(t, config.MaxPower, peak)
	assert.False(t, s.Phase.(Charging).Rising)
}

func TestTimeoutResolvesOnNextTick(t *testing.T) {
	rec := &event.Recorder{}
	s := NewSession(rec)
	s.TimeLeft = tick.Seconds() / 2

	s.Update(tick, idle)
	assert.False(t, s.Done())
	assert.Zero(t, s.TimeLeft)

	s.Update(tick, idle)
	assert.True(t, s.Done())
	assert.Equal(t, Resolved{TimedOut: true}, s.Phase)
	assert.True(t, rec.Has(event.MiniGameTimeout))

	s.Update(tick, space)
	assert.Equal(t, 1, rec.Count(event.MiniGameTimeout))
}

func TestAimLineFollowsAngle(t *testing.T) {
	s := NewSession(nil)
	x1, y1, x2, y2, ok := s.AimLine()
	require.True(t, ok)
	assert.Equal(t, x1, x2)
	assert.Less(t, y2, y1)

	s.Phase = Sliding{}
	_, _, _, _, ok = s.AimLine()
	assert.False(t, ok)
}
