package race

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/object"
)

const tick = time.Second / 60

func newTestSession(t *testing.T, level, score int) (*Session, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	s := NewSession(level, config.DefaultLevels(), Options{
		Rand:   rand.New(rand.NewSource(7)),
		Events: rec,
		Score:  score,
	})
	require.NotNil(t, s)
	return s, rec
}

// emptySlope strips the spawner, drone and yetis so a test controls every object.
func emptySlope(s *Session) {
	s.Objects = nil
}

func findYetis(s *Session) []*object.Yeti {
	var yetis []*object.Yeti
	for _, obj := range s.Objects {
		if y, ok := obj.(*object.Yeti); ok {
			yetis = append(yetis, y)
		}
	}
	return yetis
}

// steerToNextRow centers the player on the gap of the closest row that still
// reaches the player's height.
func steerToNextRow(s *Session) {
	limit := s.Player.Y + s.Player.H
	best := math.Inf(-1)
	target := -1.0
	for _, obj := range s.Objects {
		g, ok := obj.(*object.Gate)
		if ok && g.Y < limit && g.Y > best {
			best = g.Y
			target = g.GapX + g.GapW/2
		}
	}
	if f := s.Finish; f != nil && f.Y < limit && f.Y > best {
		target = f.GapX + f.GapW/2
	}
	if target >= 0 {
		s.Player.X = target - s.Player.W/2
	}
}

func TestNewSessionStartState(t *testing.T) {
	s, _ := newTestSession(t, 3, 120)

	settings := config.DefaultLevels().Get(3)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 120, s.Score)
	assert.Equal(t, settings.SpeedBase, s.Speed)
	assert.Equal(t, settings.MaxSpeed-config.SpeedCeilingHeadroom, s.SpeedCeiling)
	assert.Equal(t, settings.DistanceM, s.DistanceLeft)
	assert.Equal(t, settings.FinishTime+config.RaceGraceSeconds, s.Budget)
	assert.Len(t, findYetis(s), 2)
	assert.Equal(t, Running, s.Outcome)
}

func TestNewSessionClampsLevel(t *testing.T) {
	s, _ := newTestSession(t, 42, 0)
	assert.Equal(t, 5, s.Level)

	s, _ = newTestSession(t, -1, 0)
	assert.Equal(t, 1, s.Level)
	assert.Empty(t, findYetis(s))
}

func TestLevelOneRunReachesFinish(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)

	for i := 0; i < 60*40 && !s.Outcome.Terminal(); i++ {
		steerToNextRow(s)
		s.Update(tick, input.Intent{})
	}

	require.Equal(t, Win, s.Outcome, "race ended by %s", s.Cause)
	assert.Zero(t, s.DistanceLeft)
	assert.LessOrEqual(t, s.RaceTime, s.Settings.FinishTime)
	assert.Positive(t, s.GatesPassed)
	assert.Equal(t, s.GatesPassed, rec.Count(event.GatePassed))
	assert.Equal(t, 1, rec.Count(event.FinishCrossed))
	assert.GreaterOrEqual(t, s.Score, s.Settings.FinishScore+s.GatesPassed*config.GatePoints)
	assert.LessOrEqual(t, s.Speed, s.Settings.MaxSpeed)
}

func TestTimeoutCheckedBeforeAdvancing(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	s.RaceTime = s.Budget

	assert.Equal(t, Timeout, s.Update(tick, input.Intent{}))
	assert.Equal(t, s.Budget, s.RaceTime)
	assert.Equal(t, 1, rec.Count(event.RaceTimeout))
}

func TestTerminalSessionIgnoresUpdates(t *testing.T) {
	s, _ := newTestSession(t, 1, 0)
	s.Outcome = FatalCollision
	before := s.RaceTime

	assert.Equal(t, FatalCollision, s.Update(tick, input.Intent{MoveX: 1}))
	assert.Equal(t, before, s.RaceTime)
}

func TestScoreAccruesOverTime(t *testing.T) {
	s, _ := newTestSession(t, 1, 0)
	emptySlope(s)

	for i := 0; i < 60; i++ {
		s.Update(tick, input.Intent{})
	}
	assert.InDelta(t, config.PointsPerSecond, s.Score, 1)
}

func TestSpeedGrowsTowardCeiling(t *testing.T) {
	s, _ := newTestSession(t, 1, 0)
	emptySlope(s)
	start := s.Speed

	for i := 0; i < 60; i++ {
		s.Update(tick, input.Intent{})
	}
	assert.InDelta(t, start+config.SpeedGainPerSecond, s.Speed, 0.01)

	s.Speed = s.SpeedCeiling - 0.01
	s.Update(tick, input.Intent{})
	assert.Equal(t, s.SpeedCeiling, s.Speed)
}

func TestGateScoresOnce(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	cx := s.Player.CenterX()
	gate := object.NewGate(s.Screen, s.Player.Y-1, cx-80, 160, 100)
	s.AddObject(gate)
	ceiling := s.SpeedCeiling

	for i := 0; i < 30; i++ {
		s.Update(tick, input.Intent{})
	}

	require.Equal(t, Running, s.Outcome)
	assert.True(t, gate.Passed)
	assert.Equal(t, 1, s.GatesPassed)
	assert.Equal(t, 1, rec.Count(event.GatePassed))
	assert.Equal(t, ceiling+config.GateCeilingRaise, s.SpeedCeiling)
	assert.GreaterOrEqual(t, s.Score, config.GatePoints)
}

func TestGateRaiseCappedAtMaxSpeed(t *testing.T) {
	s, _ := newTestSession(t, 1, 0)
	emptySlope(s)
	s.SpeedCeiling = s.Settings.MaxSpeed - 1
	cx := s.Player.CenterX()
	s.AddObject(object.NewGate(s.Screen, s.Player.Y-1, cx-80, 160, 100))

	s.Update(tick, input.Intent{})
	assert.Equal(t, s.Settings.MaxSpeed, s.SpeedCeiling)
}

func TestTreeContactIsFatal(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	s.AddObject(object.NewGate(s.Screen, s.Player.Y-10, 40, 160, 0))

	assert.Equal(t, FatalCollision, s.Update(tick, input.Intent{}))
	assert.Equal(t, event.GateCrashed, s.Cause)
	assert.True(t, rec.Has(event.GateCrashed))
}

func TestCrossingOutsideGapIsFatal(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	// Gap [100,260]; the nearest tree to its right starts at 288.
	gate := object.NewGate(s.Screen, s.Player.Y+1, 100, 160, 0)
	s.AddObject(gate)
	s.Player.X = 240
	require.Equal(t, 262.0, s.Player.CenterX())
	for _, r := range gate.BlockRects() {
		require.False(t, s.Player.Bounds().Overlaps(r))
	}

	s.checkCollisions()

	assert.Equal(t, FatalCollision, s.Outcome)
	assert.Equal(t, event.GateMissed, s.Cause)
	assert.True(t, rec.Has(event.GateMissed))
	assert.False(t, gate.Passed)
	assert.Zero(t, s.GatesPassed)
}

func TestCenterOnGapEdgePasses(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	gate := object.NewGate(s.Screen, s.Player.Y+1, 100, 160, 0)
	s.AddObject(gate)
	s.Player.X = 260 - s.Player.W/2

	s.checkCollisions()

	assert.Equal(t, Running, s.Outcome)
	assert.True(t, gate.Passed)
	assert.Equal(t, 1, rec.Count(event.GatePassed))
}

func TestRockSlowsAndPenalizes(t *testing.T) {
	s, rec := newTestSession(t, 1, 20)
	emptySlope(s)
	rock := object.NewRock(s.Player.X, s.Player.Y, 0)
	s.AddObject(rock)

	s.Update(tick, input.Intent{})

	assert.Equal(t, Running, s.Outcome)
	assert.Equal(t, config.RockSlowSeconds, s.Player.Slow)
	assert.Equal(t, 20-config.RockPenalty, s.Score)
	assert.True(t, rock.Consumed())
	assert.NotContains(t, s.Objects, object.Object(rock))
	assert.Equal(t, 1, rec.Count(event.RockHit))
}

func TestRockPenaltyFloorsAtZero(t *testing.T) {
	s, _ := newTestSession(t, 1, 2)
	emptySlope(s)
	s.AddObject(object.NewRock(s.Player.X, s.Player.Y, 0))

	s.Update(tick, input.Intent{})
	assert.Zero(t, s.Score)
}

func TestDropKeepsLongerSlow(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	s.AddObject(object.NewDrop(s.Player.X, s.Player.Y, 0))

	s.Update(tick, input.Intent{})
	assert.Equal(t, config.DropSlowSeconds, s.Player.Slow)
	assert.True(t, rec.Has(event.DropHit))

	// A rock never shortens a longer slow.
	s.AddObject(object.NewRock(s.Player.X, s.Player.Y, 0))
	s.Update(tick, input.Intent{})
	assert.Greater(t, s.Player.Slow, config.RockSlowSeconds)
}

func TestSpeedBonusCouplesYetis(t *testing.T) {
	s, rec := newTestSession(t, 2, 0)
	yetis := findYetis(s)
	require.Len(t, yetis, 1)
	s.Objects = []object.Object{yetis[0]}
	s.AddObject(object.NewBonus(object.BonusSpeed, s.Player.X, s.Player.Y, 0))

	s.Update(tick, input.Intent{})

	assert.Equal(t, config.BoostSeconds, s.Player.Boost)
	assert.Equal(t, config.YetiSlowSeconds, yetis[0].Slow)
	assert.Equal(t, config.YetiKnockbackSecs, yetis[0].Knockback)
	assert.True(t, rec.Has(event.BonusSpeed))
	assert.Len(t, s.Objects, 1)
}

func TestInvertBonusReversesYetis(t *testing.T) {
	s, rec := newTestSession(t, 3, 0)
	yetis := findYetis(s)
	require.Len(t, yetis, 2)
	s.AddObject(object.NewBonus(object.BonusInvert, s.Player.X, s.Player.Y, 0))

	s.Update(tick, input.Intent{})

	assert.Equal(t, config.InvertSeconds, s.Player.Invert)
	for _, y := range yetis {
		assert.Equal(t, config.YetiReverseSeconds, y.Reverse)
	}
	assert.True(t, rec.Has(event.BonusInvert))
}

func TestYetiContactIsFatal(t *testing.T) {
	s, rec := newTestSession(t, 2, 0)
	emptySlope(s)
	s.AddObject(object.NewYeti(s.Player.X, s.Player.Y))

	s.checkCollisions()

	assert.Equal(t, FatalCollision, s.Outcome)
	assert.Equal(t, event.YetiCaught, s.Cause)
	assert.True(t, rec.Has(event.YetiCaught))
}

func TestYetiHoldsBehindPlayer(t *testing.T) {
	s, _ := newTestSession(t, 3, 0)
	for i := 0; i < 60*10; i++ {
		s.RaceTime = 0
		steerToNextRow(s)
		if s.Update(tick, input.Intent{}).Terminal() {
			break
		}
	}
	assert.NotEqual(t, event.YetiCaught, s.Cause)
}

func TestFinishSpawnsAboveRemainingGates(t *testing.T) {
	s, _ := newTestSession(t, 1, 0)
	emptySlope(s)
	s.AddObject(object.NewGate(s.Screen, -50, 400, 160, 0))
	s.DistanceLeft = 0

	s.Update(tick, input.Intent{})

	require.NotNil(t, s.Finish)
	assert.Less(t, s.Finish.Y, -50-config.FinishClearance+10)
	assert.InDelta(t, float64(s.Screen.Width)/2, s.Finish.GapX+s.Finish.GapW/2, 0.001)
}

func TestFinishInsideGapWins(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	s.DistanceLeft = 0
	s.Finish = &FinishLine{Y: s.Player.Y - 1, GapX: s.Player.CenterX() - 100, GapW: 200}

	assert.Equal(t, Win, s.Update(tick, input.Intent{}))
	assert.GreaterOrEqual(t, s.Score, s.Settings.FinishScore)
	assert.Equal(t, 1, rec.Count(event.FinishCrossed))
}

func TestFinishOutsideGapMisses(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	emptySlope(s)
	s.DistanceLeft = 0
	s.Finish = &FinishLine{Y: s.Player.Y - 1, GapX: 40, GapW: 100}

	assert.Equal(t, MissedFinish, s.Update(tick, input.Intent{}))
	assert.Less(t, s.Score, s.Settings.FinishScore)
	assert.True(t, rec.Has(event.FinishMissed))
}

func TestDroneDropEmitsEvent(t *testing.T) {
	s, rec := newTestSession(t, 1, 0)
	s.Spawn(object.NewDrop(100, 100, 200))
	s.FlushSpawned()

	assert.Equal(t, 1, rec.Count(event.DroneDrop))
}

func TestCourseViewTracksFinishing(t *testing.T) {
	s, _ := newTestSession(t, 1, 0)
	assert.False(t, s.Course().Finishing)
	s.DistanceLeft = 0
	assert.True(t, s.Course().Finishing)
	assert.Equal(t, 1.0, s.Progress())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "win", Win.String())
	assert.Equal(t, "missed_finish", MissedFinish.String())
	assert.False(t, Running.Terminal())
	assert.True(t, Timeout.Terminal())
}
