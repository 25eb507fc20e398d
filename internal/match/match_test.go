package match

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skirunner/internal/biathlon"
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/curling"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/race"
)

const tick = time.Second / 60

var (
	idle    = input.Intent{}
	confirm = input.Intent{Confirm: true}
)

func newTestMatch(t *testing.T, mode Mode, level int) (*Match, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	m := New(Options{
		Mode:   mode,
		Level:  level,
		Levels: config.DefaultLevels(),
		Rand:   rand.New(rand.NewSource(5)),
		Events: rec,
	})
	require.NotNil(t, m)
	return m, rec
}

// winRace ends the current race as a win and skips the display delay.
func winRace(t *testing.T, m *Match) {
	t.Helper()
	require.Equal(t, StageRace, m.Stage)
	m.Race.Outcome = race.Win
	m.Tick(tick, idle)
	require.True(t, m.Pending())
	m.Tick(tick, confirm)
}

func TestOlympicStartsWithLevelOneRace(t *testing.T) {
	m, _ := newTestMatch(t, ModeOlympic, 4)

	assert.Equal(t, StageRace, m.Stage)
	assert.Equal(t, 1, m.Level)
	require.NotNil(t, m.Race)
	assert.Nil(t, m.Curling)
	assert.Nil(t, m.Biathlon)
}

func TestTrainingRaceClampsLevel(t *testing.T) {
	m, _ := newTestMatch(t, ModeTrainingRace, 9)
	assert.Equal(t, 5, m.Level)
	assert.Equal(t, 5, m.Race.Level)

	m, _ = newTestMatch(t, ModeTrainingRace, 0)
	assert.Equal(t, 1, m.Level)
}

func TestTrainingMiniGamesStartDirectly(t *testing.T) {
	m, _ := newTestMatch(t, ModeTrainingCurling, 0)
	assert.Equal(t, StageCurling, m.Stage)
	assert.NotNil(t, m.Curling)
	assert.Nil(t, m.Race)

	m, _ = newTestMatch(t, ModeTrainingBiathlon, 0)
	assert.Equal(t, StageBiathlon, m.Stage)
	assert.NotNil(t, m.Biathlon)
}

func TestRaceLossEndsMatch(t *testing.T) {
	m, rec := newTestMatch(t, ModeOlympic, 0)
	m.Race.Outcome = race.FatalCollision
	m.Race.RaceTime = 7.5

	res := m.Tick(tick, idle)

	assert.True(t, res.Terminal)
	assert.False(t, res.Won)
	assert.Equal(t, StageFinished, res.Stage)
	assert.Equal(t, race.FatalCollision, res.Outcome)
	assert.Equal(t, 7.5, res.RaceTime)
	assert.True(t, rec.Has(event.StageChanged))

	// Further ticks change nothing.
	assert.Equal(t, res, m.Tick(tick, confirm))
}

func TestLevelWinWaitsThenAdvances(t *testing.T) {
	m, rec := newTestMatch(t, ModeOlympic, 0)
	m.Race.Outcome = race.Win
	m.Race.Score = 250
	m.Race.RaceTime = 20

	m.Tick(tick, idle)
	require.True(t, m.Pending())
	assert.Equal(t, 1, m.Level)

	for i := 0; i < 70 && m.Pending(); i++ {
		m.Tick(tick, idle)
	}

	assert.False(t, m.Pending())
	assert.Equal(t, 2, m.Level)
	assert.Equal(t, StageRace, m.Stage)
	assert.Equal(t, 250, m.Race.Score, "score carries into the next level")
	assert.Equal(t, 20.0, m.RaceTime())
	assert.Equal(t, 1, rec.Count(event.LevelCleared))
}

func TestConfirmSkipsDelay(t *testing.T) {
	m, _ := newTestMatch(t, ModeOlympic, 0)
	m.Race.Outcome = race.Win
	m.Tick(tick, idle)
	require.True(t, m.Pending())

	m.Tick(tick, confirm)
	assert.Equal(t, 2, m.Level)
}

func TestFullOlympicSequence(t *testing.T) {
	m, rec := newTestMatch(t, ModeOlympic, 0)

	for level := 1; level < config.DefaultLevels().Count(); level++ {
		winRace(t, m)
		require.Equal(t, level+1, m.Level)
	}
	m.Race.Score = 500
	winRace(t, m)

	require.Equal(t, StageCurling, m.Stage)
	require.NotNil(t, m.Curling)
	m.Curling.Best = 80
	m.Curling.Phase = curling.Resolved{}
	m.Tick(tick, idle)
	m.Tick(tick, confirm)

	require.Equal(t, StageBiathlon, m.Stage)
	require.NotNil(t, m.Biathlon)
	m.Biathlon.Hits = 3
	m.Biathlon.Phase = biathlon.Resolved{}
	m.Tick(tick, idle)
	res := m.Tick(tick, confirm)

	assert.True(t, res.Terminal)
	assert.True(t, res.Won)
	assert.Equal(t, 500+80+3*config.HitPoints, res.Score)
	assert.Equal(t, config.DefaultLevels().Count(), rec.Count(event.LevelCleared))
	assert.Equal(t, 3, rec.Count(event.StageChanged))
}

func TestTrainingRaceFinishesAfterOneLevel(t *testing.T) {
	m, _ := newTestMatch(t, ModeTrainingRace, 2)
	winRace(t, m)

	assert.Equal(t, StageFinished, m.Stage)
	assert.True(t, m.Won)
	assert.Equal(t, 2, m.Level)
}

func TestTrainingCurlingFinishesAfterGame(t *testing.T) {
	m, _ := newTestMatch(t, ModeTrainingCurling, 0)
	m.Curling.Best = 100
	m.Curling.Phase = curling.Resolved{}
	m.Tick(tick, idle)
	res := m.Tick(tick, confirm)

	assert.True(t, res.Terminal)
	assert.True(t, res.Won)
	assert.Equal(t, 100, res.Score)
	assert.Nil(t, m.Biathlon)
}

func TestRetryRestartsLevelWithZeroScore(t *testing.T) {
	m, _ := newTestMatch(t, ModeOlympic, 0)
	winRace(t, m)
	require.Equal(t, 2, m.Level)
	m.Race.Outcome = race.Timeout
	m.Tick(tick, idle)
	require.Equal(t, StageFinished, m.Stage)

	m.Retry()

	assert.Equal(t, StageRace, m.Stage)
	assert.Equal(t, 2, m.Level)
	assert.Zero(t, m.Score())
	assert.Zero(t, m.RaceTime())
	assert.Equal(t, race.Running, m.Outcome)
	assert.False(t, m.Result().Terminal)
}

func TestRetryRestartsTrainingMiniGame(t *testing.T) {
	m, _ := newTestMatch(t, ModeTrainingBiathlon, 0)
	m.Biathlon.Phase = biathlon.Resolved{TimedOut: true}
	m.Tick(tick, idle)
	m.Tick(tick, confirm)
	require.Equal(t, StageFinished, m.Stage)

	m.Retry()

	assert.Equal(t, StageBiathlon, m.Stage)
	require.NotNil(t, m.Biathlon)
	assert.False(t, m.Biathlon.Done())
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "olympic", ModeOlympic.String())
	assert.Equal(t, "curling", StageCurling.String())
	assert.True(t, ModeOlympic.Ranked())
	assert.False(t, ModeTrainingRace.Ranked())
	assert.Len(t, Modes, 4)
}
