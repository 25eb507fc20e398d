package loop

import (
	"bufio"
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skirunner/internal/biathlon"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/leaderboard"
	loopcfg "github.com/tomz197/skirunner/internal/loop/config"
	"github.com/tomz197/skirunner/internal/match"
)

func newTestHost(t *testing.T, out *bytes.Buffer, opts Options) *Host {
	t.Helper()
	opts.TermSizeFunc = func() (int, int, error) { return 120, 40, nil }
	opts.Seed = 11
	if opts.Username == "" {
		opts.Username = "tester"
	}
	return NewHost(bufio.NewReader(strings.NewReader("")), out, opts)
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{"small", 80, 24, 80, 24, 0, 0},
		{"exact", loopcfg.MaxTermWidth, loopcfg.MaxTermHeight, loopcfg.MaxTermWidth, loopcfg.MaxTermHeight, 0, 0},
		{"wide", loopcfg.MaxTermWidth + 20, 30, loopcfg.MaxTermWidth, 30, 10, 0},
		{"tall", 100, loopcfg.MaxTermHeight + 9, 100, loopcfg.MaxTermHeight, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, oc, or := clampTermSize(tt.w, tt.h)
			assert.Equal(t, tt.rw, rw)
			assert.Equal(t, tt.rh, rh)
			assert.Equal(t, tt.offCol, oc)
			assert.Equal(t, tt.offRow, or)
		})
	}
}

func TestCycleModeWraps(t *testing.T) {
	s := NewState()
	s.cycleMode(-1)
	assert.Equal(t, match.Modes[len(match.Modes)-1], s.Mode)
	s.cycleMode(1)
	assert.Equal(t, match.ModeOlympic, s.Mode)
	s.cycleMode(1)
	assert.Equal(t, match.ModeTrainingRace, s.Mode)
}

func TestTitleNumberKeySelectsAndStarts(t *testing.T) {
	var out bytes.Buffer
	h := newTestHost(t, &out, Options{})

	h.state.Input = input.Input{Number: 3}
	h.updateTitleState()
	assert.Equal(t, match.ModeTrainingCurling, h.state.Mode)
	assert.Equal(t, ScreenTitle, h.state.Screen)

	h.state.Input = input.Input{Number: -1, SpacePressed: true}
	h.updateTitleState()
	require.NotNil(t, h.state.Match)
	assert.Equal(t, ScreenPlaying, h.state.Screen)
	assert.Equal(t, match.StageCurling, h.state.Match.Stage)
}

func TestTitleLevelOnlyMovesForTrainingRace(t *testing.T) {
	var out bytes.Buffer
	h := newTestHost(t, &out, Options{})

	h.state.Input = input.Input{Number: -1, Right: true}
	h.updateTitleState()
	assert.Equal(t, 1, h.state.Level)

	h.state.Mode = match.ModeTrainingRace
	h.state.menuCooldown = 0
	h.updateTitleState()
	assert.Equal(t, 2, h.state.Level)

	// Held key waits for the repeat cooldown.
	h.updateTitleState()
	assert.Equal(t, 2, h.state.Level)

	for range 10 {
		h.state.menuCooldown = 0
		h.updateTitleState()
	}
	assert.Equal(t, h.opts.Levels.Count(), h.state.Level)
}

func TestPauseAndResume(t *testing.T) {
	var out bytes.Buffer
	h := newTestHost(t, &out, Options{})
	h.state.Input = input.Input{Number: -1, EnterPressed: true}
	h.updateTitleState()

	h.state.Input = input.Input{Number: -1, Pause: true}
	h.updatePlayingState()
	assert.Equal(t, ScreenPaused, h.state.Screen)

	h.updatePausedState()
	assert.Equal(t, ScreenPlaying, h.state.Screen)

	h.state.Input = input.Input{Number: -1, Pause: true}
	h.updatePlayingState()
	h.state.Input = input.Input{Number: -1, Escape: true}
	h.updatePausedState()
	assert.Equal(t, ScreenTitle, h.state.Screen)
}

func TestFinishMatchSubmitsRankedResultOnce(t *testing.T) {
	var out bytes.Buffer
	store := leaderboard.FileStore{Path: filepath.Join(t.TempDir(), "board.msgpack")}
	board := leaderboard.New(loopcfg.BoardSize)
	h := newTestHost(t, &out, Options{Board: board, Store: store, Username: "  ana  "})

	h.state.Input = input.Input{Number: -1, SpacePressed: true}
	h.updateTitleState()
	require.Equal(t, match.ModeOlympic, h.state.Match.Mode)

	res := match.TickResult{Stage: match.StageFinished, Terminal: true, Score: 120, RaceTime: 12.5}
	h.finishMatch(res)
	assert.Equal(t, ScreenResult, h.state.Screen)
	assert.Equal(t, 1, h.state.Rank)

	h.finishMatch(res)
	require.Len(t, board.Entries(), 1)
	assert.Equal(t, "ana", board.Entries()[0].Name)

	saved, err := store.Load()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 120, saved[0].Score)
}

func TestTrainingResultsAreNotRanked(t *testing.T) {
	var out bytes.Buffer
	board := leaderboard.New(loopcfg.BoardSize)
	h := newTestHost(t, &out, Options{Board: board})

	h.state.Mode = match.ModeTrainingBiathlon
	h.startMatch()
	h.finishMatch(match.TickResult{Terminal: true, Won: true, Score: 80})

	assert.Empty(t, board.Entries())
	assert.Zero(t, h.state.Rank)
}

func TestScoreBelowBoardCutIsNotSaved(t *testing.T) {
	var out bytes.Buffer
	store := leaderboard.FileStore{Path: filepath.Join(t.TempDir(), "board.msgpack")}
	board := leaderboard.New(2)
	board.Submit(leaderboard.Entry{Name: "a", Score: 300})
	board.Submit(leaderboard.Entry{Name: "b", Score: 200})
	h := newTestHost(t, &out, Options{Board: board, Store: store})

	h.state.Mode = match.ModeOlympic
	h.startMatch()
	h.finishMatch(match.TickResult{Terminal: true, Won: true, Score: 200})

	assert.True(t, h.state.Submitted)
	assert.Zero(t, h.state.Rank)
	assert.Len(t, board.Entries(), 2)
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestStatusLinesShowProgressAndAccuracy(t *testing.T) {
	var out bytes.Buffer
	h := newTestHost(t, &out, Options{})
	h.state.Mode = match.ModeOlympic
	h.startMatch()

	r := h.state.Match.Race
	r.DistanceLeft = r.Settings.DistanceM / 2
	assert.Contains(t, raceStatus(r, 1, 3), "[#####.....]")

	b := biathlon.NewSession(rand.New(rand.NewSource(3)), nil)
	b.ShotsTaken, b.Hits = 4, 3
	assert.Contains(t, biathlonStatus(b), "Hits 3 ( 75%)")
}

func TestResultRetryAndMenu(t *testing.T) {
	var out bytes.Buffer
	h := newTestHost(t, &out, Options{})
	h.state.Mode = match.ModeTrainingRace
	h.startMatch()
	h.finishMatch(match.TickResult{Terminal: true})

	h.state.Input = input.Input{Number: -1, Retry: true}
	h.updateResultState()
	assert.Equal(t, ScreenPlaying, h.state.Screen)
	assert.Equal(t, match.StageRace, h.state.Match.Stage)

	h.finishMatch(match.TickResult{Terminal: true})
	h.state.Input = input.Input{Number: -1, EnterPressed: true}
	h.updateResultState()
	assert.Equal(t, ScreenTitle, h.state.Screen)
}

func TestShutdownSwitchesScreenAndStops(t *testing.T) {
	var out bytes.Buffer
	shutdown := make(chan struct{})
	h := newTestHost(t, &out, Options{Shutdown: shutdown})

	h.checkShutdown()
	assert.Equal(t, ScreenTitle, h.state.Screen)

	close(shutdown)
	h.checkShutdown()
	assert.Equal(t, ScreenShutdown, h.state.Screen)
	assert.Equal(t, float64(loopcfg.ShutdownDisplaySeconds), h.state.shutdownTimer)

	h.state.shutdownTimer = 0
	h.updateShutdownState()
	assert.False(t, h.state.Running)
}

func TestDrawFrameRendersScreens(t *testing.T) {
	var out bytes.Buffer
	board := leaderboard.New(loopcfg.BoardSize)
	board.Submit(leaderboard.Entry{Name: "bo", Score: 300, RaceTime: 61})
	h := newTestHost(t, &out, Options{Board: board})

	require.NoError(t, h.drawFrame())
	assert.Contains(t, out.String(), "training curling")
	assert.Contains(t, out.String(), "High scores")
	assert.Contains(t, out.String(), "1:01.0")

	out.Reset()
	h.state.Mode = match.ModeTrainingRace
	h.startMatch()
	require.NoError(t, h.drawFrame())
	assert.Contains(t, out.String(), "Level 1/")
	assert.Contains(t, out.String(), "P pause")
}

func TestGauge(t *testing.T) {
	assert.Equal(t, "[..........]", gauge(0))
	assert.Equal(t, "[#####.....]", gauge(55))
	assert.Equal(t, "[##########]", gauge(140))
}
