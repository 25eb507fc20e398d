// Package match sequences a full attempt: the ski levels, then curling, then
// biathlon, and reports one TickResult per frame.
package match

import (
	"math/rand"
	"time"

	"github.com/tomz197/skirunner/internal/biathlon"
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/curling"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/race"
)

// TickResult is what the host needs from the match after every tick.
type TickResult struct {
	Stage    Stage
	Level    int
	Score    int
	Terminal bool
	Won      bool
	Outcome  race.Outcome // Race outcome; Running while no race has ended badly
	RaceTime float64      // Race seconds over all levels run so far
}

// Options configures a new match.
type Options struct {
	Mode   Mode
	Level  int // Starting level for ModeTrainingRace; Olympic always starts at 1
	Levels config.Levels
	Rand   *rand.Rand
	Events event.Sink
}

// Match owns every sub-session of one attempt. Sub-sessions are replaced,
// never reused, when the match moves on.
type Match struct {
	Mode   Mode
	Stage  Stage
	Level  int
	Levels config.Levels

	Race     *race.Session
	Curling  *curling.Session
	Biathlon *biathlon.Session

	Won     bool
	Outcome race.Outcome

	pending    bool    // Current sub-session is over; waiting to move on
	delay      float64 // Seconds left before moving on
	lastStage  Stage   // Stage that was running when the match finished
	raceBanked float64 // Race time of cleared levels

	rng    *rand.Rand
	events event.Sink
}

// New creates a match and starts its first stage.
func New(opts Options) *Match {
	levels := opts.Levels
	if len(levels) == 0 {
		levels = config.DefaultLevels()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &Match{
		Mode:   opts.Mode,
		Level:  1,
		Levels: levels,
		rng:    rng,
		events: event.OrDiscard(opts.Events),
	}
	if opts.Mode == ModeTrainingRace {
		m.Level = levels.Clamp(opts.Level)
	}
	m.start(opts.Mode.firstStage(), 0)
	return m
}

// start replaces the sub-session of the given stage with a fresh one.
func (m *Match) start(stage Stage, carried int) {
	m.Stage = stage
	m.pending = false
	switch stage {
	case StageRace:
		m.Race = race.NewSession(m.Level, m.Levels, race.Options{Rand: m.rng, Events: m.events, Score: carried})
	case StageCurling:
		m.Curling = curling.NewSession(m.events)
	case StageBiathlon:
		m.Biathlon = biathlon.NewSession(m.rng, m.events)
	}
}

// Tick advances the match by one frame.
func (m *Match) Tick(dt time.Duration, intent input.Intent) TickResult {
	if m.Stage == StageFinished {
		return m.Result()
	}

	if m.pending {
		m.delay -= dt.Seconds()
		if m.delay <= 0 || intent.Confirm {
			m.advance()
		}
		return m.Result()
	}

	switch m.Stage {
	case StageRace:
		outcome := m.Race.Update(dt, intent)
		switch {
		case outcome == race.Win:
			m.wait()
		case outcome.Terminal():
			m.Outcome = outcome
			m.finish(false)
		}
	case StageCurling:
		m.Curling.Update(dt, intent)
		if m.Curling.Done() {
			m.wait()
		}
	case StageBiathlon:
		m.Biathlon.Update(dt, intent)
		if m.Biathlon.Done() {
			m.wait()
		}
	}
	return m.Result()
}

func (m *Match) wait() {
	m.pending = true
	m.delay = config.StageDelaySeconds
}

// Pending reports whether the current stage is over and the match is about to move on.
func (m *Match) Pending() bool {
	return m.pending
}

// advance leaves a completed sub-session for whatever comes next.
func (m *Match) advance() {
	switch m.Stage {
	case StageRace:
		m.raceBanked += m.Race.RaceTime
		m.emit(event.LevelCleared, m.Level)
		switch {
		case m.Mode == ModeTrainingRace:
			m.finish(true)
		case m.Level < m.Levels.Count():
			m.Level++
			m.start(StageRace, m.Race.Score)
		default:
			m.changeStage(StageCurling)
		}
	case StageCurling:
		if m.Mode == ModeTrainingCurling {
			m.finish(true)
			return
		}
		m.changeStage(StageBiathlon)
	case StageBiathlon:
		m.finish(true)
	}
}

func (m *Match) changeStage(stage Stage) {
	m.start(stage, 0)
	m.emit(event.StageChanged, int(stage))
}

func (m *Match) finish(won bool) {
	m.lastStage = m.Stage
	m.Won = won
	m.pending = false
	m.Stage = StageFinished
	m.emit(event.StageChanged, int(StageFinished))
}

// Retry throws the attempt away and starts over at the current level, or at
// the current mini-game in its training mode.
func (m *Match) Retry() {
	stage := m.Stage
	if stage == StageFinished {
		stage = m.lastStage
	}
	if m.Mode == ModeOlympic || m.Mode == ModeTrainingRace {
		stage = StageRace
	}

	m.Won = false
	m.Outcome = race.Running
	m.raceBanked = 0
	m.Curling, m.Biathlon = nil, nil
	if stage == StageRace {
		m.Race = nil
	}
	m.start(stage, 0)
}

// Score returns the match score: the race score (which carries earlier
// levels) plus both mini-game bonuses.
func (m *Match) Score() int {
	score := 0
	if m.Race != nil {
		score += m.Race.Score
	}
	if m.Curling != nil {
		score += m.Curling.Score()
	}
	if m.Biathlon != nil {
		score += m.Biathlon.Score()
	}
	return score
}

// RaceTime returns the race seconds over all levels run so far.
func (m *Match) RaceTime() float64 {
	t := m.raceBanked
	if m.Race != nil && (m.Stage == StageRace || (m.Stage == StageFinished && m.lastStage == StageRace && !m.Won)) {
		t += m.Race.RaceTime
	}
	return t
}

// Result summarizes the current state.
func (m *Match) Result() TickResult {
	return TickResult{
		Stage:    m.Stage,
		Level:    m.Level,
		Score:    m.Score(),
		Terminal: m.Stage == StageFinished,
		Won:      m.Won,
		Outcome:  m.Outcome,
		RaceTime: m.RaceTime(),
	}
}

func (m *Match) emit(t event.Type, value int) {
	m.events.Emit(event.Event{Type: t, Value: value})
}
