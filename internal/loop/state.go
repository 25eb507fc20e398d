package loop

import (
	"time"

	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/match"
)

// Screen is the host's current phase.
type Screen int

const (
	ScreenTitle    Screen = iota // Mode selection
	ScreenPlaying                // Match ticking
	ScreenPaused                 // Match frozen
	ScreenResult                 // Match over, results and leaderboard
	ScreenShutdown               // Server is shutting down
)

// State holds per-connection host state. The match itself owns all
// simulation state.
type State struct {
	Input  input.Input
	Screen Screen
	Match  *match.Match

	Mode  match.Mode // Mode highlighted on the title screen
	Level int        // Level for training races

	Rank      int  // Leaderboard rank of the last finished match, 0 if unranked
	Submitted bool // Last finished match already went to the board

	Running bool
	delta   time.Duration

	prevScreen    Screen
	isInactive    bool
	wasInactive   bool
	shutdownTimer float64
	menuCooldown  float64 // Seconds until a held menu key moves the selection again
}

// NewState creates the state of a fresh connection on the title screen.
func NewState() *State {
	return &State{
		Screen:     ScreenTitle,
		Mode:       match.ModeOlympic,
		Level:      1,
		Running:    true,
		prevScreen: -1,
	}
}

// cycleMode moves the title selection by dir, wrapping around.
func (s *State) cycleMode(dir int) {
	n := len(match.Modes)
	idx := 0
	for i, m := range match.Modes {
		if m == s.Mode {
			idx = i
		}
	}
	s.Mode = match.Modes[((idx+dir)%n+n)%n]
}
