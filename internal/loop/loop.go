// Package loop hosts a match on a terminal: it reads keys, ticks the match
// at a fixed frame rate and draws the scene and screens.
package loop

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/leaderboard"
	loopcfg "github.com/tomz197/skirunner/internal/loop/config"
	"github.com/tomz197/skirunner/internal/match"
)

// Size assumed until the terminal reports one.
const (
	fallbackTermWidth  = 80
	fallbackTermHeight = 24
)

// Options configures the host.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Levels       config.Levels
	Board        *leaderboard.Board // Shared board; nil disables ranking
	Store        leaderboard.Store  // Board is persisted here after each submission
	Logger       *log.Logger
	Events       event.Sink      // Receives match events alongside the debug log
	Shutdown     <-chan struct{} // Closed when the server is going down
	Seed         int64           // Zero seeds from the clock
}

// Host runs one player's matches on one terminal.
type Host struct {
	opts         Options
	state        *State
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	rng          *rand.Rand
}

// Run hosts matches until the player quits or the input closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	return NewHost(r, w, opts).Run()
}

// NewHost creates a host reading keys from r and drawing to w.
func NewHost(r *bufio.Reader, w io.Writer, opts Options) *Host {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	if len(opts.Levels) == 0 {
		opts.Levels = config.DefaultLevels()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := draw.TerminalSize(termSizeFunc)
	if err != nil {
		termWidth, termHeight = fallbackTermWidth, fallbackTermHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ScreenWidth, config.ScreenHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Host{
		opts:         opts,
		state:        NewState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger.With("user", opts.Username),
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Run starts the host loop. Blocks until the player quits or the connection closes.
func (h *Host) Run() error {
	draw.HideCursor(h.writer)
	defer draw.ShowCursor(h.writer)
	draw.ClearScreen(h.writer)

	lastTime := time.Now()

	for h.state.Running {
		frameStart := time.Now()
		h.state.delta = min(frameStart.Sub(lastTime), loopcfg.MaxFrameDelta)
		lastTime = frameStart

		h.processInput()
		h.checkShutdown()
		h.updateScreen()

		switch h.state.Screen {
		case ScreenTitle:
			h.updateTitleState()
		case ScreenPlaying:
			h.updatePlayingState()
		case ScreenPaused:
			h.updatePausedState()
		case ScreenResult:
			h.updateResultState()
		case ScreenShutdown:
			h.updateShutdownState()
		}

		if err := h.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < loopcfg.TargetFrameTime {
			time.Sleep(loopcfg.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(h.writer)
	return nil
}

// processInput reads the frame's keys and tracks inactivity.
func (h *Host) processInput() {
	h.state.Input = input.ReadInput(h.inputStream)

	if len(h.state.Input.Pressed) > 0 {
		h.lastInput = time.Now()
		h.state.isInactive = false
	} else if time.Since(h.lastInput).Seconds() > loopcfg.InactivityDisconnectUser {
		h.logger.Info("disconnecting inactive player")
		h.state.Running = false
	} else if time.Since(h.lastInput).Seconds() > loopcfg.InactivityWarnUser {
		h.state.isInactive = true
	}

	if h.state.Input.Quit {
		h.state.Running = false
	}
}

// checkShutdown switches to the shutdown screen once the server announces it.
func (h *Host) checkShutdown() {
	if h.opts.Shutdown == nil || h.state.Screen == ScreenShutdown {
		return
	}
	select {
	case <-h.opts.Shutdown:
		h.state.Screen = ScreenShutdown
		h.state.shutdownTimer = loopcfg.ShutdownDisplaySeconds
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (h *Host) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSize(h.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != h.canvas.TerminalWidth() || renderHeight != h.canvas.TerminalHeight() ||
		offsetCol != h.canvas.OffsetCol() || offsetRow != h.canvas.OffsetRow() {
		draw.ClearScreen(h.writer)
	}

	h.canvas.Resize(renderWidth, renderHeight)
	h.canvas.SetOffset(offsetCol, offsetRow)
	h.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, loopcfg.MaxTermWidth)
	renderHeight = min(termHeight, loopcfg.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateTitleState handles mode selection.
func (h *Host) updateTitleState() {
	in := h.state.Input
	if n := in.Number; n >= 1 && n <= len(match.Modes) {
		h.state.Mode = match.Modes[n-1]
	}

	intent := in.Intent()
	h.state.menuCooldown -= h.state.delta.Seconds()
	if h.state.menuCooldown <= 0 {
		moved := true
		switch {
		case in.Up && !in.Down:
			h.state.cycleMode(-1)
		case in.Down && !in.Up:
			h.state.cycleMode(1)
		case h.state.Mode == match.ModeTrainingRace && intent.MoveX != 0:
			h.state.Level = h.opts.Levels.Clamp(h.state.Level + intent.MoveX)
		default:
			moved = false
		}
		if moved {
			h.state.menuCooldown = loopcfg.MenuRepeatSeconds
		}
	}

	if intent.Action || intent.Confirm {
		h.startMatch()
	}
}

// startMatch begins a new match in the selected mode.
func (h *Host) startMatch() {
	input.ResetKeyInput(h.inputStream)

	sinks := event.Multi{event.LogSink{Logger: h.logger}, event.OrDiscard(h.opts.Events)}
	h.state.Match = match.New(match.Options{
		Mode:   h.state.Mode,
		Level:  h.state.Level,
		Levels: h.opts.Levels,
		Rand:   h.rng,
		Events: sinks,
	})
	h.state.Rank = 0
	h.state.Submitted = false
	h.state.Screen = ScreenPlaying
	h.logger.Info("match started", "mode", h.state.Mode, "level", h.state.Match.Level)
}

// updatePlayingState ticks the match.
func (h *Host) updatePlayingState() {
	in := h.state.Input
	if in.Pause {
		h.state.Screen = ScreenPaused
		return
	}
	if in.Retry {
		h.state.Match.Retry()
		input.ResetKeyInput(h.inputStream)
		return
	}

	res := h.state.Match.Tick(h.state.delta, in.Intent())
	if res.Terminal {
		h.finishMatch(res)
	}
}

// finishMatch records the result and moves to the result screen.
func (h *Host) finishMatch(res match.TickResult) {
	h.state.Screen = ScreenResult
	h.logger.Info("match finished",
		"mode", h.state.Match.Mode,
		"won", res.Won,
		"score", res.Score,
		"outcome", res.Outcome,
		"race_time", leaderboard.FormatTime(res.RaceTime),
	)

	if h.state.Submitted || h.opts.Board == nil || !h.state.Match.Mode.Ranked() {
		return
	}
	h.state.Submitted = true
	if !h.opts.Board.Qualifies(res.Score) {
		h.logger.Debug("score below leaderboard cut", "score", res.Score)
		return
	}
	h.state.Rank = h.opts.Board.Submit(leaderboard.Entry{
		Name:     h.opts.Username,
		Score:    res.Score,
		RaceTime: res.RaceTime,
		At:       time.Now(),
	})
	if h.state.Rank == 0 {
		return
	}
	if err := h.opts.Board.Persist(h.opts.Store); err != nil {
		h.logger.Error("could not save leaderboard", "err", err)
	}
}

// updatePausedState resumes on the pause key or abandons the match on escape.
func (h *Host) updatePausedState() {
	switch {
	case h.state.Input.Pause:
		h.state.Screen = ScreenPlaying
	case h.state.Input.Escape:
		h.logger.Info("match abandoned", "mode", h.state.Match.Mode, "score", h.state.Match.Score())
		h.state.Screen = ScreenTitle
		input.ResetKeyInput(h.inputStream)
	}
}

// updateResultState handles retry and return to title.
func (h *Host) updateResultState() {
	in := h.state.Input
	switch {
	case in.Retry:
		h.state.Match.Retry()
		h.state.Rank = 0
		h.state.Submitted = false
		h.state.Screen = ScreenPlaying
		input.ResetKeyInput(h.inputStream)
	case in.EnterPressed || in.SpacePressed:
		h.state.Screen = ScreenTitle
		input.ResetKeyInput(h.inputStream)
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (h *Host) updateShutdownState() {
	h.state.shutdownTimer -= h.state.delta.Seconds()
	if h.state.shutdownTimer <= 0 {
		h.state.Running = false
	}
}
