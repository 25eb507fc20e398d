package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/skirunner/internal/biathlon"
	"github.com/tomz197/skirunner/internal/curling"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/leaderboard"
	loopcfg "github.com/tomz197/skirunner/internal/loop/config"
	"github.com/tomz197/skirunner/internal/match"
	"github.com/tomz197/skirunner/internal/object"
	"github.com/tomz197/skirunner/internal/race"
)

// titleArt is figlet "small".
var titleArt = []string{
	"  ___  _  __ ___    ___  _   _  _  _  _  _  ___  ___  ",
	" / __|| |/ /|_ _|  | _ \\| | | || \\| || \\| || __|| _ \\ ",
	" \\__ \\| ' <  | |   |   /| |_| || .` || .` || _| |   / ",
	" |___/|_|\\_\\|___|  |_|_\\ \\___/ |_|\\_||_|\\_||___||_|_\\ ",
}

var modeBlurbs = map[match.Mode]string{
	match.ModeOlympic:          "Every level, then curling and biathlon",
	match.ModeTrainingRace:     "One race at a chosen level",
	match.ModeTrainingCurling:  "Three curling throws",
	match.ModeTrainingBiathlon: "Five biathlon shots",
}

// drawFrame draws the current frame.
func (h *Host) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	screenChanged := h.state.Screen != h.state.prevScreen
	inactiveChanged := h.state.isInactive != h.state.wasInactive
	if screenChanged || inactiveChanged {
		h.chunkWriter.WriteString("\033[H\033[2J")
		h.state.prevScreen = h.state.Screen
		h.state.wasInactive = h.state.isInactive
	}

	h.canvas.Clear()
	h.drawScene()

	h.canvas.Render(h.chunkWriter)
	h.canvas.RenderBorder(h.chunkWriter, h.borderColor())

	h.drawUI()

	return h.chunkWriter.Flush()
}

// borderColor tints the frame around oversized terminals by stage.
func (h *Host) borderColor() draw.Color {
	m := h.state.Match
	if m == nil || h.state.Screen == ScreenTitle {
		return draw.ColorCyan
	}
	switch m.Stage {
	case match.StageCurling:
		return draw.ColorBlue
	case match.StageBiathlon:
		return draw.ColorGreen
	case match.StageFinished:
		return draw.ColorYellow
	}
	return draw.ColorSnow
}

// drawScene draws the active stage onto the canvas.
func (h *Host) drawScene() {
	m := h.state.Match
	if m == nil {
		return
	}
	switch h.state.Screen {
	case ScreenPlaying, ScreenPaused:
	default:
		return
	}

	switch m.Stage {
	case match.StageRace:
		m.Race.Draw(object.DrawContext{Canvas: h.canvas, Text: h.chunkWriter})
	case match.StageCurling:
		m.Curling.Draw(h.canvas)
	case match.StageBiathlon:
		m.Biathlon.Draw(h.canvas)
	}
}

// drawUI draws the text overlay.
func (h *Host) drawUI() {
	termWidth := h.canvas.TerminalWidth()
	termHeight := h.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if h.state.Screen == ScreenShutdown {
		h.drawShutdownScreen(centerX, centerY)
		return
	}

	if h.state.isInactive {
		h.drawInactivityScreen(centerX, centerY)
		return
	}

	switch h.state.Screen {
	case ScreenTitle:
		h.drawTitleScreen(centerX, centerY)
	case ScreenPlaying:
		h.drawPlayingHUD(termWidth, termHeight)
	case ScreenPaused:
		h.drawPlayingHUD(termWidth, termHeight)
		h.drawCentered(centerX, centerY-1, "PAUSED")
		h.drawCentered(centerX, centerY+1, "P to resume, ESC for menu")
	case ScreenResult:
		h.drawResultScreen(centerX, centerY)
	}
}

func (h *Host) drawCentered(centerX, row int, s string) {
	h.chunkWriter.WriteCenteredAt(centerX, row, s)
}

// drawInactivityScreen draws the inactivity warning screen.
func (h *Host) drawInactivityScreen(centerX, centerY int) {
	h.drawCentered(centerX, centerY-2, "INACTIVITY WARNING")
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(loopcfg.InactivityDisconnectUser-time.Since(h.lastInput).Seconds()),
	)
	h.drawCentered(centerX, centerY, msg)
	h.drawCentered(centerX, centerY+2, "Press any key to continue")
}

// drawTitleScreen draws the title art and the mode menu.
func (h *Host) drawTitleScreen(centerX, centerY int) {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := h.chunkWriter
	titleStartY := centerY - 9
	for i, line := range titleArt {
		cw.WriteColoredAt(centerX-titleWidth/2, titleStartY+i, draw.ColorCyan, line)
	}
	h.drawCentered(centerX, titleStartY+len(titleArt)+1, "~ Downhill, yetis, curling and biathlon over SSH ~")

	menuY := titleStartY + len(titleArt) + 3
	for i, mode := range match.Modes {
		marker := "  "
		if mode == h.state.Mode {
			marker = "> "
		}
		label := fmt.Sprintf("%s%d  %-18s", marker, i+1, mode)
		if mode == match.ModeTrainingRace {
			label += fmt.Sprintf(" < level %d >", h.state.Level)
		} else {
			label += strings.Repeat(" ", 14)
		}
		cw.WriteAt(centerX-20, menuY+i, label)
	}
	blurb := fmt.Sprintf("%-44s", modeBlurbs[h.state.Mode])
	cw.WriteAt(centerX-20, menuY+len(match.Modes)+1, blurb)

	controlsY := menuY + len(match.Modes) + 3
	controlLines := []string{
		"A D / < >  . . . . . .  Steer",
		"W S / ^ v  . . . . .  Menu, aim",
		"SPACE  . . . .  Charge, release",
		"ENTER  . . . .  Skip stage pause",
		"P / R / Q  . .  Pause, retry, quit",
	}
	for i, line := range controlLines {
		h.drawCentered(centerX, controlsY+i, line)
	}

	if time.Now().UnixMilli()/loopcfg.TitleBlinkMillis%2 == 0 {
		h.drawCentered(centerX, controlsY+len(controlLines)+1, ">>  Press SPACE to Start  <<")
	}

	if h.opts.Board != nil {
		h.drawLeaderboard(centerX, controlsY+len(controlLines)+3, 3)
	}
}

// drawPlayingHUD draws the stage HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (h *Host) drawPlayingHUD(termWidth, termHeight int) {
	m := h.state.Match
	if m == nil {
		return
	}
	cw := h.chunkWriter
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", m.Score()))

	var status string
	switch m.Stage {
	case match.StageRace:
		status = raceStatus(m.Race, m.Level, m.Levels.Count())
	case match.StageCurling:
		status = curlingStatus(m.Curling)
	case match.StageBiathlon:
		status = biathlonStatus(m.Biathlon)
	}
	cw.WriteAt(termWidth-len(status)-1, 1, status)

	if m.Stage == match.StageRace {
		cw.WriteAt(2, 2, effectStatus(m.Race.Player))
	}

	if m.Pending() {
		banner := "STAGE COMPLETE"
		if m.Stage == match.StageRace {
			banner = fmt.Sprintf("LEVEL %d CLEARED", m.Level)
		}
		h.drawCentered(termWidth/2, termHeight/2-1, banner)
		h.drawCentered(termWidth/2, termHeight/2+1, "Press ENTER to continue")
	}

	cw.WriteAt(2, termHeight, fmt.Sprintf("%-14s", m.Mode))
	hint := "P pause  R retry  Q quit"
	cw.WriteAt(termWidth-len(hint)-1, termHeight, hint)
}

func raceStatus(s *race.Session, level, levels int) string {
	return fmt.Sprintf("Level %d/%d  Time %5.1f  Left %4.0f m %s",
		level, levels, max(0, s.TimeLeft()), s.DistanceLeft, gauge(s.Progress()*100))
}

func effectStatus(p *object.Player) string {
	var parts []string
	if p.Boost > 0 {
		parts = append(parts, fmt.Sprintf("BOOST %.1f", p.Boost))
	}
	if p.Slow > 0 {
		parts = append(parts, fmt.Sprintf("SLOW %.1f", p.Slow))
	}
	if p.Invert > 0 {
		parts = append(parts, fmt.Sprintf("INVERTED %.1f", p.Invert))
	}
	return fmt.Sprintf("%-40s", strings.Join(parts, "  "))
}

func curlingStatus(s *curling.Session) string {
	power := 0.0
	if ch, ok := s.Phase.(curling.Charging); ok {
		power = ch.Power
	}
	return fmt.Sprintf("Curling  Throws %d  Best %3d  Power %s  Time %4.1f",
		s.ThrowsLeft, s.Best, gauge(power), max(0, s.TimeLeft))
}

func biathlonStatus(s *biathlon.Session) string {
	power := 0.0
	if ch, ok := s.Phase.(biathlon.Charging); ok {
		power = ch.Power
	}
	return fmt.Sprintf("Biathlon  Shots %d  Hits %d (%3.0f%%)  Wind %+5.2f  Power %s  Time %4.1f",
		s.ShotsLeft, s.Hits, s.Accuracy()*100, s.Wind, gauge(power), max(0, s.TimeLeft))
}

// gauge renders a 0-100 value as ten cells.
func gauge(pct float64) string {
	filled := min(10, max(0, int(pct/10)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

// drawResultScreen draws the match summary and the leaderboard.
func (h *Host) drawResultScreen(centerX, centerY int) {
	m := h.state.Match
	if m == nil {
		return
	}
	res := m.Result()
	top := centerY - 8

	title := "FINISHED"
	if !res.Won {
		title = "RUN OVER"
	}
	h.drawCentered(centerX, top, title)
	if !res.Won && res.Outcome.Terminal() {
		h.drawCentered(centerX, top+1, outcomeText(res.Outcome))
	}

	h.drawCentered(centerX, top+3, fmt.Sprintf("Score: %d", res.Score))
	if res.RaceTime > 0 {
		h.drawCentered(centerX, top+4, "Race time: "+leaderboard.FormatTime(res.RaceTime))
	}
	if h.state.Rank > 0 {
		h.drawCentered(centerX, top+5, fmt.Sprintf("New high score, rank #%d", h.state.Rank))
	}

	if h.opts.Board != nil && m.Mode.Ranked() {
		h.drawLeaderboard(centerX, top+7, loopcfg.ResultBoardRows)
	}

	if time.Now().UnixMilli()/loopcfg.TitleBlinkMillis%2 == 0 {
		h.drawCentered(centerX, top+9+loopcfg.ResultBoardRows, ">>  R to retry, ENTER for menu  <<")
	}
}

func outcomeText(o race.Outcome) string {
	switch o {
	case race.FatalCollision:
		return "You crashed"
	case race.Timeout:
		return "Out of time"
	case race.MissedFinish:
		return "You missed the finish gate"
	}
	return ""
}

// drawLeaderboard draws the top rows of the shared board.
func (h *Host) drawLeaderboard(centerX, row, rows int) {
	h.drawCentered(centerX, row, "High scores")
	entries := h.opts.Board.Entries()
	for i := 0; i < rows; i++ {
		line := fmt.Sprintf("%2d. %-12s %8s %7s", i+1, "-", "", "")
		if i < len(entries) {
			e := entries[i]
			line = fmt.Sprintf("%2d. %-12s %8d %7s", i+1, e.Name, e.Score, leaderboard.FormatTime(e.RaceTime))
		}
		h.drawCentered(centerX, row+1+i, line)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (h *Host) drawShutdownScreen(centerX, centerY int) {
	h.drawCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	h.drawCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	h.drawCentered(centerX, centerY, "Please reconnect in a moment.")
	remaining := int(h.state.shutdownTimer) + 1
	h.drawCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	h.drawCentered(centerX, centerY+4, "Press Q to disconnect now")
}
