// Package config centralizes the tunables of the terminal host.
// Simulation tunables live in internal/config.
package config

import "time"

// Render resolution cap. Larger terminals get a centered, bordered play area.
const (
	MaxTermWidth  = 192 // Columns
	MaxTermHeight = 64  // Rows; 128 sub-pixels keep the 3:2 play field undistorted
)

// Frame clock
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxFrameDelta   = 100 * time.Millisecond // Longer stalls are simulated as one capped step
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Screens
const (
	TitleBlinkMillis  = 600
	MenuRepeatSeconds = 0.18
	BoardSize         = 5 // Entries kept on the shared leaderboard
	ResultBoardRows   = 5 // Entries shown after a match
)
