package object

import (
	"math"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/physics"
)

// Player is the skier. It only moves horizontally; the slope scrolls past it.
type Player struct {
	X, Y      float64 // Top-left corner
	W, H      float64
	BaseSpeed float64 // Lateral units per tick
	Speed     float64 // Effective lateral speed of the last tick

	// Timed effects in seconds; all decay linearly to zero.
	Boost  float64
	Slow   float64
	Invert float64

	Frame      int // Animation index, presentation only
	frameTimer float64
	clock      float64 // Seconds since spawn, drives the inversion sway
}

// NewPlayer creates a player centered horizontally on the screen.
func NewPlayer(screen Screen) *Player {
	p := &Player{
		W:         config.PlayerWidth,
		H:         config.PlayerHeight,
		Y:         float64(screen.Height / 2),
		BaseSpeed: config.PlayerBaseSpeed,
	}
	p.X = float64(screen.Width)/2 - p.W/2
	p.Speed = p.BaseSpeed
	return p
}

// SpeedMultiplier returns the combined effect multiplier.
// Boost and slow compose multiplicatively.
func (p *Player) SpeedMultiplier() float64 {
	mult := 1.0
	if p.Boost > 0 {
		mult = config.BoostMultiplier
	}
	if p.Slow > 0 {
		mult *= config.SlowMultiplier
	}
	return mult
}

// Update moves the player according to the intent and decays its effects.
func (p *Player) Update(ctx UpdateContext) bool {
	dt := ctx.Seconds()
	p.Boost = physics.Decay(p.Boost, dt)
	p.Slow = physics.Decay(p.Slow, dt)
	p.clock += dt

	p.Speed = p.BaseSpeed * p.SpeedMultiplier()

	move := float64(ctx.Intent.MoveX)
	if p.Invert > 0 {
		move = -move
		p.X += math.Sin(p.clock*config.SwayFrequency) * config.SwayAmplitude
		p.Invert = physics.Decay(p.Invert, dt)
	}

	p.X += move * p.Speed
	p.X = physics.Clamp(p.X, config.PlayerEdgeMargin, float64(ctx.Screen.Width)-p.W-config.PlayerEdgeMargin)

	p.frameTimer += dt
	if p.frameTimer >= 0.1 {
		p.frameTimer = 0
		p.Frame = (p.Frame + 1) % 4
	}
	return false
}

// Bounds returns the player's collision box.
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// CenterX returns the horizontal center of the player.
func (p *Player) CenterX() float64 {
	return p.X + p.W/2
}

// Draw renders the skier: body, head and a pair of skis.
func (p *Player) Draw(ctx DrawContext) {
	body := draw.ColorRed
	switch {
	case p.Invert > 0:
		body = draw.ColorPurple
	case p.Boost > 0:
		body = draw.ColorYellow
	case p.Slow > 0:
		body = draw.ColorBlue
	}

	drawBox(ctx, Rect{X: p.X + p.W*0.3, Y: p.Y + p.H*0.25, W: p.W * 0.4, H: p.H * 0.5}, body)
	drawBox(ctx, Rect{X: p.X + p.W*0.35, Y: p.Y, W: p.W * 0.3, H: p.H * 0.22}, draw.ColorOrange)

	// Skis wobble with the animation frame.
	lean := float64(p.Frame%2)*2 - 1
	drawBox(ctx, Rect{X: p.X + lean, Y: p.Y + p.H*0.85, W: p.W * 0.2, H: p.H * 0.15}, draw.ColorGray)
	drawBox(ctx, Rect{X: p.X + p.W*0.8 - lean, Y: p.Y + p.H*0.85, W: p.W * 0.2, H: p.H * 0.15}, draw.ColorGray)
}
