package object

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/physics"
)

// Yeti chases the player up the slope from behind.
type Yeti struct {
	X, Y float64 // Top-left corner
	W, H float64

	// Timed modifiers in seconds.
	Knockback float64 // Pushed back down the slope
	Slow      float64 // Closing speed reduced
	Reverse   float64 // Steers toward the mirrored target
}

// NewYeti creates a yeti at the given position.
func NewYeti(x, y float64) *Yeti {
	return &Yeti{X: x, Y: y, W: config.YetiWidth, H: config.YetiHeight}
}

// SpawnYetis places the level's pack below the screen: none on level 1,
// one on level 2 and two from level 3 on.
func SpawnYetis(screen Screen, level int) []*Yeti {
	n := 0
	if level >= 2 {
		n = 1
	}
	if level >= 3 {
		n = 2
	}
	yetis := make([]*Yeti, 0, n)
	for i := 0; i < n; i++ {
		x := float64(screen.Width)/2 + float64(i)*config.YetiSpacingX - config.YetiSpacingX/2*float64(n-1)
		y := float64(screen.Height) + config.YetiStartBelow + float64(i)*config.YetiSpacingY
		yetis = append(yetis, NewYeti(x, y))
	}
	return yetis
}

// ClosingSpeed returns how fast the yeti gains on the player, in units per second.
func ClosingSpeed(speed float64, slowed bool) float64 {
	bonus := max(0, speed-config.YetiBaseSpeed)
	closing := (speed+bonus)*config.YetiSpeedFactor + config.YetiSpeedOffset
	if slowed {
		closing *= config.YetiSlowFactor
	}
	return closing
}

// Update steers the yeti toward the player.
func (y *Yeti) Update(ctx UpdateContext) bool {
	dt := ctx.Seconds()
	y.Slow = physics.Decay(y.Slow, dt)
	y.Reverse = physics.Decay(y.Reverse, dt)

	sw := float64(ctx.Screen.Width)
	target := ctx.Course.PlayerX
	if y.Reverse > 0 {
		target = sw - target
	}

	// Knockback replaces closing: the yeti is pushed away at a fixed rate.
	knocked := y.Knockback > 0
	if knocked {
		y.Y += config.YetiKnockbackSpeed * dt
		y.Knockback = physics.Decay(y.Knockback, dt)
	} else {
		closing := ClosingSpeed(ctx.Course.Speed, y.Slow > 0)
		y.Y -= closing * dt * config.YetiClosingFactor
	}

	y.X += (target - (y.X + y.W/2)) * config.YetiSteering
	y.X = physics.Clamp(y.X, 0, sw-y.W)

	if y.Y < -y.H-config.YetiRespawnAbove {
		y.Y = float64(ctx.Screen.Height) + config.YetiRespawnBelow
		if ctx.Rand != nil {
			y.X = float64(ctx.Rand.Intn(int(sw-y.W) + 1))
		}
		return false
	}

	if !knocked {
		y.Y = max(y.Y, ctx.Course.PlayerY+config.YetiStandoff)
	}
	return false
}

// Bounds returns the yeti's collision box.
func (y *Yeti) Bounds() Rect {
	return Rect{X: y.X, Y: y.Y, W: y.W, H: y.H}
}

// Draw renders a shaggy white body with cyan eyes.
func (y *Yeti) Draw(ctx DrawContext) {
	body := draw.ColorWhite
	if y.Slow > 0 {
		body = draw.ColorBlue
	}
	drawBox(ctx, Rect{X: y.X, Y: y.Y + y.H*0.2, W: y.W, H: y.H * 0.8}, body)
	drawBox(ctx, Rect{X: y.X + y.W*0.2, Y: y.Y, W: y.W * 0.6, H: y.H * 0.25}, body)
	drawBox(ctx, Rect{X: y.X + y.W*0.28, Y: y.Y + y.H*0.08, W: y.W * 0.12, H: y.H * 0.08}, draw.ColorCyan)
	drawBox(ctx, Rect{X: y.X + y.W*0.6, Y: y.Y + y.H*0.08, W: y.W * 0.12, H: y.H * 0.08}, draw.ColorCyan)
}
