package biathlon

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/physics"
)

// Arrow is a shot in flight. Its fate is decided at release: an arrow with a
// Target stops at the impact point, any other arrow flies off the screen.
type Arrow struct {
	X, Y   float64
	VX, VY float64
	Active bool
	Target *Target // Nil for a miss

	remaining float64 // Distance left to the impact point
}

// NewArrow creates an arrow leaving the shooter toward (toX, toY).
func NewArrow(toX, toY, power float64, target *Target) *Arrow {
	a := &Arrow{X: config.ShooterX, Y: config.ShooterY, Active: true, Target: target}
	speed := config.ArrowBaseSpeed + config.ArrowPowerScale*power
	dist := physics.Distance(a.X, a.Y, toX, toY)
	if dist == 0 {
		a.VY = -speed
		return a
	}
	a.VX = (toX - a.X) / dist * speed
	a.VY = (toY - a.Y) / dist * speed
	a.remaining = dist
	return a
}

// Update moves the arrow. It returns true on the tick a hitting arrow lands.
func (a *Arrow) Update(dt float64) (landed bool) {
	if !a.Active {
		return false
	}
	step := physics.Length(a.VX, a.VY) * dt
	if a.Target != nil && step >= a.remaining {
		a.X += a.VX / physics.Length(a.VX, a.VY) * a.remaining
		a.Y += a.VY / physics.Length(a.VX, a.VY) * a.remaining
		a.remaining = 0
		a.Active = false
		return true
	}
	a.X += a.VX * dt
	a.Y += a.VY * dt
	a.remaining -= step

	if a.X < 0 || a.X > config.ScreenWidth || a.Y < 0 || a.Y > config.ScreenHeight {
		a.Active = false
	}
	return false
}
