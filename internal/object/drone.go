package object

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/physics"
)

// Drone hovers above the slope, tracks the player and drops hazards.
type Drone struct {
	X, Y     float64 // Center of the drone
	Cooldown float64 // Seconds until the next drop is allowed
}

// NewDrone creates a drone hovering at the given horizontal center.
func NewDrone(x float64) *Drone {
	return &Drone{X: x, Y: config.DroneY}
}

// Update eases toward the player and may drop a hazard beneath itself.
func (d *Drone) Update(ctx UpdateContext) bool {
	d.X += (ctx.Course.PlayerX - d.X) * config.DroneSmoothing
	d.Cooldown = physics.Decay(d.Cooldown, ctx.Seconds())

	if d.Cooldown == 0 && ctx.Rand != nil && ctx.Spawner != nil && ctx.Rand.Float64() < config.DroneDropChance {
		drop := NewDrop(d.X+config.DroneDropOffsetX, d.Y+config.DroneDropOffsetY, ctx.Course.Speed+config.DropFallExtra)
		ctx.Spawner.Spawn(drop)
		d.Cooldown = config.DroneDropCooldown
	}
	return false
}

// Bounds returns the drone's box. The drone never collides with the player.
func (d *Drone) Bounds() Rect {
	return Rect{X: d.X - config.DroneWidth/2, Y: d.Y - config.DroneHeight/2, W: config.DroneWidth, H: config.DroneHeight}
}

// Draw renders a rotor bar with a hub.
func (d *Drone) Draw(ctx DrawContext) {
	if ctx.Canvas == nil {
		return
	}
	b := d.Bounds()
	drawBox(ctx, Rect{X: b.X, Y: d.Y - 2, W: b.W, H: 4}, draw.ColorGray)
	ctx.Canvas.SetPen(draw.ColorStone)
	ctx.Canvas.FillCircle(d.X, d.Y, config.DroneHeight/2)
}
