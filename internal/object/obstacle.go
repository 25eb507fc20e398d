package object

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
)

// ObstacleKind distinguishes terrain hazards from drone drops.
type ObstacleKind int

const (
	ObstacleRock ObstacleKind = iota // Terrain hazard
	ObstacleDrop                     // Dropped by the drone
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleRock:
		return "rock"
	case ObstacleDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Obstacle falls down the slope at a fixed speed.
type Obstacle struct {
	X, Y     float64
	W, H     float64
	Speed    float64
	Kind     ObstacleKind
	consumed bool
}

// NewRock creates a terrain hazard at the given position.
func NewRock(x, y, speed float64) *Obstacle {
	return &Obstacle{X: x, Y: y, W: config.RockWidth, H: config.RockHeight, Speed: speed, Kind: ObstacleRock}
}

// NewDrop creates a drone-dropped hazard at the given position.
func NewDrop(x, y, speed float64) *Obstacle {
	return &Obstacle{X: x, Y: y, W: config.DropWidth, H: config.DropHeight, Speed: speed, Kind: ObstacleDrop}
}

// Update moves the obstacle down. It is removed below the screen or once consumed.
func (o *Obstacle) Update(ctx UpdateContext) bool {
	o.Y += o.Speed * ctx.Seconds()
	return o.consumed || o.Y > float64(ctx.Screen.Height)+config.RockDespawnMargin
}

// Bounds returns the obstacle's collision box.
func (o *Obstacle) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Consume marks the obstacle as hit.
func (o *Obstacle) Consume() { o.consumed = true }

// Consumed reports whether the obstacle was hit.
func (o *Obstacle) Consumed() bool { return o.consumed }

// Draw renders rocks as grey boulders and drops as orange crates.
func (o *Obstacle) Draw(ctx DrawContext) {
	if ctx.Canvas == nil {
		return
	}
	if o.Kind == ObstacleDrop {
		drawBox(ctx, o.Bounds(), draw.ColorOrange)
		return
	}
	ctx.Canvas.SetPen(draw.ColorStone)
	ctx.Canvas.DrawPolygon([]draw.Point{
		{X: o.X, Y: o.Y + o.H},
		{X: o.X + o.W*0.2, Y: o.Y + o.H*0.2},
		{X: o.X + o.W*0.6, Y: o.Y},
		{X: o.X + o.W, Y: o.Y + o.H*0.4},
		{X: o.X + o.W, Y: o.Y + o.H},
	}, true)
}
