package object

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
)

// BonusKind selects the timed effect a bonus applies.
type BonusKind int

const (
	BonusSpeed  BonusKind = iota // Boosts the player, slows and knocks back the yetis
	BonusInvert                  // Inverts the player's controls, confuses the yetis
)

func (k BonusKind) String() string {
	switch k {
	case BonusSpeed:
		return "speed"
	case BonusInvert:
		return "invert"
	default:
		return "unknown"
	}
}

// Bonus is a collectible that falls with the slope.
type Bonus struct {
	X, Y     float64
	Size     float64
	Speed    float64
	Kind     BonusKind
	consumed bool
}

// NewBonus creates a bonus of the given kind.
func NewBonus(kind BonusKind, x, y, speed float64) *Bonus {
	size := float64(config.SpeedBonusWidth)
	if kind == BonusInvert {
		size = config.InvertBonusWidth
	}
	return &Bonus{X: x, Y: y, Size: size, Speed: speed, Kind: kind}
}

// Update moves the bonus down. It is removed below the screen or once collected.
func (b *Bonus) Update(ctx UpdateContext) bool {
	b.Y += b.Speed * ctx.Seconds()
	return b.consumed || b.Y > float64(ctx.Screen.Height)+config.BonusDespawnMargin
}

// Bounds returns the bonus collision box.
func (b *Bonus) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// Consume marks the bonus as collected.
func (b *Bonus) Consume() { b.consumed = true }

// Consumed reports whether the bonus was collected.
func (b *Bonus) Consumed() bool { return b.consumed }

// Draw renders the bonus as a colored disc.
func (b *Bonus) Draw(ctx DrawContext) {
	if ctx.Canvas == nil {
		return
	}
	color := draw.ColorYellow
	if b.Kind == BonusInvert {
		color = draw.ColorPurple
	}
	ctx.Canvas.SetPen(color)
	ctx.Canvas.FillCircle(b.X+b.Size/2, b.Y+b.Size/2, b.Size/2)
}
