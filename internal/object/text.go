package object

import (
	"github.com/tomz197/skirunner/internal/draw"
)

// popupSeconds is how long a popup stays on screen.
const popupSeconds = 0.8

// Popup is a short-lived text label, e.g. "+10" over a passed gate.
// Coordinates are logical; the label drifts upward until it expires.
type Popup struct {
	X, Y  float64
	Value string
	Color draw.Color
	ttl   float64
}

// NewPopup creates a label centered on the given logical position.
func NewPopup(x, y float64, value string, color draw.Color) *Popup {
	return &Popup{X: x, Y: y, Value: value, Color: color, ttl: popupSeconds}
}

// Update drifts the label upward and removes it once expired.
func (p *Popup) Update(ctx UpdateContext) bool {
	dt := ctx.Seconds()
	p.ttl -= dt
	p.Y -= 40 * dt
	return p.ttl <= 0
}

// Bounds is empty: popups never collide.
func (p *Popup) Bounds() Rect {
	return Rect{}
}

// Draw queues the label at its terminal position, on top of the canvas.
func (p *Popup) Draw(ctx DrawContext) {
	if p.Value == "" || ctx.Canvas == nil || ctx.Text == nil {
		return
	}
	col, row := ctx.Canvas.LogicalToTerminal(p.X, p.Y)
	col -= len(p.Value) / 2
	if col < 1 || row < 1 || row > ctx.Canvas.TerminalHeight() || col+len(p.Value) > ctx.Canvas.TerminalWidth() {
		return
	}
	ctx.Text.WriteOverlayAt(col, row, p.Color, p.Value)
}
