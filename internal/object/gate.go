package object

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
)

// Gate is a row of trees spanning the slope with one passable gap.
type Gate struct {
	Y      float64
	GapX   float64
	GapW   float64
	Speed  float64
	Passed bool // Set once, when the player crosses the row inside the gap

	rowWidth   float64
	treeWidth  float64
	treeHeight float64
}

// NewGate creates a gate row spanning the screen width.
func NewGate(screen Screen, y, gapX, gapW, speed float64) *Gate {
	return &Gate{
		Y:          y,
		GapX:       gapX,
		GapW:       gapW,
		Speed:      speed,
		rowWidth:   float64(screen.Width),
		treeWidth:  config.TreeWidth,
		treeHeight: config.TreeHeight,
	}
}

// Update moves the gate down and removes it once it is well below the screen.
func (g *Gate) Update(ctx UpdateContext) bool {
	g.Y += g.Speed * ctx.Seconds()
	return g.Y > float64(ctx.Screen.Height)+config.GateDespawnMargin
}

// Bounds returns the box covering the whole row.
func (g *Gate) Bounds() Rect {
	return Rect{X: 0, Y: g.Y, W: g.rowWidth, H: g.treeHeight}
}

// BlockXs returns the left edge of every tree in the row.
// Trees step by their own width from x=0 and any tree that would overlap
// [GapX, GapX+GapW) is left out.
func (g *Gate) BlockXs() []float64 {
	var xs []float64
	gapRight := g.GapX + g.GapW
	for x := 0.0; x < g.rowWidth; x += g.treeWidth {
		if x+g.treeWidth <= g.GapX || x >= gapRight {
			xs = append(xs, x)
		}
	}
	return xs
}

// BlockRects returns the collision box of every tree in the row.
func (g *Gate) BlockRects() []Rect {
	xs := g.BlockXs()
	rects := make([]Rect, len(xs))
	for i, x := range xs {
		rects[i] = Rect{X: x, Y: g.Y, W: g.treeWidth, H: g.treeHeight}
	}
	return rects
}

// GapContains reports whether x lies inside the passable gap.
func (g *Gate) GapContains(x float64) bool {
	return x >= g.GapX && x <= g.GapX+g.GapW
}

// Draw renders each tree as a pine: a green triangle over a brown trunk.
func (g *Gate) Draw(ctx DrawContext) {
	if ctx.Canvas == nil {
		return
	}
	for _, r := range g.BlockRects() {
		drawBox(ctx, Rect{X: r.X + r.W*0.42, Y: r.Y + r.H*0.8, W: r.W * 0.16, H: r.H * 0.2}, draw.ColorBrown)
		ctx.Canvas.SetPen(draw.ColorPine)
		ctx.Canvas.DrawPolygon([]draw.Point{
			{X: r.X + r.W/2, Y: r.Y},
			{X: r.X + r.W, Y: r.Y + r.H*0.8},
			{X: r.X, Y: r.Y + r.H*0.8},
		}, true)
	}
}
