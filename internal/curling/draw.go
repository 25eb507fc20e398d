package curling

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
)

var ringColors = []draw.Color{draw.ColorYellow, draw.ColorWhite, draw.ColorBlue, draw.ColorWhite, draw.ColorRed}

// Draw renders the sheet, the house, every stone and the aim guide.
func (s *Session) Draw(c *draw.Canvas) {
	if c == nil {
		return
	}
	left := float64(config.CurlingTargetX) - config.CurlingTrackHalfWidth
	c.SetPen(draw.ColorSnow)
	c.FillRect(left, config.CurlingFarBoundary-50, 2*config.CurlingTrackHalfWidth, config.ScreenHeight-config.CurlingFarBoundary)

	// Outer rings first so the inner ones paint over them.
	for ring := config.CurlingRingCount; ring >= 1; ring-- {
		c.SetPen(ringColors[ring-1])
		c.FillCircle(config.CurlingTargetX, config.CurlingTargetY, float64(ring)*config.CurlingRingStep)
	}

	for _, st := range s.Stones {
		drawStone(c, st, draw.ColorCyan)
	}
	if !s.Done() {
		drawStone(c, s.Current, draw.ColorRed)
	}

	if x1, y1, x2, y2, ok := s.AimLine(); ok {
		c.SetPen(draw.ColorOrange)
		c.DrawLine(draw.Point{X: x1, Y: y1}, draw.Point{X: x2, Y: y2})
	}
}

func drawStone(c *draw.Canvas, st *Stone, color draw.Color) {
	c.SetPen(draw.ColorStone)
	c.FillCircle(st.X, st.Y, st.Radius)
	c.SetPen(color)
	c.FillCircle(st.X, st.Y, st.Radius*0.55)
}
