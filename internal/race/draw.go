package race

import (
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/object"
)

// finishBandHeight is the drawn thickness of the finish row.
const finishBandHeight = 24.0

// Draw renders the slope, the finish row and the player.
func (s *Session) Draw(ctx object.DrawContext) {
	for _, obj := range s.Objects {
		obj.Draw(ctx)
	}
	if s.Finish != nil && ctx.Canvas != nil {
		s.Finish.Draw(ctx.Canvas, float64(s.Screen.Width))
	}
	s.Player.Draw(ctx)
}

// Draw paints a checkered band with the gap left open.
func (f *FinishLine) Draw(c *draw.Canvas, width float64) {
	const cell = 24.0
	for x, i := 0.0, 0; x < width; x, i = x+cell, i+1 {
		if x+cell > f.GapX && x < f.GapX+f.GapW {
			continue
		}
		for row := 0; row < 2; row++ {
			color := draw.ColorWhite
			if (i+row)%2 == 0 {
				color = draw.ColorRed
			}
			c.SetPen(color)
			c.FillRect(x, f.Y+float64(row)*finishBandHeight/2, cell, finishBandHeight/2)
		}
	}
	c.SetPen(draw.ColorGreen)
	c.FillRect(f.GapX, f.Y, 4, finishBandHeight)
	c.FillRect(f.GapX+f.GapW-4, f.Y, 4, finishBandHeight)
}
