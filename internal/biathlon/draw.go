package biathlon

import (
	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
)

// Draw renders the zone, the targets, arrows in flight, the shooter and the crosshair.
func (s *Session) Draw(c *draw.Canvas) {
	if c == nil {
		return
	}
	c.SetPen(draw.ColorSnow)
	c.FillRect(config.BiathlonZoneMinX-100, config.BiathlonZoneMinY-20,
		config.BiathlonZoneMaxX-config.BiathlonZoneMinX+200, config.BiathlonZoneMaxY-config.BiathlonZoneMinY+40)

	if next := s.NextTarget(); next != nil && !s.Done() {
		c.SetPen(draw.ColorYellow)
		c.DrawCircle(next.X, next.Y, next.Size+8)
	}

	for _, t := range s.Targets {
		if t.Hit {
			c.SetPen(draw.ColorGreen)
			if t.HitAge < 0.3 {
				c.SetPen(draw.ColorWhite)
			}
			c.FillCircle(t.X, t.Y, t.Size)
			continue
		}
		c.SetPen(draw.ColorRed)
		c.FillCircle(t.X, t.Y, t.Size)
		c.SetPen(draw.ColorWhite)
		c.FillCircle(t.X, t.Y, t.Size*0.7)
		c.SetPen(draw.ColorRed)
		c.FillCircle(t.X, t.Y, t.Size*0.4)
	}

	c.SetPen(draw.ColorBrown)
	for _, a := range s.Arrows {
		tailX := a.X - a.VX*0.05
		tailY := a.Y - a.VY*0.05
		c.DrawLine(draw.Point{X: tailX, Y: tailY}, draw.Point{X: a.X, Y: a.Y})
	}

	c.SetPen(draw.ColorBlue)
	c.FillCircle(config.ShooterX, config.ShooterY-20, 15)

	if !s.Done() {
		c.SetPen(draw.ColorOrange)
		c.DrawLine(draw.Point{X: s.CrossX - 16, Y: s.CrossY}, draw.Point{X: s.CrossX + 16, Y: s.CrossY})
		c.DrawLine(draw.Point{X: s.CrossX, Y: s.CrossY - 16}, draw.Point{X: s.CrossX, Y: s.CrossY + 16})
	}
}
