package race

import (
	"strconv"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/object"
)

// checkCollisions resolves every contact between the player and the slope.
// Hazards go first, then gates, then pickups and finally the yetis.
func (s *Session) checkCollisions() {
	player := s.Player.Bounds()

	for _, obj := range s.Objects {
		o, ok := obj.(*object.Obstacle)
		if !ok || o.Consumed() || !player.Overlaps(o.Bounds()) {
			continue
		}
		s.hitObstacle(o)
	}

	for _, obj := range s.Objects {
		g, ok := obj.(*object.Gate)
		if !ok {
			continue
		}
		for _, r := range g.BlockRects() {
			if player.Overlaps(r) {
				s.end(FatalCollision, event.GateCrashed)
				return
			}
		}
	}

	for _, obj := range s.Objects {
		g, ok := obj.(*object.Gate)
		if !ok || g.Passed || g.Y <= s.Player.Y {
			continue
		}
		if !g.GapContains(s.Player.CenterX()) {
			s.end(FatalCollision, event.GateMissed)
			return
		}
		s.passGate(g)
	}

	for _, obj := range s.Objects {
		b, ok := obj.(*object.Bonus)
		if !ok || b.Consumed() || !player.Overlaps(b.Bounds()) {
			continue
		}
		s.collectBonus(b)
	}

	for _, obj := range s.Objects {
		y, ok := obj.(*object.Yeti)
		if ok && player.Overlaps(y.Bounds()) {
			s.end(FatalCollision, event.YetiCaught)
			return
		}
	}
}

func (s *Session) hitObstacle(o *object.Obstacle) {
	o.Consume()
	switch o.Kind {
	case object.ObstacleRock:
		s.Player.Slow = max(s.Player.Slow, config.RockSlowSeconds)
		s.Score = max(0, s.Score-config.RockPenalty)
		s.emit(event.RockHit, -config.RockPenalty, o.X, o.Y)
	case object.ObstacleDrop:
		s.Player.Slow = max(s.Player.Slow, config.DropSlowSeconds)
		s.emit(event.DropHit, 0, o.X, o.Y)
	}
}

func (s *Session) passGate(g *object.Gate) {
	g.Passed = true
	s.GatesPassed++
	s.Score += config.GatePoints
	s.SpeedCeiling = min(s.Settings.MaxSpeed, s.SpeedCeiling+config.GateCeilingRaise)

	cx := s.Player.CenterX()
	s.emit(event.GatePassed, config.GatePoints, cx, g.Y)
	s.Spawn(object.NewPopup(cx, s.Player.Y-10, "+"+strconv.Itoa(config.GatePoints), draw.ColorYellow))
}

// collectBonus applies a bonus to the player and couples it to every yeti.
func (s *Session) collectBonus(b *object.Bonus) {
	b.Consume()
	switch b.Kind {
	case object.BonusSpeed:
		s.Player.Boost = config.BoostSeconds
		s.forEachYeti(func(y *object.Yeti) {
			y.Slow = config.YetiSlowSeconds
			y.Knockback = config.YetiKnockbackSecs
		})
		s.emit(event.BonusSpeed, 0, b.X, b.Y)
	case object.BonusInvert:
		s.Player.Invert = config.InvertSeconds
		s.forEachYeti(func(y *object.Yeti) {
			y.Reverse = config.YetiReverseSeconds
		})
		s.emit(event.BonusInvert, 0, b.X, b.Y)
	}
}

func (s *Session) forEachYeti(fn func(*object.Yeti)) {
	for _, obj := range s.Objects {
		if y, ok := obj.(*object.Yeti); ok {
			fn(y)
		}
	}
}
