// Package biathlon runs the throwing mini-game: aim a crosshair, charge the
// bow and loose arrows at drifting targets while the wind pushes the shot.
package biathlon

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/physics"
)

// Phase is the state of the bow.
type Phase interface {
	isPhase()
}

// Aiming: the crosshair moves freely, the bow is slack.
type Aiming struct{}

// Charging: the power gauge swings between 0 and MaxPower until release.
type Charging struct {
	Power  float64
	Rising bool
}

// Resolved: the game is over.
type Resolved struct {
	TimedOut bool
}

func (Aiming) isPhase()   {}
func (Charging) isPhase() {}
func (Resolved) isPhase() {}

// Session holds the state of one biathlon game.
type Session struct {
	Phase      Phase
	Targets    []*Target
	Arrows     []*Arrow
	CrossX     float64
	CrossY     float64
	Wind       float64 // In [-1, 1]; negative blows left
	ShotsLeft  int
	ShotsTaken int
	Hits       int
	TimeLeft   float64

	bounds Bounds
	rng    *rand.Rand
	events event.Sink
}

// NewSession creates a biathlon game with freshly placed targets and the
// crosshair resting on the first of them.
func NewSession(rng *rand.Rand, events event.Sink) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		Phase:     Aiming{},
		Targets:   PlaceTargets(rng, config.BiathlonTargets),
		CrossX:    config.ScreenWidth / 2,
		CrossY:    config.ScreenHeight / 2,
		ShotsLeft: config.BiathlonShots,
		TimeLeft:  config.BiathlonTimeLimit,
		bounds:    TargetBounds(),
		rng:       rng,
		events:    event.OrDiscard(events),
	}
	s.Wind = s.sampleWind()
	s.centerOnNextTarget()
	return s
}

// Done reports whether the game has ended.
func (s *Session) Done() bool {
	_, ok := s.Phase.(Resolved)
	return ok
}

// Score returns the bonus the game contributes to the match.
func (s *Session) Score() int {
	return s.Hits * config.HitPoints
}

// Accuracy returns the share of shots that hit, or 0 before the first shot.
func (s *Session) Accuracy() float64 {
	if s.ShotsTaken == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.ShotsTaken)
}

// HitTolerance returns how far from a target's center a shot may land and
// still count. A harder draw gives a tighter arrow and a wider allowance.
func HitTolerance(size, power float64) float64 {
	return size + config.HitToleranceBase + config.HitTolerancePerPower*power
}

// WindOffset returns the horizontal push the wind gives a shot. Stronger
// shots drift less.
func WindOffset(wind, power float64) float64 {
	return wind * config.WindDrift * (1 - config.WindPowerDamping*power/config.MaxPower)
}

// Update advances the game by one tick.
func (s *Session) Update(dt time.Duration, intent input.Intent) {
	if s.Done() {
		return
	}
	if s.TimeLeft <= 0 {
		s.Phase = Resolved{TimedOut: true}
		s.emit(event.MiniGameTimeout, s.Score(), s.CrossX, s.CrossY)
		return
	}

	sec := dt.Seconds()
	s.TimeLeft = physics.Decay(s.TimeLeft, sec)
	s.moveCrosshair(intent, sec)

	switch p := s.Phase.(type) {
	case Aiming:
		if intent.Action && s.ShotsLeft > 0 {
			s.Phase = Charging{Rising: true}
		}
	case Charging:
		if intent.Action {
			s.shoot(p.Power)
			break
		}
		p.Power, p.Rising = physics.Oscillate(p.Power, p.Rising, config.BiathlonPowerRate*sec, config.MaxPower)
		s.Phase = p
	}

	s.updateArrows(sec)
	for _, t := range s.Targets {
		t.Update(sec, s.bounds)
	}

	if s.ShotsLeft == 0 && len(s.Arrows) == 0 {
		s.Phase = Resolved{}
	}
}

func (s *Session) moveCrosshair(intent input.Intent, sec float64) {
	step := config.CrosshairSpeed * sec
	s.CrossX = physics.Clamp(s.CrossX+float64(intent.MoveX)*step, config.CrosshairMargin, config.ScreenWidth-config.CrosshairMargin)
	s.CrossY = physics.Clamp(s.CrossY+float64(intent.MoveY)*step, config.CrosshairMargin, config.ScreenHeight-config.CrosshairMargin)
}

// shoot releases an arrow. The wind moves the aim point once, and the shot is
// judged against where the targets are at this instant.
func (s *Session) shoot(power float64) {
	aimX := s.CrossX + WindOffset(s.Wind, power)
	aimY := s.CrossY
	target := s.resolve(aimX, aimY, power)
	if target != nil {
		target.claimed = true
	}

	s.Arrows = append(s.Arrows, NewArrow(aimX, aimY, power, target))
	s.ShotsLeft--
	s.ShotsTaken++
	s.Wind = s.sampleWind()
	s.Phase = Aiming{}
	s.emit(event.ArrowShot, int(power), aimX, aimY)
}

// resolve returns the open target closest to the aim point within its
// tolerance, or nil for a miss.
func (s *Session) resolve(x, y, power float64) *Target {
	var best *Target
	bestDist := math.Inf(1)
	for _, t := range s.Targets {
		if !t.Open() || !physics.PointInCircle(x, y, t.X, t.Y, HitTolerance(t.Size, power)) {
			continue
		}
		if d := physics.DistanceSquared(x, y, t.X, t.Y); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func (s *Session) updateArrows(sec float64) {
	kept := s.Arrows[:0]
	for _, a := range s.Arrows {
		if a.Update(sec) {
			s.land(a)
		} else if !a.Active {
			s.emit(event.ShotMissed, 0, a.X, a.Y)
		}
		if a.Active {
			kept = append(kept, a)
		}
	}
	clear(s.Arrows[len(kept):])
	s.Arrows = kept
}

func (s *Session) land(a *Arrow) {
	t := a.Target
	t.Hit = true
	t.claimed = false
	s.Hits++
	s.emit(event.TargetHit, config.HitPoints, t.X, t.Y)
	s.centerOnNextTarget()
}

// centerOnNextTarget rests the crosshair on the first target still open.
func (s *Session) centerOnNextTarget() {
	if t := s.NextTarget(); t != nil {
		s.CrossX, s.CrossY = t.X, t.Y
	}
}

// NextTarget returns the first target still open, or nil.
func (s *Session) NextTarget() *Target {
	for _, t := range s.Targets {
		if t.Open() {
			return t
		}
	}
	return nil
}

func (s *Session) sampleWind() float64 {
	return s.rng.Float64()*2 - 1
}

func (s *Session) emit(t event.Type, value int, x, y float64) {
	s.events.Emit(event.Event{Type: t, Value: value, X: x, Y: y})
}
