// Package curling runs the sliding mini-game: aim, charge and release a
// stone toward the house, three throws against the clock.
package curling

import (
	"math"
	"time"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/physics"
)

// Phase is the state of the current throw. Exactly one of the phase types
// below is active at a time.
type Phase interface {
	isPhase()
}

// Aiming: the thrower turns the launch angle.
type Aiming struct {
	Angle float64
}

// Charging: the power gauge swings between 0 and MaxPower until release.
type Charging struct {
	Angle  float64
	Power  float64
	Rising bool
}

// Sliding: the released stone travels until it stops.
type Sliding struct {
	Power float64
	Angle float64
}

// Resolved: the game is over, either out of throws or out of time.
type Resolved struct {
	TimedOut bool
}

func (Aiming) isPhase()   {}
func (Charging) isPhase() {}
func (Sliding) isPhase()  {}
func (Resolved) isPhase() {}

// Session holds the state of one curling game.
type Session struct {
	Phase      Phase
	Current    *Stone   // Stone being aimed or slid
	Stones     []*Stone // Stones already thrown
	ThrowsLeft int
	Scores     []int // Score of every completed throw
	Best       int
	TimeLeft   float64

	events event.Sink
}

// NewSession creates a curling game with a fresh stone at the launch point.
func NewSession(events event.Sink) *Session {
	return &Session{
		Phase:      Aiming{},
		Current:    NewStone(),
		ThrowsLeft: config.CurlingThrows,
		TimeLeft:   config.CurlingTimeLimit,
		events:     event.OrDiscard(events),
	}
}

// Done reports whether the game has ended.
func (s *Session) Done() bool {
	_, ok := s.Phase.(Resolved)
	return ok
}

// Score returns the bonus the game contributes to the match.
func (s *Session) Score() int {
	return s.Best
}

// Update advances the game by one tick.
func (s *Session) Update(dt time.Duration, intent input.Intent) {
	if s.Done() {
		return
	}
	if s.TimeLeft <= 0 {
		s.Phase = Resolved{TimedOut: true}
		s.emit(event.MiniGameTimeout, s.Best, s.Current.X, s.Current.Y)
		return
	}

	sec := dt.Seconds()
	s.TimeLeft = physics.Decay(s.TimeLeft, sec)

	switch p := s.Phase.(type) {
	case Aiming:
		p.Angle = steer(p.Angle, intent.MoveX, sec)
		if intent.Action {
			s.Phase = Charging{Angle: p.Angle, Rising: true}
			return
		}
		s.Phase = p
	case Charging:
		p.Angle = steer(p.Angle, intent.MoveX, sec)
		if intent.Action {
			s.launch(p.Power, p.Angle)
			return
		}
		p.Power, p.Rising = physics.Oscillate(p.Power, p.Rising, config.CurlingPowerRate*sec, config.MaxPower)
		s.Phase = p
	case Sliding:
		s.slide(sec)
	}
}

func steer(angle float64, dir int, sec float64) float64 {
	angle += float64(dir) * config.CurlingAngleRate * sec
	return physics.Clamp(angle, -config.CurlingMaxAngle, config.CurlingMaxAngle)
}

func (s *Session) launch(power, angle float64) {
	s.Current.Launch(power, angle)
	s.Phase = Sliding{Power: power, Angle: angle}
	s.emit(event.StoneLaunched, int(power), s.Current.X, s.Current.Y)
}

// slide moves every stone, resolves contacts of the thrown stone and scores
// the throw once it comes to rest.
func (s *Session) slide(sec float64) {
	s.Current.Update(sec)
	for _, st := range s.Stones {
		st.Update(sec)
	}

	if s.Current.Moving() {
		for _, other := range s.Stones {
			if collide(s.Current, other) {
				s.emit(event.StoneCollision, 0, other.X, other.Y)
			}
		}
	}

	if !s.Current.Stopped {
		return
	}

	score := BandScore(s.Current.DistanceToTarget())
	s.Scores = append(s.Scores, score)
	s.Best = max(s.Best, score)
	s.Stones = append(s.Stones, s.Current)
	s.ThrowsLeft--
	s.emit(event.StoneStopped, score, s.Current.X, s.Current.Y)

	if s.ThrowsLeft > 0 {
		s.Current = NewStone()
		s.Phase = Aiming{}
		return
	}
	s.Phase = Resolved{}
}

// AimLine returns the guide drawn from the stone along the launch angle.
// Its length grows with power.
func (s *Session) AimLine() (x1, y1, x2, y2 float64, ok bool) {
	var angle, power float64
	switch p := s.Phase.(type) {
	case Aiming:
		angle = p.Angle
	case Charging:
		angle, power = p.Angle, p.Power
	default:
		return 0, 0, 0, 0, false
	}
	length := 60 + power*0.5
	rad := angle * math.Pi / 180
	x1, y1 = s.Current.X, s.Current.Y
	return x1, y1, x1 + math.Sin(rad)*length, y1 - math.Cos(rad)*length, true
}

func (s *Session) emit(t event.Type, value int, x, y float64) {
	s.events.Emit(event.Event{Type: t, Value: value, X: x, Y: y})
}
