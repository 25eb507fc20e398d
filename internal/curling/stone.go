package curling

import (
	"math"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/physics"
)

// Stone is a sliding piece. It moves only while active and not stopped.
type Stone struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Active  bool // Set on launch and when struck by another stone
	Stopped bool
}

// NewStone creates a resting stone at the launch point.
func NewStone() *Stone {
	return &Stone{X: config.StoneLaunchX, Y: config.StoneLaunchY, Radius: config.StoneRadius}
}

// Launch gives the stone its initial velocity. Angle is in degrees from straight
// up the sheet; positive angles curve to the right.
func (s *Stone) Launch(power, angle float64) {
	speed := power * config.StoneLaunchScale
	rad := angle * math.Pi / 180
	s.VX = speed * math.Sin(rad)
	s.VY = -speed * math.Cos(rad)
	s.Active = true
	s.Stopped = false
}

// Speed returns the magnitude of the stone's velocity.
func (s *Stone) Speed() float64 {
	return physics.Length(s.VX, s.VY)
}

// Moving reports whether the stone still slides.
func (s *Stone) Moving() bool {
	return s.Active && !s.Stopped
}

// Update moves the stone and applies one tick of friction. Friction is per
// tick, not per second, so a stone's speed after n ticks is v0·friction^n.
func (s *Stone) Update(dt float64) {
	if !s.Moving() {
		return
	}
	s.X += s.VX * dt
	s.Y += s.VY * dt

	s.VX *= config.StoneFriction
	s.VY *= config.StoneFriction

	if s.Speed() < config.StoneStopSpeed {
		s.halt()
	}

	if s.Y < config.CurlingFarBoundary {
		s.Y = config.CurlingFarBoundary
		s.halt()
	}
	left := float64(config.CurlingTargetX) - config.CurlingTrackHalfWidth
	right := float64(config.CurlingTargetX) + config.CurlingTrackHalfWidth
	if s.X < left || s.X > right {
		s.X = physics.Clamp(s.X, left, right)
		s.halt()
	}
}

func (s *Stone) halt() {
	s.VX, s.VY = 0, 0
	s.Stopped = true
}

// DistanceToTarget returns how far the stone rests from the center of the house.
func (s *Stone) DistanceToTarget() float64 {
	return physics.Distance(s.X, s.Y, config.CurlingTargetX, config.CurlingTargetY)
}

// BandScore maps a distance from the target center onto the ring bands:
// the innermost ring scores most and anything past the outer ring scores zero.
func BandScore(distance float64) int {
	for ring := 1; ring <= config.CurlingRingCount; ring++ {
		if distance < float64(ring)*config.CurlingRingStep {
			return (config.CurlingRingCount - ring + 1) * config.CurlingRingPoints
		}
	}
	return 0
}

// collide resolves contact between a moving stone and another stone.
// The pair is pushed apart evenly along the contact normal, part of the mover's
// velocity passes to the struck stone, and the mover is damped.
func collide(mover, other *Stone) bool {
	if !physics.CirclesOverlap(mover.X, mover.Y, mover.Radius, other.X, other.Y, other.Radius) {
		return false
	}
	dx := other.X - mover.X
	dy := other.Y - mover.Y
	dist := physics.Length(dx, dy)
	if dist <= 0 {
		return false
	}
	minDist := mover.Radius + other.Radius

	nx, ny := dx/dist, dy/dist
	overlap := minDist - dist
	mover.X -= nx * overlap * 0.5
	mover.Y -= ny * overlap * 0.5
	other.X += nx * overlap * 0.5
	other.Y += ny * overlap * 0.5

	other.VX += mover.VX * config.StoneTransfer
	other.VY += mover.VY * config.StoneTransfer
	mover.VX *= config.StoneDamping
	mover.VY *= config.StoneDamping

	other.Active = true
	other.Stopped = false
	return true
}
