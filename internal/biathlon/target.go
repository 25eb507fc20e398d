package biathlon

import (
	"math/rand"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/physics"
)

// Bounds is the box moving targets bounce inside.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// TargetBounds returns the shooting zone shrunk by the inset.
func TargetBounds() Bounds {
	return Bounds{
		MinX: config.BiathlonZoneMinX + config.BiathlonZoneInset,
		MaxX: config.BiathlonZoneMaxX - config.BiathlonZoneInset,
		MinY: config.BiathlonZoneMinY + config.BiathlonZoneInset,
		MaxY: config.BiathlonZoneMaxY - config.BiathlonZoneInset,
	}
}

// Target is a round target drifting across the shooting zone.
type Target struct {
	X, Y   float64
	Size   float64 // Radius
	VX, VY float64
	Hit    bool
	HitAge float64 // Seconds since the hit, presentation only

	claimed bool // An arrow in flight is going to hit it
}

// Open reports whether the target can still be aimed at.
func (t *Target) Open() bool {
	return !t.Hit && !t.claimed
}

// Update drifts the target and bounces it off the bounds. Hit targets stay put.
func (t *Target) Update(dt float64, b Bounds) {
	if t.Hit {
		t.HitAge += dt
		return
	}
	t.X += t.VX * dt
	t.Y += t.VY * dt
	if t.X < b.MinX || t.X > b.MaxX {
		t.VX = -t.VX
		t.X = physics.Clamp(t.X, b.MinX, b.MaxX)
	}
	if t.Y < b.MinY || t.Y > b.MaxY {
		t.VY = -t.VY
		t.Y = physics.Clamp(t.Y, b.MinY, b.MaxY)
	}
}

// PlaceTargets scatters n targets in the shooting zone. Each new target is
// re-rolled a bounded number of times to keep clear of the others; after the
// last attempt it is placed where it landed.
func PlaceTargets(rng *rand.Rand, n int) []*Target {
	targets := make([]*Target, 0, n)
	for i := 0; i < n; i++ {
		x, y := randomSpot(rng)
		size := float64(config.TargetMinSize + rng.Intn(config.TargetMaxSize-config.TargetMinSize+1))
		for attempt := 0; attempt < config.TargetPlacementRetries && crowded(targets, x, y, size); attempt++ {
			x, y = randomSpot(rng)
		}
		targets = append(targets, &Target{
			X:    x,
			Y:    y,
			Size: size,
			VX:   randomSign(rng) * uniform(rng, config.TargetMinSpeedX, config.TargetMaxSpeedX),
			VY:   randomSign(rng) * uniform(rng, config.TargetMinSpeedY, config.TargetMaxSpeedY),
		})
	}
	return targets
}

func crowded(targets []*Target, x, y, size float64) bool {
	for _, t := range targets {
		if physics.Distance(x, y, t.X, t.Y) < size+t.Size+config.TargetSpacing {
			return true
		}
	}
	return false
}

func randomSpot(rng *rand.Rand) (float64, float64) {
	x := config.BiathlonZoneMinX + float64(rng.Intn(int(config.BiathlonZoneMaxX-config.BiathlonZoneMinX)+1))
	y := config.BiathlonZoneMinY + float64(rng.Intn(int(config.BiathlonZoneMaxY-config.BiathlonZoneMinY)+1))
	return x, y
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
