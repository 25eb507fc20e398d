package object

import (
	"math/rand"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/physics"
)

// CourseSpawner populates the slope with rocks, gates and bonuses.
// It runs three independent countdowns, each reset from the level table after it fires.
type CourseSpawner struct {
	ObstacleTimer float64
	GateTimer     float64
	BonusTimer    float64
}

// NewCourseSpawner creates a spawner with its first timers drawn for the level.
func NewCourseSpawner(rng *rand.Rand, settings config.LevelSettings) *CourseSpawner {
	return &CourseSpawner{
		ObstacleTimer: ObstacleInterval(settings.MinGap, settings.SpeedBase),
		GateTimer:     uniform(rng, settings.GateRange),
		BonusTimer:    uniform(rng, settings.BonusRange),
	}
}

// ObstacleInterval returns the delay before the next rock. Faster slopes spawn
// more often, but never more often than the floor allows.
func ObstacleInterval(minGap, speed float64) float64 {
	return max(config.ObstacleIntervalFloor, minGap-speed/config.ObstacleIntervalSpeedDivisor)
}

// GateGap picks the gap of a new gate row. The width shrinks with level and with
// speed above the level's base; the gap stays a fixed margin away from both edges.
func GateGap(rng *rand.Rand, screenWidth int, level int, speed, speedBase float64) (gapX, gapW float64) {
	shrink := int(max(0, speed-speedBase) / config.GateGapSpeedDivisor)
	gapMin := max(config.GateGapFloor, config.GateGapBase-config.GateGapPerLevel*level-shrink)
	gapMax := min(config.GateGapCeiling, gapMin+config.GateGapSpread)
	if gapMin > gapMax {
		gapMin = gapMax
	}
	w := gapMin + rng.Intn(gapMax-gapMin+1)

	lo := int(config.GateLateralMargin)
	hi := screenWidth - w - int(config.GateLateralMargin)
	x := lo
	if hi > lo {
		x = lo + rng.Intn(hi-lo+1)
	}
	return float64(x), float64(w)
}

// InvertChance returns the probability that a new bonus is the control-inverting kind.
// Later levels and higher scores make the nasty kind more likely.
func InvertChance(level, score int) float64 {
	p := config.InvertBonusBaseChance +
		config.InvertBonusPerLevel*float64(level-1) +
		float64(score)/config.InvertBonusScoreDivisor
	return physics.Clamp(p, config.InvertBonusBaseChance, config.InvertBonusMaxChance)
}

// Update counts the timers down and spawns whatever is due.
func (s *CourseSpawner) Update(ctx UpdateContext) bool {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return false
	}
	dt := ctx.Seconds()
	course := ctx.Course
	var placed []Rect

	s.ObstacleTimer -= dt
	if s.ObstacleTimer <= 0 {
		x := placeX(ctx, config.RockWidth, config.RockSpawnY, config.RockHeight, placed)
		rock := NewRock(x, config.RockSpawnY, course.Speed+config.RockFallExtra)
		placed = append(placed, rock.Bounds())
		ctx.Spawner.Spawn(rock)
		s.ObstacleTimer = ObstacleInterval(course.Settings.MinGap, course.Speed)
	}

	s.GateTimer -= dt
	if s.GateTimer <= 0 {
		if !course.Finishing {
			first := s.spawnGate(ctx, config.GateSpawnY, nil)
			if ctx.Rand.Float64() < course.Settings.ExtraGate {
				s.spawnGate(ctx, config.GateSpawnY-config.ExtraGateOffset, first)
			}
		}
		s.GateTimer = uniform(ctx.Rand, course.Settings.GateRange)
	}

	s.BonusTimer -= dt
	if s.BonusTimer <= 0 {
		kind := BonusSpeed
		if ctx.Rand.Float64() < InvertChance(course.Level, course.Score) {
			kind = BonusInvert
		}
		size := float64(config.SpeedBonusWidth)
		if kind == BonusInvert {
			size = config.InvertBonusWidth
		}
		x := placeX(ctx, size, config.BonusSpawnY, size, placed)
		ctx.Spawner.Spawn(NewBonus(kind, x, config.BonusSpawnY, course.Speed+config.CourseFallExtra))
		s.BonusTimer = uniform(ctx.Rand, course.Settings.BonusRange)
	}
	return false
}

// spawnGate adds a gate row at y. A row stacked above another keeps its gap
// within ExtraGateReach of the lower gap so the pair can be skied in sequence.
func (s *CourseSpawner) spawnGate(ctx UpdateContext, y float64, below *Gate) *Gate {
	gapX, gapW := GateGap(ctx.Rand, ctx.Screen.Width, ctx.Course.Level, ctx.Course.Speed, ctx.Course.Settings.SpeedBase)
	if below != nil {
		gapX = NearGap(gapX, gapW, below.GapX+below.GapW/2, ctx.Screen.Width)
	}
	g := NewGate(ctx.Screen, y, gapX, gapW, ctx.Course.Speed+config.CourseFallExtra)
	ctx.Spawner.Spawn(g)
	return g
}

// NearGap moves a gap of width gapW so its center is at most ExtraGateReach
// from anchor, keeping the gate's lateral margins.
func NearGap(gapX, gapW, anchor float64, screenWidth int) float64 {
	center := physics.Clamp(gapX+gapW/2, anchor-config.ExtraGateReach, anchor+config.ExtraGateReach)
	hi := max(config.GateLateralMargin, float64(screenWidth)-gapW-config.GateLateralMargin)
	return physics.Clamp(center-gapW/2, config.GateLateralMargin, hi)
}

// placeX picks a horizontal position for a new falling item. It retries a bounded
// number of times to avoid items still near the top of the screen and falls back
// to the last candidate when every attempt collides.
func placeX(ctx UpdateContext, w, y, h float64, placed []Rect) float64 {
	lo := int(config.SpawnLateralMargin)
	hi := ctx.Screen.Width - int(config.SpawnLateralMargin) - int(w)
	if hi < lo {
		return float64(lo)
	}

	x := lo
	for attempt := 0; attempt < config.SpawnPlacementAttempts; attempt++ {
		x = lo + ctx.Rand.Intn(hi-lo+1)
		candidate := Rect{X: float64(x), Y: y, W: w, H: h}
		if !crowded(candidate, ctx.Objects, placed) {
			break
		}
	}
	return float64(x)
}

// crowded reports whether candidate overlaps a recently spawned item.
func crowded(candidate Rect, objects []Object, placed []Rect) bool {
	for _, r := range placed {
		if candidate.Overlaps(r) {
			return true
		}
	}
	for _, obj := range objects {
		switch obj.(type) {
		case *Obstacle, *Bonus:
		default:
			continue
		}
		b := obj.Bounds()
		if b.Y > config.SpawnPlacementClearY {
			continue
		}
		// Compare horizontally only: anything still near the top blocks the lane.
		if candidate.X < b.X+b.W && b.X < candidate.X+candidate.W {
			return true
		}
	}
	return false
}

// Bounds is empty: the spawner has no body.
func (s *CourseSpawner) Bounds() Rect {
	return Rect{}
}

// Draw is a no-op; spawner is not visible.
func (s *CourseSpawner) Draw(_ DrawContext) {}

func uniform(rng *rand.Rand, r config.Range) float64 {
	if rng == nil || r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
