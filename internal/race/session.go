// Package race runs the ski segment: a scrolling slope with gates, hazards,
// bonuses, a drone and the yeti pack, ending at a finish row.
package race

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/event"
	"github.com/tomz197/skirunner/internal/input"
	"github.com/tomz197/skirunner/internal/object"
	"github.com/tomz197/skirunner/internal/physics"
)

// FinishLine is the last row of the course: a band with one centered gap.
type FinishLine struct {
	Y    float64
	GapX float64
	GapW float64
}

// GapContains reports whether x lies inside the finish gap.
func (f *FinishLine) GapContains(x float64) bool {
	return x >= f.GapX && x <= f.GapX+f.GapW
}

// Options configures a new session.
type Options struct {
	Rand   *rand.Rand    // Seeded from the clock if nil
	Events event.Sink    // Receives discrete events; nil discards them
	Score  int           // Score carried over from earlier levels
	Screen object.Screen // Zero value selects the default screen
}

// Session holds all mutable state of one ski segment.
// It is created on level start and discarded when the level ends.
type Session struct {
	Level    int
	Settings config.LevelSettings
	Screen   object.Screen

	Player  *object.Player
	Objects []object.Object
	toSpawn []object.Object

	Speed        float64 // Slope speed in units per second
	SpeedCeiling float64 // Current cap on Speed, raised by passed gates
	Score        int
	RaceTime     float64
	Budget       float64 // RaceTime at which the run times out
	DistanceLeft float64
	Finish       *FinishLine
	GatesPassed  int

	Outcome Outcome
	Cause   event.Type // What ended the race; meaningful once terminal

	scoreFrac float64
	rng       *rand.Rand
	events    event.Sink
}

// NewSession creates a fresh ski segment for the given level.
// Out-of-range levels are clamped onto the table.
func NewSession(level int, levels config.Levels, opts Options) *Session {
	if len(levels) == 0 {
		levels = config.DefaultLevels()
	}
	level = levels.Clamp(level)
	settings := levels.Get(level)

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	screen := opts.Screen
	if screen.Width == 0 || screen.Height == 0 {
		screen = object.DefaultScreen()
	}

	s := &Session{
		Level:        level,
		Settings:     settings,
		Screen:       screen,
		Player:       object.NewPlayer(screen),
		Speed:        math.Min(settings.MaxSpeed, settings.SpeedBase),
		SpeedCeiling: math.Max(settings.SpeedBase, settings.MaxSpeed-config.SpeedCeilingHeadroom),
		Score:        opts.Score,
		Budget:       settings.FinishTime + config.RaceGraceSeconds,
		DistanceLeft: settings.DistanceM,
		rng:          rng,
		events:       event.OrDiscard(opts.Events),
	}

	s.AddObject(object.NewCourseSpawner(rng, settings))
	s.AddObject(object.NewDrone(float64(screen.Width) / 2))
	for _, y := range object.SpawnYetis(screen, level) {
		s.AddObject(y)
	}
	return s
}

// AddObject adds an object to the slope immediately.
func (s *Session) AddObject(obj object.Object) {
	s.Objects = append(s.Objects, obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *Session) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the slope and clears the queue.
func (s *Session) FlushSpawned() {
	for _, obj := range s.toSpawn {
		if o, ok := obj.(*object.Obstacle); ok && o.Kind == object.ObstacleDrop {
			s.emit(event.DroneDrop, 0, o.X, o.Y)
		}
	}
	s.Objects = append(s.Objects, s.toSpawn...)
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// Course returns the read-only view entities steer by.
func (s *Session) Course() object.Course {
	return object.Course{
		Level:     s.Level,
		Settings:  s.Settings,
		Speed:     s.Speed,
		Score:     s.Score,
		PlayerX:   s.Player.CenterX(),
		PlayerY:   s.Player.Y,
		Finishing: s.DistanceLeft <= 0,
	}
}

// UpdateContext creates an UpdateContext from the current state.
func (s *Session) UpdateContext(dt time.Duration, intent input.Intent) object.UpdateContext {
	return object.UpdateContext{
		Delta:   dt,
		Intent:  intent,
		Screen:  s.Screen,
		Spawner: s,
		Objects: s.Objects,
		Rand:    s.rng,
		Course:  s.Course(),
	}
}

// TimeLeft returns the seconds left before the run times out.
func (s *Session) TimeLeft() float64 {
	return math.Max(0, s.Budget-s.RaceTime)
}

// Progress returns the completed fraction of the course distance in [0, 1].
func (s *Session) Progress() float64 {
	if s.Settings.DistanceM <= 0 {
		return 1
	}
	return physics.Clamp(1-s.DistanceLeft/s.Settings.DistanceM, 0, 1)
}

// Update advances the race by one tick. Once terminal, further calls do nothing.
func (s *Session) Update(dt time.Duration, intent input.Intent) Outcome {
	if s.Outcome.Terminal() {
		return s.Outcome
	}

	// A budget used up last tick ends the race before anything moves.
	if s.RaceTime >= s.Budget {
		s.end(Timeout, event.RaceTimeout)
		return s.Outcome
	}

	sec := dt.Seconds()
	s.RaceTime += sec

	s.Player.Update(s.UpdateContext(dt, intent))

	s.DistanceLeft = math.Max(0, s.DistanceLeft-s.Speed*sec*s.Settings.DistanceScale())
	if s.Speed < s.SpeedCeiling {
		s.Speed = physics.Approach(s.Speed, s.SpeedCeiling, config.SpeedGainPerSecond*sec)
	}
	s.accrueScore(sec)

	s.updateObjects(dt, intent)

	s.checkCollisions()
	s.FlushSpawned()
	if !s.Outcome.Terminal() {
		s.updateFinish(sec)
	}
	s.pruneConsumed()
	return s.Outcome
}

// accrueScore adds the time-based score, carrying the fraction between ticks.
func (s *Session) accrueScore(sec float64) {
	s.scoreFrac += sec * config.PointsPerSecond
	whole := math.Floor(s.scoreFrac)
	s.Score += int(whole)
	s.scoreFrac -= whole
}

// updateObjects updates all objects and removes any that request removal.
func (s *Session) updateObjects(dt time.Duration, intent input.Intent) {
	ctx := s.UpdateContext(dt, intent)

	kept := s.Objects[:0] // reuse backing array
	for _, obj := range s.Objects {
		if !obj.Update(ctx) {
			kept = append(kept, obj)
		}
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept

	s.FlushSpawned()
}

// pruneConsumed drops objects the player picked up or smashed this tick.
func (s *Session) pruneConsumed() {
	kept := s.Objects[:0]
	for _, obj := range s.Objects {
		if !object.IsGone(obj) {
			kept = append(kept, obj)
		}
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept
}

// updateFinish spawns the finish row once the distance is used up, moves it and
// decides the race when it passes the player.
func (s *Session) updateFinish(sec float64) {
	if s.Finish == nil {
		if s.DistanceLeft > 0 {
			return
		}
		s.Finish = s.newFinishLine()
	}

	s.Finish.Y += (s.Speed + config.CourseFallExtra) * sec
	if s.Finish.Y <= s.Player.Y {
		return
	}

	cx := s.Player.CenterX()
	if s.Finish.GapContains(cx) {
		s.Score += s.Settings.FinishScore
		s.emit(event.FinishCrossed, s.Settings.FinishScore, cx, s.Finish.Y)
		s.Outcome = Win
		s.Cause = event.FinishCrossed
		return
	}
	s.end(MissedFinish, event.FinishMissed)
}

// newFinishLine places the finish row at its spawn height, or higher when a
// gate is still close above so that both rows never cross the player together.
func (s *Session) newFinishLine() *FinishLine {
	y := config.FinishSpawnY
	for _, obj := range s.Objects {
		if g, ok := obj.(*object.Gate); ok && g.Y-config.FinishClearance < y {
			y = g.Y - config.FinishClearance
		}
	}
	w := float64(config.FinishGapWidth)
	return &FinishLine{
		Y:    y,
		GapX: (float64(s.Screen.Width) - w) / 2,
		GapW: w,
	}
}

// end records a losing terminal outcome.
func (s *Session) end(outcome Outcome, cause event.Type) {
	s.Outcome = outcome
	s.Cause = cause
	s.emit(cause, 0, s.Player.CenterX(), s.Player.Y)
}

func (s *Session) emit(t event.Type, value int, x, y float64) {
	s.events.Emit(event.Event{Type: t, Value: value, X: x, Y: y})
}
