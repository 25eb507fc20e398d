// Package event carries discrete simulation happenings to presentation layers.
// The simulation only emits tags; sinks decide what to do with them.
package event

// Type represents the type of simulation event
type Type int

const (
	// === Race ===

	// GatePassed: player crossed a gate row inside its gap | Value: points awarded
	GatePassed Type = iota
	// GateCrashed: player touched a tree | fatal
	GateCrashed
	// GateMissed: player crossed a gate row outside its gap | fatal
	GateMissed
	// BonusSpeed: speed bonus collected
	BonusSpeed
	// BonusInvert: control-inverting bonus collected
	BonusInvert
	// RockHit: terrain hazard hit | Value: points lost
	RockHit
	// DropHit: drone drop hit
	DropHit
	// DroneDrop: drone released a hazard
	DroneDrop
	// YetiCaught: a yeti reached the player | fatal
	YetiCaught
	// FinishCrossed: player went through the finish gap | Value: level bonus
	FinishCrossed
	// FinishMissed: player crossed the finish row outside the gap
	FinishMissed
	// RaceTimeout: race budget exhausted
	RaceTimeout

	// === Curling ===

	// StoneLaunched: stone released | Value: power
	StoneLaunched
	// StoneStopped: the thrown stone came to rest | Value: throw score
	StoneStopped
	// StoneCollision: two stones touched
	StoneCollision

	// === Biathlon ===

	// ArrowShot: shot released | Value: power
	ArrowShot
	// TargetHit: a target was hit | Value: points
	TargetHit
	// ShotMissed: a shot hit nothing
	ShotMissed

	// === Match ===

	// MiniGameTimeout: a mini-game's time limit ran out
	MiniGameTimeout
	// LevelCleared: race won on a non-final level | Value: next level
	LevelCleared
	// StageChanged: the match moved to another stage | Value: stage
	StageChanged
)

var typeNames = map[Type]string{
	GatePassed:      "gate_passed",
	GateCrashed:     "gate_crashed",
	GateMissed:      "gate_missed",
	BonusSpeed:      "bonus_speed",
	BonusInvert:     "bonus_invert",
	RockHit:         "rock_hit",
	DropHit:         "drop_hit",
	DroneDrop:       "drone_drop",
	YetiCaught:      "yeti_caught",
	FinishCrossed:   "finish_crossed",
	FinishMissed:    "finish_missed",
	RaceTimeout:     "race_timeout",
	StoneLaunched:   "stone_launched",
	StoneStopped:    "stone_stopped",
	StoneCollision:  "stone_collision",
	ArrowShot:       "arrow_shot",
	TargetHit:       "target_hit",
	ShotMissed:      "shot_missed",
	MiniGameTimeout: "minigame_timeout",
	LevelCleared:    "level_cleared",
	StageChanged:    "stage_changed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
