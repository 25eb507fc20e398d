package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned when a level table entry fails validation.
var ErrInvalidLevel = errors.New("invalid level settings")

// Range is an inclusive [Min, Max] interval used for randomized timers.
type Range struct {
	Min float64
	Max float64
}

// UnmarshalYAML accepts a two-element sequence: [min, max].
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("range needs exactly two values, got %d", len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// LevelSettings holds the difficulty parameters of one level.
type LevelSettings struct {
	SpeedBase   float64 `yaml:"speed_base"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MinGap      float64 `yaml:"min_gap"`
	GateRange   Range   `yaml:"gate_range"`
	ExtraGate   float64 `yaml:"extra_gate"`
	BonusRange  Range   `yaml:"bonus_range"`
	FinishScore int     `yaml:"finish_score"`
	FinishTime  float64 `yaml:"finish_time"`
	DistanceM   float64 `yaml:"distance_m"`
}

// Validate checks that the settings describe a playable level.
func (s LevelSettings) Validate() error {
	switch {
	case s.SpeedBase <= 0:
		return errors.New("speed_base must be positive")
	case s.MaxSpeed < s.SpeedBase:
		return errors.New("max_speed must not be below speed_base")
	case s.MinGap <= 0:
		return errors.New("min_gap must be positive")
	case s.GateRange.Min <= 0 || s.GateRange.Max < s.GateRange.Min:
		return errors.New("gate_range must be a positive ascending pair")
	case s.ExtraGate < 0 || s.ExtraGate > 1:
		return errors.New("extra_gate must be a probability")
	case s.BonusRange.Min <= 0 || s.BonusRange.Max < s.BonusRange.Min:
		return errors.New("bonus_range must be a positive ascending pair")
	case s.FinishTime <= 0:
		return errors.New("finish_time must be positive")
	case s.DistanceM <= 0:
		return errors.New("distance_m must be positive")
	case s.FinishScore < 0:
		return errors.New("finish_score must not be negative")
	}
	return nil
}

// DistanceScale converts travelled speed units into metres of course.
func (s LevelSettings) DistanceScale() float64 {
	return s.DistanceM / max(1.0, s.FinishTime*s.SpeedBase)
}

// Levels is a difficulty table indexed from 1.
type Levels []LevelSettings

// DefaultLevels returns the built-in five-level table.
func DefaultLevels() Levels {
	return Levels{
		{SpeedBase: 130, MaxSpeed: 230, MinGap: 1.8, GateRange: Range{1.7, 2.6}, ExtraGate: 0.0, BonusRange: Range{4.2, 6.5}, FinishScore: 100, FinishTime: 25.0, DistanceM: 100},
		{SpeedBase: 140, MaxSpeed: 245, MinGap: 1.6, GateRange: Range{1.6, 2.3}, ExtraGate: 0.1, BonusRange: Range{3.8, 6.0}, FinishScore: 140, FinishTime: 24.0, DistanceM: 120},
		{SpeedBase: 150, MaxSpeed: 260, MinGap: 1.45, GateRange: Range{1.4, 2.1}, ExtraGate: 0.2, BonusRange: Range{3.3, 5.5}, FinishScore: 180, FinishTime: 23.0, DistanceM: 140},
		{SpeedBase: 160, MaxSpeed: 275, MinGap: 1.3, GateRange: Range{1.3, 2.0}, ExtraGate: 0.3, BonusRange: Range{2.9, 5.0}, FinishScore: 220, FinishTime: 22.0, DistanceM: 160},
		{SpeedBase: 170, MaxSpeed: 295, MinGap: 1.15, GateRange: Range{1.2, 1.8}, ExtraGate: 0.4, BonusRange: Range{2.5, 4.6}, FinishScore: 260, FinishTime: 21.0, DistanceM: 180},
	}
}

// Count returns the number of configured levels.
func (l Levels) Count() int {
	return len(l)
}

// Clamp maps any level number onto the nearest configured level.
func (l Levels) Clamp(level int) int {
	if level < 1 {
		return 1
	}
	if level > len(l) {
		return len(l)
	}
	return level
}

// Get returns the settings for a level, clamping out-of-range numbers.
// An empty table falls back to the built-in defaults.
func (l Levels) Get(level int) LevelSettings {
	if len(l) == 0 {
		return DefaultLevels().Get(level)
	}
	return l[l.Clamp(level)-1]
}

type levelFile struct {
	Levels []LevelSettings `yaml:"levels"`
}

// ParseLevels decodes and validates a YAML level table.
func ParseLevels(data []byte) (Levels, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrInvalidLevel)
	}
	for i, s := range f.Levels {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: level %d: %v", ErrInvalidLevel, i+1, err)
		}
	}
	return Levels(f.Levels), nil
}

// LoadLevels reads a level table from a YAML file.
// An empty path returns the built-in table.
func LoadLevels(path string) (Levels, error) {
	if path == "" {
		return DefaultLevels(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	return ParseLevels(data)
}
