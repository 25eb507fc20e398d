package match

// Stage is the part of the match currently running.
type Stage int

const (
	StageRace     Stage = iota // Ski segment, possibly over several levels
	StageCurling               // Sliding mini-game
	StageBiathlon              // Throwing mini-game
	StageFinished              // Terminal, won or lost
)

func (s Stage) String() string {
	switch s {
	case StageRace:
		return "race"
	case StageCurling:
		return "curling"
	case StageBiathlon:
		return "biathlon"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Mode selects which stages a match runs.
type Mode int

const (
	ModeOlympic          Mode = iota // Every level, then both mini-games
	ModeTrainingRace                 // One race at a chosen level
	ModeTrainingCurling              // Curling only
	ModeTrainingBiathlon             // Biathlon only
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeOlympic, ModeTrainingRace, ModeTrainingCurling, ModeTrainingBiathlon}

func (m Mode) String() string {
	switch m {
	case ModeOlympic:
		return "olympic"
	case ModeTrainingRace:
		return "training race"
	case ModeTrainingCurling:
		return "training curling"
	case ModeTrainingBiathlon:
		return "training biathlon"
	default:
		return "unknown"
	}
}

// Ranked reports whether results of this mode go on the leaderboard.
func (m Mode) Ranked() bool {
	return m == ModeOlympic
}

func (m Mode) firstStage() Stage {
	switch m {
	case ModeTrainingCurling:
		return StageCurling
	case ModeTrainingBiathlon:
		return StageBiathlon
	default:
		return StageRace
	}
}
