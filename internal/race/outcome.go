package race

// Outcome is the terminal state of a race, or Running while it goes on.
type Outcome int

const (
	Running        Outcome = iota // Race in progress
	Win                           // Crossed the finish row inside the gap
	FatalCollision                // Tree, missed gate or yeti
	Timeout                       // Race-time budget exhausted
	MissedFinish                  // Crossed the finish row outside the gap
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Win:
		return "win"
	case FatalCollision:
		return "fatal_collision"
	case Timeout:
		return "timeout"
	case MissedFinish:
		return "missed_finish"
	default:
		return "unknown"
	}
}

// Terminal reports whether the race has ended.
func (o Outcome) Terminal() bool {
	return o != Running
}
