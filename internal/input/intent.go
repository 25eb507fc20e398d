package input

// Intent is the logical control state the simulation consumes for one tick.
// Device details stay in this package.
type Intent struct {
	MoveX   int  // -1 left, 0 none, +1 right
	MoveY   int  // -1 up, 0 none, +1 down
	Action  bool // Charge or release, true only on the press frame
	Confirm bool // Skip a result pause, true only on the press frame
}

// Intent maps the frame's key state onto a logical intent.
// Opposite directions held together cancel out.
func (in Input) Intent() Intent {
	var it Intent
	if in.Left {
		it.MoveX--
	}
	if in.Right {
		it.MoveX++
	}
	if in.Up {
		it.MoveY--
	}
	if in.Down {
		it.MoveY++
	}
	it.Action = in.SpacePressed
	it.Confirm = in.EnterPressed
	return it
}
