package core

// Frame is the input state pushed into the simulation for a single tick.
// Input collaborators (terminal front-end, SSH sessions) fill one of these
// per frame; the simulation never reads devices directly.
type Frame struct {
	// MoveX and MoveZ form the movement intent on the gameplay plane.
	// The simulation normalizes the pair, so any magnitude is accepted.
	MoveX, MoveZ float64

	// Fire requests a shot this tick, subject to the weapon's rate of fire.
	Fire bool

	// Pause toggles the shell-level pause. It is edge-triggered: set it on
	// the tick the key went down, not while it is held.
	Pause bool
}

// Clear resets the frame for reuse on the next tick.
func (f *Frame) Clear() {
	*f = Frame{}
}

// Moving reports whether the frame carries any movement intent.
func (f Frame) Moving() bool {
	return f.MoveX != 0 || f.MoveZ != 0
}
