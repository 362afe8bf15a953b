package core

// Action represents a semantic game action, abstracted from physical key presses.
// The simulation consumes at most one action per tick.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - shift piece left
	ActionRight           // D, Right arrow - shift piece right
	ActionSoftDrop        // S, Down arrow - move piece down one row
	ActionRotate          // W, Up arrow - rotate clockwise
	ActionHardDrop        // Space - drop to the floor and settle
	ActionStart           // Enter - leave the title screen
	ActionRestart         // R key - new session after game over
	ActionPause           // P key - pause/unpause while playing
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputQueue buffers key presses that arrive between ticks so that each tick
// hands the simulation a single action.
type InputQueue struct {
	pending []Action
	limit   int
}

// NewInputQueue creates a queue that keeps at most limit pending actions.
// Extra presses are dropped, which keeps key auto-repeat from piling up.
func NewInputQueue(limit int) *InputQueue {
	if limit < 1 {
		limit = 1
	}
	return &InputQueue{limit: limit}
}

// Push appends an action. ActionNone is ignored.
func (q *InputQueue) Push(a Action) {
	if a == ActionNone || len(q.pending) >= q.limit {
		return
	}
	q.pending = append(q.pending, a)
}

// Pop removes and returns the oldest action, or ActionNone when empty.
func (q *InputQueue) Pop() Action {
	if len(q.pending) == 0 {
		return ActionNone
	}
	a := q.pending[0]
	q.pending = q.pending[1:]
	return a
}

// Len returns the number of pending actions.
func (q *InputQueue) Len() int {
	return len(q.pending)
}

// Clear drops all pending actions.
func (q *InputQueue) Clear() {
	q.pending = q.pending[:0]
}
