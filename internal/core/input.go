package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the engine to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // w - move up
	ActionDown         // s - move down
	ActionLeft         // a - move left
	ActionRight        // d - move right
	ActionPause        // p - pause/unpause
	ActionQuit         // q - stop the run
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ActionForKey maps a raw key code to an action.
// Unknown codes map to ActionNone.
func ActionForKey(code byte) Action {
	switch code {
	case 'w', 'W':
		return ActionUp
	case 's', 'S':
		return ActionDown
	case 'a', 'A':
		return ActionLeft
	case 'd', 'D':
		return ActionRight
	case 'p', 'P':
		return ActionPause
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// Delta returns the unit step for a movement action, or (0, 0).
func (a Action) Delta() (dx, dy float64) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}

// IsMove reports whether the action moves the player.
func (a Action) IsMove() bool {
	dx, dy := a.Delta()
	return dx != 0 || dy != 0
}
