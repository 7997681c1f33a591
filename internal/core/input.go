package core

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // Space, P - toggle pause
	ActionStep           // N, Right - advance one step while paused
	ActionRestart        // R - reload the scenario
	ActionFaster         // + - raise tick rate
	ActionSlower         // - - lower tick rate
	ActionQuit           // Q, Ctrl+C - exit viewer
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionRestart:
		return "Restart"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one viewer tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
