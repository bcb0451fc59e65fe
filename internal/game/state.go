package game

// State is the viewer's input mode.
type State int

const (
	// StateExplore moves the explorer and takes staircases.
	StateExplore State = iota
	// StateInspect moves a cursor and describes what lies under it.
	StateInspect
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateInspect:
		return "inspect"
	default:
		return "unknown"
	}
}
