package core

// Action is a semantic editor action, abstracted from physical key presses.
type Action int

const (
	ActionNone          Action = iota
	ActionUp                   // Move cursor up
	ActionDown                 // Move cursor down
	ActionLeft                 // Move cursor left
	ActionRight                // Move cursor right
	ActionToggleWall           // Flip the wall under the cursor
	ActionSetStart             // Move the start marker to the cursor
	ActionSetGoal              // Move the goal marker to the cursor
	ActionSearch               // Run the search
	ActionClear                // Remove every wall
	ActionGenerate             // Replace walls with a generated layout
	ActionNextGenerator        // Cycle the generator used by ActionGenerate
	ActionExplored             // Toggle display of finalized cells
	ActionQuit                 // Exit the editor
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
	case ActionToggleWall:
		return "ToggleWall"
	case ActionSetStart:
		return "SetStart"
	case ActionSetGoal:
		return "SetGoal"
	case ActionSearch:
		return "Search"
	case ActionClear:
		return "Clear"
	case ActionGenerate:
		return "Generate"
	case ActionNextGenerator:
		return "NextGenerator"
	case ActionExplored:
		return "Explored"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the cursor movement for directional actions.
func (a Action) Delta() (dx, dy int) {
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
