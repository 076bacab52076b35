package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpath/internal/core"
)

// EditorKeyMap defines the key bindings for the grid editor.
type EditorKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	ToggleWall    key.Binding
	SetStart      key.Binding
	SetGoal       key.Binding
	Search        key.Binding
	Clear         key.Binding
	Generate      key.Binding
	NextGenerator key.Binding
	Explored      key.Binding
	Screenshot    key.Binding
	SaveMap       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleWall, k.SetStart, k.SetGoal, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ToggleWall, k.SetStart, k.SetGoal, k.Search},
		{k.Clear, k.Generate, k.NextGenerator, k.Explored},
		{k.Screenshot, k.SaveMap, k.Help, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "move right"),
		),
		ToggleWall: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "wall"),
		),
		SetStart: key.NewBinding(
			key.WithKeys("1", "S"),
			key.WithHelp("1", "start"),
		),
		SetGoal: key.NewBinding(
			key.WithKeys("2", "G"),
			key.WithHelp("2", "goal"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter", "f"),
			key.WithHelp("enter", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear walls"),
		),
		Generate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "generate"),
		),
		NextGenerator: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next generator"),
		),
		Explored: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "explored"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		SaveMap: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "save as map"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to an editor action.
// Screenshot, map saving and help toggling are UI concerns and map to
// ActionNone.
func (k EditorKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.ToggleWall):
		return core.ActionToggleWall
	case key.Matches(msg, k.SetStart):
		return core.ActionSetStart
	case key.Matches(msg, k.SetGoal):
		return core.ActionSetGoal
	case key.Matches(msg, k.Search):
		return core.ActionSearch
	case key.Matches(msg, k.Clear):
		return core.ActionClear
	case key.Matches(msg, k.Generate):
		return core.ActionGenerate
	case key.Matches(msg, k.NextGenerator):
		return core.ActionNextGenerator
	case key.Matches(msg, k.Explored):
		return core.ActionExplored
	}
	return core.ActionNone
}
