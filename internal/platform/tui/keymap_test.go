package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpath/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEditorKeyMapAction(t *testing.T) {
	keys := DefaultEditorKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"vim down", runeKey('j'), core.ActionDown},
		{"wasd left", runeKey('a'), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"space toggles wall", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionToggleWall},
		{"x toggles wall", runeKey('x'), core.ActionToggleWall},
		{"start", runeKey('1'), core.ActionSetStart},
		{"goal", runeKey('G'), core.ActionSetGoal},
		{"enter searches", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSearch},
		{"clear", runeKey('c'), core.ActionClear},
		{"generate", runeKey('r'), core.ActionGenerate},
		{"next generator", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextGenerator},
		{"explored", runeKey('e'), core.ActionExplored},
		{"quit", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"screenshot is not an action", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
		{"save map is not an action", runeKey('m'), core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.expected {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestEditorKeyMapHelp(t *testing.T) {
	keys := DefaultEditorKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}

	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 16 {
		t.Errorf("FullHelp() lists %d bindings, expected 16", total)
	}
}
