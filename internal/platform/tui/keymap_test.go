package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyCode(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected byte
		ok       bool
	}{
		{"w", runeKey('w'), 'w', true},
		{"upper S", runeKey('S'), 's', true},
		{"a", runeKey('a'), 'a', true},
		{"d", runeKey('d'), 'd', true},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, 'w', true},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, 's', true},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, 'a', true},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, 'd', true},
		{"pause", runeKey('p'), 'p', true},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, 'p', true},
		{"quit", runeKey('q'), 'q', true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, 'q', true},
		{"unbound", runeKey('x'), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := km.KeyCode(tc.msg)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("KeyCode() = (%q, %v), expected (%q, %v)", got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if n := len(km.ShortHelp()); n != 6 {
		t.Errorf("len(ShortHelp()) = %d, expected 6", n)
	}
	if n := len(km.FullHelp()); n != 2 {
		t.Errorf("len(FullHelp()) = %d, expected 2", n)
	}
}
