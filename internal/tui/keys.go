package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/spotlight/internal/console"
)

// toKeyEvent translates a terminal key into a console event. It reports false
// for keys the console never routes (plain typing, navigation).
//
// Terminals cannot send a meta key, so alt stands in for it. Ctrl+I and
// Ctrl+M arrive as tab and enter and are left to the input.
func toKeyEvent(msg tea.KeyMsg) (console.KeyEvent, bool) {
	switch {
	case msg.Type == tea.KeyEsc:
		return console.KeyEvent{Key: "Escape"}, true
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyEnter:
		return console.KeyEvent{}, false
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		letter := string(rune('a' + int(msg.Type-tea.KeyCtrlA)))
		return console.KeyEvent{Key: letter, Ctrl: true}, true
	case msg.Alt && msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		return console.KeyEvent{Key: string(msg.Runes), Meta: true}, true
	}
	return console.KeyEvent{}, false
}
