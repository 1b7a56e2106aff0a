package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/content"
	"github.com/Zachkp/spotlight/internal/panels"
)

func newModel(opts ...console.Option) Model {
	con := console.New(console.DefaultCatalog(), opts...)
	return New(con, panels.NewRegistry(content.Default()))
}

func send(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want console.KeyEvent
		ok   bool
	}{
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, console.KeyEvent{Key: "Escape"}, true},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlP}, console.KeyEvent{Key: "p", Ctrl: true}, true},
		{"ctrl k", tea.KeyMsg{Type: tea.KeyCtrlK}, console.KeyEvent{Key: "k", Ctrl: true}, true},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s"), Alt: true}, console.KeyEvent{Key: "s", Meta: true}, true},
		{"plain letter", runes("p"), console.KeyEvent{}, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, console.KeyEvent{}, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, console.KeyEvent{}, false},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, console.KeyEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toKeyEvent(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortcutOpensPanel(t *testing.T) {
	m := newModel()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})

	assert.Equal(t, console.ViewProjects, m.Console().State().ActiveView)
	assert.Contains(t, m.View(), "Featured Projects")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Console().State().Idle())
	assert.Contains(t, m.View(), "EXPLORE")
}

func TestFocusTypeAndActivate(t *testing.T) {
	m := newModel()
	require.False(t, m.input.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.True(t, m.input.Focused())
	assert.True(t, m.Console().State().InputFocused)

	m, _ = send(t, m, runes("tech"))
	assert.Equal(t, "tech", m.Console().State().Query)
	require.Len(t, m.Console().FilteredCommands(), 1)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	st := m.Console().State()
	assert.Equal(t, console.ViewTech, st.ActiveView)
	assert.Empty(t, st.Query)
	assert.False(t, st.InputFocused)
	assert.False(t, m.input.Focused())
	assert.Empty(t, m.input.Value())
}

func TestEnterFollowsSuggestion(t *testing.T) {
	m := newModel(console.WithInitialFocus(true))
	require.True(t, m.input.Focused())

	m, _ = send(t, m, runes("projcts"))
	assert.Empty(t, m.Console().FilteredCommands())
	assert.Contains(t, m.View(), "Did you mean")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, console.ViewProjects, m.Console().State().ActiveView)
}

func TestCursorNavigation(t *testing.T) {
	m := newModel()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m, _ = send(t, m, runes("k"), runes("k"), runes("k"))
	assert.Equal(t, 0, m.cursor, "cursor clamps at the top")

	m, _ = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, console.ViewProjects, m.Console().State().ActiveView)
}

func TestQuitOnlyWhenUnfocused(t *testing.T) {
	m := newModel()
	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = send(t, m, runes("/"))
	require.True(t, m.input.Focused())
	m, _ = send(t, m, runes("q"))
	assert.Equal(t, "q", m.Console().State().Query)
}
