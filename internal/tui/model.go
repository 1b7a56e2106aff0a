// Package tui renders the portfolio in a terminal. It drives the same console
// as the web server, with bubbletea key messages as the event stream.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/panels"
)

// Model is the bubbletea model.
type Model struct {
	console *console.Console
	panels  *panels.Registry
	input   textinput.Model
	cursor  int
	width   int
}

// New returns a model over con. The query input starts focused when the
// console does.
func New(con *console.Console, registry *panels.Registry) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a command or search..."
	ti.Prompt = "› "
	ti.CharLimit = 64

	m := Model{console: con, panels: registry, input: ti, width: 80}
	if con.State().InputFocused {
		m.input.Focus()
	}
	return m
}

// Console returns the console the model drives.
func (m Model) Console() *console.Console { return m.console }

func (m Model) Init() tea.Cmd {
	if m.input.Focused() {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if ev, ok := toKeyEvent(msg); ok {
		res := m.console.HandleKey(ev)
		if res.Signal != console.SignalNone || res.PreventDefault {
			cmd := m.applySignal(res.Signal)
			m.sync()
			return m, cmd
		}
	}

	if !m.input.Focused() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			return m, m.applySignal(console.SignalRequestFocus)
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter":
			m.activateCursor()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	case tea.KeyEnter:
		m.activateCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.console.State().Query {
		m.console.SetQuery(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

// applySignal moves focus as the console asked and reports the result back.
func (m *Model) applySignal(sig console.Signal) tea.Cmd {
	switch sig {
	case console.SignalRequestFocus:
		cmd := m.input.Focus()
		m.console.SetFocus(true)
		return cmd
	case console.SignalReleaseFocus:
		m.input.Blur()
		m.console.SetFocus(false)
	}
	return nil
}

// sync makes the input mirror the console after a state change.
func (m *Model) sync() {
	st := m.console.State()
	if !st.InputFocused && m.input.Focused() {
		m.input.Blur()
	}
	if m.input.Value() != st.Query {
		m.input.SetValue(st.Query)
	}
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.console.FilteredCommands())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) activateCursor() {
	cmds := m.console.FilteredCommands()
	if len(cmds) == 0 {
		if cmd, ok := m.console.Suggest(); ok {
			m.console.Activate(cmd.ID)
		}
	} else {
		m.console.Activate(cmds[m.cursor].ID)
	}
	m.cursor = 0
	m.sync()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	kbdStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")).Padding(0, 1)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginTop(1)
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	sectionHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
)

func (m Model) View() string {
	st := m.console.State()
	pf := m.panels.Portfolio()
	width := m.width - 4
	if width < 40 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(pf.Name) + "  " + statusStyle.Render("● "+pf.Status) + "\n")
	b.WriteString(mutedStyle.Render(strings.Join(pf.Headline, " | ")) + "\n")
	if st.Idle() {
		var links []string
		for _, l := range pf.QuickLinks() {
			links = append(links, accentStyle.Render(l.Title))
		}
		b.WriteString(strings.Join(links, "  ") + "\n")
	}
	b.WriteString("\n")

	hint := "ctrl+k"
	if !st.Idle() {
		hint = "esc"
	}
	b.WriteString(boxStyle.Width(width).Render(m.input.View()+"  "+kbdStyle.Render(hint)) + "\n")

	if st.Idle() || st.InputFocused {
		b.WriteString(m.renderPalette(st, len(pf.Projects), len(pf.Tech)))
	}
	if p, ok := m.panels.Build(st.ActiveView); ok {
		b.WriteString(boxStyle.Width(width).Render(renderPanel(p, width-4)) + "\n")
	}

	b.WriteString(mutedStyle.Render("ctrl/alt+letter open · ctrl+k search · esc close · q quit") + "\n")
	return b.String()
}

func (m Model) renderPalette(st console.State, projects, tech int) string {
	var b strings.Builder
	if st.Idle() && st.Query == "" {
		b.WriteString(fmt.Sprintf("%s Years Exp   %s Projects   %s Tech Stack\n\n",
			titleStyle.Render("3+"), titleStyle.Render(fmt.Sprint(projects)), titleStyle.Render(fmt.Sprint(tech))))
	}
	heading := "EXPLORE"
	if st.Query != "" {
		heading = "SEARCH RESULTS"
	}
	b.WriteString(sectionHeader.Render(heading) + "\n")

	cmds := m.console.FilteredCommands()
	for i, cmd := range cmds {
		marker := "  "
		label := cmd.Label
		if i == m.cursor {
			marker = cursorStyle.Render("› ")
			label = cursorStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s  %s\n", marker, label,
			mutedStyle.Render(cmd.Description), kbdStyle.Render("⌃"+cmd.ShortcutKey)))
	}
	if len(cmds) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No commands match %q.", st.Query)))
		if cmd, ok := m.console.Suggest(); ok {
			b.WriteString(" Did you mean " + accentStyle.Render(cmd.Label) + "? (enter)")
		}
		b.WriteString("\n")
	}
	return b.String() + "\n"
}

func renderPanel(p panels.Panel, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title) + "\n")
	if p.Subtitle != "" {
		b.WriteString(mutedStyle.Render(p.Subtitle) + "\n")
	}
	if p.Link != nil {
		b.WriteString(accentStyle.Render(p.Link.Title+" → "+p.Link.URL) + "\n")
	}
	wrap := lipgloss.NewStyle().Width(width)
	for _, s := range p.Sections {
		if s.Heading != "" {
			b.WriteString(headingStyle.Render(s.Heading) + "\n")
		}
		for _, it := range s.Items {
			line := it.Title
			if it.Meta != "" {
				line += "  " + mutedStyle.Render(it.Meta)
			}
			if line != "" {
				b.WriteString("• " + line + "\n")
			}
			if it.Body != "" {
				b.WriteString(wrap.Render(mutedStyle.Render(it.Body)) + "\n")
			}
			for _, bullet := range it.Bullets {
				b.WriteString(wrap.Render("  - "+bullet) + "\n")
			}
			if len(it.Tags) > 0 {
				tags := make([]string, len(it.Tags))
				for i, t := range it.Tags {
					tags[i] = "#" + t
				}
				b.WriteString("  " + tagStyle.Render(strings.Join(tags, " ")) + "\n")
			}
			if it.URL != "" && it.Title != "" {
				b.WriteString("  " + accentStyle.Render(it.URL) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
