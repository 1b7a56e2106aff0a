// Package console implements the command palette that drives the portfolio:
// a fixed catalog of commands, a text query, and the view currently open.
//
// A Console is not safe for concurrent use. Callers that receive input from
// several goroutines serialize access themselves.
package console

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// State is a snapshot of the console.
type State struct {
	Query        string
	ActiveView   View
	InputFocused bool
}

// Idle reports whether no view is open.
func (s State) Idle() bool { return s.ActiveView == ViewNone }

// Transition describes a change of the active view.
type Transition struct {
	From View
	To   View
}

// Option configures a Console.
type Option func(*Console)

// WithInitialFocus sets whether the query input is focused at start and after a reset.
func WithInitialFocus(focused bool) Option {
	return func(c *Console) { c.initialFocus = focused }
}

// WithTransitionHook registers fn to observe active view changes.
func WithTransitionHook(fn func(Transition)) Option {
	return func(c *Console) {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
	}
}

// Console owns the palette state for one UI session.
type Console struct {
	catalog      *Catalog
	state        State
	initialFocus bool
	hooks        []func(Transition)
}

// New returns an idle console over catalog.
func New(catalog *Catalog, opts ...Option) *Console {
	c := &Console{catalog: catalog}
	for _, opt := range opts {
		opt(c)
	}
	c.state = State{InputFocused: c.initialFocus}
	return c
}

// Catalog returns the console's catalog.
func (c *Console) Catalog() *Catalog { return c.catalog }

// State returns the current state.
func (c *Console) State() State { return c.state }

// SetQuery replaces the query. The empty string lists every command.
func (c *Console) SetQuery(text string) {
	c.state.Query = text
}

// SetFocus records whether the query input currently holds focus.
func (c *Console) SetFocus(focused bool) {
	c.state.InputFocused = focused
}

// FilteredCommands returns the commands whose label contains the query,
// ignoring case, in catalog order.
func (c *Console) FilteredCommands() []Command {
	return filter(c.catalog.commands, c.state.Query)
}

func filter(cmds []Command, query string) []Command {
	q := strings.ToLower(query)
	out := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		if strings.Contains(strings.ToLower(cmd.Label), q) {
			out = append(out, cmd)
		}
	}
	return out
}

// Suggest returns the closest command label when the query matches nothing.
func (c *Console) Suggest() (Command, bool) {
	q := strings.ToLower(strings.TrimSpace(c.state.Query))
	if q == "" || len(c.FilteredCommands()) > 0 {
		return Command{}, false
	}
	best, bestDist := -1, len([]rune(q))/2+1
	for i, cmd := range c.catalog.commands {
		d := levenshtein.ComputeDistance(q, strings.ToLower(cmd.Label))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Command{}, false
	}
	return c.catalog.commands[best], true
}

// Activate opens the view of the command id. Unknown ids are ignored.
func (c *Console) Activate(id View) {
	if _, ok := c.catalog.Lookup(id); !ok {
		return
	}
	from := c.state.ActiveView
	c.state.ActiveView = id
	c.state.Query = ""
	c.state.InputFocused = false
	c.notify(from, id)
}

// Close returns the console to idle and resets the query and focus.
func (c *Console) Close() {
	from := c.state.ActiveView
	c.state = State{InputFocused: c.initialFocus}
	c.notify(from, ViewNone)
}

func (c *Console) notify(from, to View) {
	if from == to {
		return
	}
	t := Transition{From: from, To: to}
	for _, fn := range c.hooks {
		fn(t)
	}
}
