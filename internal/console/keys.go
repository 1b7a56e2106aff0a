package console

import "strings"

const (
	escapeKey = "Escape"
	focusKey  = "K"
)

// KeyEvent is one key press delivered by the rendering layer.
type KeyEvent struct {
	Key  string `json:"key"`
	Meta bool   `json:"metaKey"`
	Ctrl bool   `json:"ctrlKey"`
}

// CommandModifier reports whether meta or ctrl is held. The two are equivalent.
func (e KeyEvent) CommandModifier() bool { return e.Meta || e.Ctrl }

// Signal asks the rendering layer to move input focus.
type Signal int

const (
	SignalNone Signal = iota
	SignalRequestFocus
	SignalReleaseFocus
)

func (s Signal) String() string {
	switch s {
	case SignalRequestFocus:
		return "request_focus"
	case SignalReleaseFocus:
		return "release_focus"
	default:
		return ""
	}
}

// MarshalText renders the signal as its name so JSON clients see a string.
func (s Signal) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// KeyResult tells the rendering layer what to do with the event.
type KeyResult struct {
	Signal Signal `json:"signal"`
	// PreventDefault is set when the console consumed the key combination and
	// the host's default action must be suppressed.
	PreventDefault bool `json:"preventDefault"`
}

// HandleKey routes a key event. Rules are evaluated in order:
//
//  1. Escape closes the view and releases focus, whatever modifiers are held.
//  2. With a command modifier, K requests focus; any other key activates the
//     command bound to it, if one exists.
//  3. Anything else is left to the input field.
func (c *Console) HandleKey(ev KeyEvent) KeyResult {
	if ev.Key == escapeKey {
		c.Close()
		c.state.InputFocused = false
		return KeyResult{Signal: SignalReleaseFocus}
	}
	if !ev.CommandModifier() {
		return KeyResult{}
	}
	key := strings.ToUpper(ev.Key)
	if key == focusKey {
		return KeyResult{Signal: SignalRequestFocus, PreventDefault: true}
	}
	cmd, ok := c.catalog.ByShortcut(key)
	if !ok {
		return KeyResult{}
	}
	c.Activate(cmd.ID)
	return KeyResult{PreventDefault: true}
}
