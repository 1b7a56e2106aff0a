package console

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// View identifies the panel a command opens. ViewNone means no panel is open.
type View string

const (
	ViewNone       View = ""
	ViewAbout      View = "about"
	ViewProjects   View = "projects"
	ViewExperience View = "experience"
	ViewTech       View = "tech"
	ViewContact    View = "contact"
)

var (
	ErrDuplicateID       = errors.New("duplicate command id")
	ErrDuplicateShortcut = errors.New("duplicate shortcut key")
	ErrInvalidShortcut   = errors.New("shortcut key must be a single uppercase character")
	ErrEmptyID           = errors.New("command id is empty")
	ErrReservedShortcut  = errors.New("shortcut key is reserved for focusing the query")
)

// Command is one entry of the palette.
type Command struct {
	ID          View
	Label       string
	Description string
	ShortcutKey string
}

// Catalog is the fixed, ordered list of commands. It is immutable once built.
type Catalog struct {
	commands   []Command
	byID       map[View]int
	byShortcut map[string]int
}

// NewCatalog validates cmds and indexes them by id and shortcut key.
func NewCatalog(cmds ...Command) (*Catalog, error) {
	c := &Catalog{
		commands:   make([]Command, 0, len(cmds)),
		byID:       make(map[View]int, len(cmds)),
		byShortcut: make(map[string]int, len(cmds)),
	}
	for _, cmd := range cmds {
		if cmd.ID == ViewNone {
			return nil, fmt.Errorf("command %q: %w", cmd.Label, ErrEmptyID)
		}
		if !validShortcut(cmd.ShortcutKey) {
			return nil, fmt.Errorf("command %q shortcut %q: %w", cmd.ID, cmd.ShortcutKey, ErrInvalidShortcut)
		}
		if cmd.ShortcutKey == focusKey {
			return nil, fmt.Errorf("command %q: %w", cmd.ID, ErrReservedShortcut)
		}
		if _, ok := c.byID[cmd.ID]; ok {
			return nil, fmt.Errorf("command %q: %w", cmd.ID, ErrDuplicateID)
		}
		if prev, ok := c.byShortcut[cmd.ShortcutKey]; ok {
			return nil, fmt.Errorf("command %q shortcut %q already bound to %q: %w",
				cmd.ID, cmd.ShortcutKey, c.commands[prev].ID, ErrDuplicateShortcut)
		}
		c.byID[cmd.ID] = len(c.commands)
		c.byShortcut[cmd.ShortcutKey] = len(c.commands)
		c.commands = append(c.commands, cmd)
	}
	return c, nil
}

// DefaultCatalog returns the portfolio's five commands.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Command{ID: ViewAbout, Label: "About Me", Description: "My background & bio", ShortcutKey: "A"},
		Command{ID: ViewProjects, Label: "Projects", Description: "Recent work & code", ShortcutKey: "P"},
		Command{ID: ViewExperience, Label: "Experience", Description: "Career timeline", ShortcutKey: "E"},
		Command{ID: ViewTech, Label: "Tech Stack", Description: "Tools & frameworks", ShortcutKey: "S"},
		Command{ID: ViewContact, Label: "Contact", Description: "Email & socials", ShortcutKey: "M"},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Commands returns a copy of the catalog in order.
func (c *Catalog) Commands() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}

// Len reports the number of commands.
func (c *Catalog) Len() int { return len(c.commands) }

// Lookup finds a command by id.
func (c *Catalog) Lookup(id View) (Command, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Command{}, false
	}
	return c.commands[i], true
}

// ByShortcut finds a command by its shortcut key. key is case-normalized.
func (c *Catalog) ByShortcut(key string) (Command, bool) {
	i, ok := c.byShortcut[strings.ToUpper(key)]
	if !ok {
		return Command{}, false
	}
	return c.commands[i], true
}

func validShortcut(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if unicode.IsLetter(r) {
		return unicode.IsUpper(r)
	}
	return unicode.IsPrint(r) && !unicode.IsSpace(r)
}
