// Command spotlight-tui browses the portfolio from a terminal.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/spotlight/internal/config"
	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/content"
	"github.com/Zachkp/spotlight/internal/logging"
	"github.com/Zachkp/spotlight/internal/panels"
	"github.com/Zachkp/spotlight/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "spotlight-tui:", err)
		os.Exit(1)
	}

	logging.Init("spotlight-tui", logging.FileOnly())
	defer logging.Sync()

	con := console.New(console.DefaultCatalog(),
		console.WithInitialFocus(cfg.Console.InitialFocus),
		console.WithTransitionHook(func(t console.Transition) {
			logging.L().Debugw("view changed", "from", t.From, "to", t.To)
		}),
	)
	m := tui.New(con, panels.NewRegistry(content.Default()))

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logging.L().Errorw("tui exited", "error", err)
		fmt.Fprintln(os.Stderr, "spotlight-tui:", err)
		os.Exit(1)
	}
}
