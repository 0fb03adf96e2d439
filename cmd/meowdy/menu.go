package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/PekerRian/meowdy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  meowdy menu
  meowdy menu --fps 30
  meowdy menu --db ./scores.db --player alice`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, logFile := tuiLogger()
	if logFile != nil {
		defer logFile.Close()
	}

	opts, cleanup, err := gameOptions(logger)
	if err != nil {
		fatal(newLogger(os.Stderr), "invalid game config", err)
	}
	defer cleanup()

	store, _ := opts.Store.(tui.ScoreStore)
	if err := tui.RunApp(store, opts); err != nil {
		fatal(newLogger(os.Stderr), "error running menu", err)
	}
}
