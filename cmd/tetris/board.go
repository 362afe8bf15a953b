package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse run history",
	Long: `Open an interactive leaderboard of recorded runs.

Controls:
  Up/Down   - Scroll
  Tab       - Switch between top and recent runs
  R         - Refresh
  Q/Esc     - Quit`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	runErr := tui.RunScoreboard(store, width, height)
	store.Close()
	if runErr != nil {
		fail("running scoreboard: %v", runErr)
	}
}
