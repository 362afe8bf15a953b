package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScreenshotDir string
	flagPlayer        string
	flagLogPath       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  Left/Right, A/D, H/L   - Move
  Up, W, K               - Rotate
  Down, S, J             - Soft drop
  Space                  - Hard drop
  Enter                  - Start
  P/Esc                  - Pause
  R                      - Restart (after game over)
  Ctrl+S                 - Save a screenshot (.txt and .png)
  Ctrl+Y                 - Copy the screen to the clipboard
  Q/Ctrl+C               - Quit

Difficulty options:
  easy   - 900ms base fall interval
  normal - 700ms base fall interval
  hard   - 500ms base fall interval

Examples:
  tetris play
  tetris play --difficulty easy
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml
  tetris play --highscore ~/.tetris/scores.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScreenshotDir, "screenshots", tui.DefaultScreenshotDir, "Directory for ctrl+s screenshots")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with finished runs (default: $USER)")
	playCmd.Flags().StringVar(&flagLogPath, "log", DefaultLogPath, "Log file used while the game is running")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fail("%v", err)
	}
}

// play runs one local session. Storage is closed before returning.
func play() error {
	rules, err := loadRules(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger := newLogger("tetris", false)

	// Persistence problems downgrade to warnings; the game still works
	var ledger *tetris.Ledger
	record, err := storage.OpenHighScore(flagHighScorePath)
	if err != nil {
		logger.Warn("could not open high score record", "error", err)
		ledger = tetris.NewLedger(nil)
	} else {
		defer record.Close()
		ledger = tetris.NewLedger(record)
	}

	var runs tui.RunRecorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
	} else {
		defer store.Close()
		runs = store
	}

	exporter, err := tui.NewExporter(flagScreenshotDir)
	if err != nil {
		logger.Warn("screenshots disabled", "error", err)
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	// From here on the TUI owns the terminal; stderr is off limits
	sessionLogger := log.New(io.Discard)
	if fileLogger, logFile, err := newFileLogger(flagLogPath, "tetris"); err != nil {
		logger.Warn("logging disabled while playing", "error", err)
	} else {
		defer logFile.Close()
		sessionLogger = fileLogger
	}

	game := tetris.New(
		tetris.WithRules(rules),
		tetris.WithLedger(ledger),
		tetris.WithLogger(sessionLogger),
	)

	if err := tui.Run(game, tui.ModelOptions{
		Config:   cfg,
		Runs:     runs,
		Exporter: exporter,
		Logger:   sessionLogger,
		Player:   player,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
