// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game in this terminal
//	tetris scores            - Print the best recorded runs
//	tetris board             - Browse run history interactively
//	tetris serve             - Start SSH server for remote play
//	tetris sim               - Run a headless seeded simulation
//	tetris pieces            - Print the piece catalog
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--highscore <path>    - High score file (default: ~/.tetris/highscore)
//	--db <path>           - Run history database (default: ~/.tetris/scores.db)
//	--config <path>       - Custom rules YAML
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagHighScorePath string
	flagDBPath        string
	flagConfig        string
	flagDifficulty    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Terminal Tetris - stack falling blocks in your terminal",
	Long: `Terminal Tetris is a falling-block puzzle game that runs in your terminal
or over SSH.

Available commands:
  play     - Play a game
  scores   - Print the best recorded runs
  board    - Browse run history interactively
  serve    - Start SSH server for remote play
  sim      - Run a headless seeded simulation
  pieces   - Print the piece catalog

Examples:
  tetris play
  tetris play --difficulty hard
  tetris scores
  tetris serve --ssh :2222
  tetris sim --seed 7 --steps 5000`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagHighScorePath, "highscore", storage.DefaultHighScorePath, "High score file (.db/.sqlite keeps it in SQLite)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(piecesCmd)
}

// loadRules resolves the timing rules from --config and --difficulty.
func loadRules(configPath, difficulty string) (tetris.Rules, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return tetris.Rules{}, err
	}
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		return tetris.Rules{}, err
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return tetris.RulesFromConfig(cfg), nil
}

// newLogger returns the stderr logger shared by the commands.
func newLogger(prefix string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// DefaultLogPath receives log output while the TUI owns the terminal.
const DefaultLogPath = "~/.tetris/tetris.log"

// newFileLogger returns a logger appending to path. Log lines written to
// stderr would land inside the alt screen, so a running TUI logs here.
func newFileLogger(path, prefix string) (*log.Logger, io.Closer, error) {
	path, err := storage.ExpandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, f, nil
}

// fail prints the error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
