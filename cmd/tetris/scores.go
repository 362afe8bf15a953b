package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresRunID string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the best finished runs from the run history database,
followed by the current high score.

Examples:
  tetris scores
  tetris scores --limit 25
  tetris scores --id 0b9c1f2e-...
  tetris scores --clear
  tetris scores --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the high score is kept)")
	scoresCmd.Flags().StringVar(&flagScoresRunID, "id", "", "Show a single run by id")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}

	switch {
	case flagScoresClear:
		err := store.ClearRuns()
		store.Close()
		if err != nil {
			fail("clearing runs: %v", err)
		}
		fmt.Printf("Cleared run history in %s\n", store.Path())
		return

	case flagScoresRunID != "":
		run, err := store.RunByID(flagScoresRunID)
		store.Close()
		if err != nil {
			fail("retrieving run: %v", err)
		}
		if run == nil {
			fail("no run %q in %s", flagScoresRunID, store.Path())
		}
		printRun(os.Stdout, *run)
		return
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}
	defer store.Close()

	high := 0
	if record, err := storage.OpenHighScore(flagHighScorePath); err == nil {
		high, _ = record.Load()
		record.Close()
	}

	printScores(os.Stdout, runs, high)
}

// printScores writes the run table followed by the high score.
func printScores(w io.Writer, runs []storage.Run, high int) {
	fmt.Fprintln(w, "High Scores - Tetris")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'tetris play' to set the first high score!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "Rank", "Score", "Lines", "Level", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-5d  %-12s  %s\n",
			i+1, r.Score, r.Lines, r.Level, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", max(high, runs[0].Score))
}

// printRun writes every stored field of one run.
func printRun(w io.Writer, r storage.Run) {
	fmt.Fprintf(w, "Run %s\n", r.ID)
	fmt.Fprintf(w, "  Player  : %s\n", r.Player)
	fmt.Fprintf(w, "  Score   : %d\n", r.Score)
	fmt.Fprintf(w, "  Lines   : %d\n", r.Lines)
	fmt.Fprintf(w, "  Level   : %d\n", r.Level)
	fmt.Fprintf(w, "  Seed    : %d\n", r.Seed)
	fmt.Fprintf(w, "  Duration: %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(w, "  Played  : %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
}
