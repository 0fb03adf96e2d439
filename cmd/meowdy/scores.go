package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PekerRian/meowdy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores and leaderboard statistics.

Examples:
  meowdy scores
  meowdy scores --limit 25
  meowdy scores --player alice   # every score of one player
  meowdy scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultTopLimit, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal(logger, "could not open scores database", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fatal(logger, "could not clear scores", err)
		}
		fmt.Println("All scores cleared.")
		return
	}

	if flagPlayer != "" {
		printPlayerScores(store, flagPlayer)
		return
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		fatal(logger, "could not retrieve scores", err)
	}

	fmt.Println("High Scores - Meowdy Flap")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'meowdy play --player <name>' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-8d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("could not load stats", "error", err)
		return
	}
	fmt.Println()
	fmt.Printf("Games: %d  Players: %d  Best: %d  Average: %.1f\n",
		stats.GamesCount, stats.PlayersCount, stats.HighScore, stats.AvgScore)
}

func printPlayerScores(store *storage.Store, player string) {
	logger := newLogger(os.Stderr)

	scores, err := store.PlayerScores(player)
	if err != nil {
		fatal(logger, "could not retrieve scores", err)
	}
	if len(scores) == 0 {
		fmt.Printf("No scores recorded for %s.\n", player)
		return
	}

	fmt.Printf("Scores - %s\n", player)
	fmt.Println()
	for _, entry := range scores {
		fmt.Printf("  %-8d  %s\n", entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, ok, err := store.PlayerBest(player); err == nil && ok {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
