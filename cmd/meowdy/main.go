// meowdy is a terminal side-scroller: flap the cat through the gaps, collect
// lives from the tokens you hold and climb the leaderboard.
//
// Usage:
//
//	meowdy play              - Play a game directly
//	meowdy menu              - Title menu with play and high scores
//	meowdy scores            - Print the leaderboard
//	meowdy serve             - Start SSH server for remote play
//	meowdy lives             - Show the life count from an inventory file
//	meowdy sim               - Run a headless simulation
//	meowdy config            - Print the game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.meowdy/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - easy, normal or hard
//	--lives <n>           - Life count when no inventory is given
//	--inventory <path>    - Inventory YAML to derive lives from
//	--player <name>       - Leaderboard name
//	--verbose             - Debug logging
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
	"github.com/PekerRian/meowdy/internal/inventory"
	"github.com/PekerRian/meowdy/internal/platform/tui"
	"github.com/PekerRian/meowdy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLives      int
	flagInventory  string
	flagKeyword    string
	flagPlayer     string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meowdy",
	Short: "Meowdy Flap - a side-scroller in your terminal",
	Long: `Meowdy Flap is a terminal side-scroller. Tap to flap the cat through
the gaps between pipes; every pipe you pass scores a point. Each Meowdy
token in your inventory is one extra life.

Available commands:
  play     - Play directly
  menu     - Title menu with play and high scores
  scores   - Print the leaderboard
  serve    - Start SSH server for remote play
  lives    - Show the life count from an inventory file
  sim      - Run a headless simulation
  config   - Print the game configuration

Examples:
  meowdy play --player 0xcafe
  meowdy play --inventory ./wallet.yaml --difficulty hard
  meowdy menu
  meowdy serve --ssh :2222
  meowdy sim --seed 7 --ticks 3600 --jump-every 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.meowdy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().IntVar(&flagLives, "lives", 1, "Life count when no inventory is given")
	rootCmd.PersistentFlags().StringVar(&flagInventory, "inventory", "", "Inventory YAML to derive lives from")
	rootCmd.PersistentFlags().StringVar(&flagKeyword, "keyword", inventory.DefaultKeyword, "Token name keyword counted as lives")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Leaderboard name (defaults to the inventory owner)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(livesCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger creates the CLI logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "meowdy",
		Level:           level,
	})
}

// tuiLogger logs to ~/.meowdy/meowdy.log so output does not tear the
// alternate screen. The returned file is nil when logging is discarded.
func tuiLogger() (*log.Logger, *os.File) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), nil
	}
	dir := filepath.Join(home, ".meowdy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "meowdy.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), nil
	}
	return newLogger(f), f
}

// fatal logs err and exits non-zero.
func fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// loadGameConfig loads the engine config and applies the difficulty preset.
func loadGameConfig() (config.FlappyConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// resolvePlayer returns the life count and leaderboard name. An inventory
// file overrides --lives; its owner is the default player name.
func resolvePlayer(logger *log.Logger) (lives int, player string) {
	lives, player = flagLives, flagPlayer
	if flagInventory == "" {
		return lives, player
	}

	inv, err := inventory.Load(flagInventory)
	if err != nil {
		logger.Warn("could not read inventory, using --lives", "error", err)
		return lives, player
	}
	lives = inv.Count(flagKeyword)
	if player == "" {
		player = inv.Owner
	}
	logger.Debug("inventory loaded", "path", flagInventory, "tokens", lives, "owner", inv.Owner)
	return lives, player
}

// runtimeConfig builds the platform config from the terminal and flags.
func runtimeConfig(lives int, player string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Lives = lives
	cfg.Player = player
	return cfg
}

// openStore opens the leaderboard. A failure is logged and play continues
// without it; the nil store is returned as a nil interface.
func openStore(logger *log.Logger) (tui.ScoreStore, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}
