package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/PekerRian/meowdy/internal/audio"
	"github.com/PekerRian/meowdy/internal/games/flappy"
	"github.com/PekerRian/meowdy/internal/platform/tui"
)

var (
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing immediately.

Controls:
  Space/Up/W - Start, flap, and play again after game over
  R          - Reset after game over
  Esc/B      - Leave
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Wider gaps, slower pipes
  normal - Default settings
  hard   - Narrower gaps, faster and more frequent pipes

Examples:
  meowdy play
  meowdy play --difficulty hard --lives 3
  meowdy play --inventory ./wallet.yaml
  meowdy play --config ./my-flappy.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0-1]")
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, logFile := tuiLogger()
	if logFile != nil {
		defer logFile.Close()
	}

	opts, cleanup, err := gameOptions(logger)
	if err != nil {
		fatal(newLogger(os.Stderr), "invalid game config", err)
	}
	defer cleanup()

	if err := tui.Run(opts); err != nil {
		fatal(newLogger(os.Stderr), "error running game", err)
	}
}

// gameOptions assembles everything a game screen needs. cleanup releases
// the leaderboard and audio device.
func gameOptions(logger *log.Logger) (tui.GameOptions, func(), error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return tui.GameOptions{}, nil, err
	}

	lives, player := resolvePlayer(logger)
	store, closeStore := openStore(logger)
	notifier, closeAudio := openAudio(logger)

	opts := tui.GameOptions{
		Config:    cfg,
		Runtime:   runtimeConfig(lives, player),
		Store:     store,
		Notifier:  notifier,
		Logger:    logger,
		Inventory: flagInventory,
		Keyword:   flagKeyword,
	}
	cleanup := func() {
		closeAudio()
		closeStore()
	}
	return opts, cleanup, nil
}

// openAudio starts the sound player unless muted. Without an audio device
// the game runs silently.
func openAudio(logger *log.Logger) (flappy.Notifier, func()) {
	if flagMute {
		return nil, func() {}
	}
	player := audio.NewPlayer(flagVolume)
	if err := player.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
		return nil, func() {}
	}
	return player, player.Close
}
