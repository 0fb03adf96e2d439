package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PekerRian/meowdy/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game configuration",
	Long: `Print the effective game configuration as YAML, after the config file
search and the difficulty preset have been applied.

Config search order:
  --config <path>
  ~/.meowdy/configs/flappy.yaml
  ./configs/flappy.yaml
  built-in defaults

Examples:
  meowdy config
  meowdy config --difficulty hard
  meowdy config --defaults > ~/.meowdy/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	logger := newLogger(os.Stderr)
	cfg, err := loadGameConfig()
	if err != nil {
		fatal(logger, "invalid game config", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fatal(logger, "could not encode config", err)
	}
	fmt.Print(string(out))
}
