package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PekerRian/meowdy/internal/games/flappy"
	"github.com/PekerRian/meowdy/internal/inventory"
)

var livesCmd = &cobra.Command{
	Use:   "lives [inventory]",
	Short: "Show the life count from an inventory file",
	Long: `Read an inventory YAML file and print how many lives it grants.

Every token whose name contains the keyword (case-insensitive) counts once.
Holding no tokens still gives one life.

Inventory format:
  owner: alice
  tokens:
    - name: Meowdy Cat #12
      amount: 1

Examples:
  meowdy lives ./wallet.yaml
  meowdy lives --inventory ./wallet.yaml --keyword meowdy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLives,
}

func runLives(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	path := flagInventory
	if len(args) == 1 {
		path = args[0]
	}

	inv, err := inventory.Load(path)
	if errors.Is(err, inventory.ErrNoPath) {
		fatal(logger, "no inventory given; pass a path or --inventory", err)
	}
	if err != nil {
		fatal(logger, "could not read inventory", err)
	}

	count := inv.Count(flagKeyword)
	if inv.Owner != "" {
		fmt.Printf("Owner:  %s\n", inv.Owner)
	}
	fmt.Printf("Tokens: %d matching %q (of %d)\n", count, flagKeyword, len(inv.Tokens))
	fmt.Printf("Lives:  %d\n", flappy.LivesFromCount(count))
}
