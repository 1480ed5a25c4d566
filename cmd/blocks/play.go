package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right, A/D  - Move
  Down, S          - Soft drop
  Space            - Hard drop
  Up, X, W         - Rotate clockwise
  Z                - Rotate counter-clockwise
  P                - Pause
  R                - Restart
  Enter            - Next drill (after finishing one)
  Esc/B            - Leave
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow gravity, long lock delay
  normal - One row per second
  hard   - Fast gravity, level 3 scoring
  fixed  - Use the config file's values as they are

Examples:
  blocks play marathon
  blocks play sprint --difficulty hard
  blocks play drill --drill 02-tspin-double
  blocks play marathon --config ./my-blocks.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: $USER)")
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available modes.")
		os.Exit(1)
	}
	if err := applyGameSettings(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	_, runErr := tui.Run(game, leaderboard(store), runtimeConfig(), playerName())
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if store != nil {
		if best, err := store.HighScore(modeID); err == nil && best > 0 {
			fmt.Printf("%s best: %d\n", game.Title(), best)
		}
		store.Close()
	}
}
