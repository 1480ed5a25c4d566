package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a mode and Tab for the
scoreboard. Leaving a game with Esc returns to the menu.

Examples:
  blocks menu
  blocks menu --fps 30
  blocks menu --difficulty easy --db ./scores.db`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: $USER)")
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameSettings(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()
	board := leaderboard(store)
	cfg := runtimeConfig()

	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		var again bool
		switch {
		case res.Quit, res.GameID == "" && !res.WantsScoreboard:
			return
		case res.WantsScoreboard:
			again, err = tui.RunScoreboard(board, cfg.ScreenW, cfg.ScreenH)
		default:
			again, err = playFromMenu(res.GameID, board, cfg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !again {
			return
		}
	}
}

// playFromMenu runs one game and reports whether the player left it for
// the menu.
func playFromMenu(modeID string, board storage.Leaderboard, cfg core.RuntimeConfig) (bool, error) {
	game, err := registry.Create(modeID)
	if err != nil {
		return true, err
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return tui.Run(game, board, cfg, playerName())
}
