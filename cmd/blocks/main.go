// blocks is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blocks list              - List game modes
//	blocks play <mode>       - Play a mode
//	blocks menu              - Pick modes interactively
//	blocks scores [mode]     - Show recorded results
//	blocks serve             - Serve the game over SSH and the leaderboard over HTTP
//	blocks autoplay          - Let the bot play headless games
//	blocks drills            - List the bundled drills
//	blocks config            - Show or write the configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible games
//	--db <path>     - Set database path (default: ~/.blocks/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the game modes.
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle in your terminal",
	Long: `Blocks is a falling-block puzzle for the terminal: seven-bag pieces,
wall kicks, T-spins, combos and back-to-back bonuses.

Available commands:
  list      - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  scores    - View high scores
  serve     - SSH server and HTTP leaderboard
  autoplay  - Headless bot games
  drills    - List bundled drills
  config    - Show or write the configuration

Examples:
  blocks list
  blocks play marathon
  blocks play sprint --difficulty hard
  blocks menu
  blocks serve --ssh :2222 --http :8080
  blocks scores sprint`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(drillsCmd)
	rootCmd.AddCommand(configCmd)
}
