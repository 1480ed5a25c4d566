package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/bot"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagGames     int
	flagMaxPieces int
	flagSave      bool
	flagVerbose   bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the bot play headless games",
	Long: `Run games with the placement bot and print a summary of each.

The bot scores every landing spot of the current piece by clearable
lines, holes, bumpiness and stack height and takes the best one.
Results are recorded under the demo mode with --save.

Examples:
  blocks autoplay
  blocks autoplay --games 20 --max-pieces 1000 --seed 7
  blocks autoplay --verbose --max-pieces 30`,
	Run: runAutoplay,
}

func init() {
	autoplayCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	autoplayCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	autoplayCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to play")
	autoplayCmd.Flags().IntVar(&flagMaxPieces, "max-pieces", 500, "Stop a game after this many pieces (0 = until top out)")
	autoplayCmd.Flags().BoolVar(&flagSave, "save", false, "Record results in the scores database")
	autoplayCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print the board after every piece")
}

func runAutoplay(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "autoplay",
	})

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	engine := cfg.EngineConfig()

	var store *storage.Store
	if flagSave {
		store = openStore()
		defer func() {
			if store != nil {
				store.Close()
			}
		}()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("starting", "games", flagGames, "seed", seed, "max_pieces", flagMaxPieces)

	var out io.Writer = io.Discard
	if flagVerbose || flagGames == 1 {
		out = os.Stdout
	}

	best, total := 0, 0
	for i := range flagGames {
		started := time.Now()
		res, err := bot.AutoPlay(out, rng, bot.AutoPlayConfig{
			Engine:    engine,
			MaxPieces: flagMaxPieces,
			Verbose:   flagVerbose,
		})
		if err != nil {
			logger.Error("game failed", "game", i+1, "error", err)
			continue
		}

		logger.Info("game finished",
			"game", i+1,
			"score", res.Score,
			"lines", res.Stats.Lines,
			"pieces", res.Stats.Pieces,
			"tetrises", res.Stats.Tetrises,
			"topped_out", res.GameOver,
		)
		best = max(best, res.Score)
		total += res.Score

		if store != nil {
			r := storage.Result{
				SessionID:     uuid.NewString(),
				Mode:          string(blocks.ModeDemo),
				Player:        "bot",
				Score:         res.Score,
				Lines:         res.Stats.Lines,
				Level:         engine.Level,
				Pieces:        res.Stats.Pieces,
				Tetrises:      res.Stats.Tetrises,
				TSpins:        res.Stats.TSpinSingles + res.Stats.TSpinDoubles + res.Stats.TSpinTriples,
				PerfectClears: res.Stats.PerfectClears,
				MaxCombo:      res.Stats.MaxCombo,
				Duration:      time.Since(started),
			}
			if err := store.Submit(context.Background(), r); err != nil {
				logger.Warn("could not save result", "error", err)
			}
		}
	}

	if flagGames > 1 {
		logger.Info("summary", "games", flagGames, "best", best, "mean", total/flagGames)
	}
}
