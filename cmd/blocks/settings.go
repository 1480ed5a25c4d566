package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Game settings shared by play, menu and serve.
var (
	flagConfig     string
	flagDifficulty string
	flagDrill      string
	flagDrillDir   string
	flagPlayer     string
)

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagDrill, "drill", "", "Drill to start the drill mode with")
	cmd.Flags().StringVar(&flagDrillDir, "drill-dir", "", "Directory of drill YAML files (default: bundled drills)")
}

// applyGameSettings loads the config, applies the difficulty preset and
// hands both to the blocks package.
func applyGameSettings() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	blocks.SetConfig(cfg)
	blocks.SetDrill(flagDrill)
	blocks.SetDrillDir(flagDrillDir)
	return nil
}

func loadConfig() (config.BlocksConfig, error) {
	preset := config.DifficultyPreset(flagDifficulty)
	if !preset.Valid() {
		return config.BlocksConfig{}, fmt.Errorf("unknown difficulty %q (want one of %v)", flagDifficulty, config.Presets())
	}

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset == "" {
		preset = cfg.Difficulty.Preset
	}
	config.ApplyBlocksPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the local database. A failure is reported and play goes
// on without recording scores.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// leaderboard converts a possibly nil store without producing a non-nil
// interface around a nil pointer.
func leaderboard(store *storage.Store) storage.Leaderboard {
	if store == nil {
		return nil
	}
	return store
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
