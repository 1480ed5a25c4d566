package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration. It matches
// defaults/blocks.yaml and backs it up if the embedded file fails to parse.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Width:        10,
			Height:       20,
			SpawnX:       0,
			SpawnFromTop: 2,
		},
		Timing: TimingConfig{
			StepMs:        1000,
			MoveDelayMs:   100,
			LockDelayMs:   500,
			MaxLockResets: 15,
		},
		Scoring: ScoringConfig{Level: 1},
		HUD: HUDConfig{
			NextCount: 3,
			Ghost:     true,
		},
		Modes: ModesConfig{
			SprintLines:   40,
			DemoMoveTicks: 4,
		},
		Difficulty: DifficultyConfig{Preset: DifficultyFixed},
	}
}
