// Package config loads the YAML configuration for blocks and maps it onto
// the rules engine.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// BlocksConfig is the full configuration file.
type BlocksConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	HUD        HUDConfig        `yaml:"hud"`
	Modes      ModesConfig      `yaml:"modes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the playfield size and the spawn anchor.
type BoardConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	SpawnX       int `yaml:"spawn_x"`
	SpawnFromTop int `yaml:"spawn_from_top"` // spawn row is Height/2 - SpawnFromTop
}

// TimingConfig holds the engine timers in milliseconds.
type TimingConfig struct {
	StepMs        int `yaml:"step_ms"`
	MoveDelayMs   int `yaml:"move_delay_ms"`
	LockDelayMs   int `yaml:"lock_delay_ms"`
	MaxLockResets int `yaml:"max_lock_resets"`
}

// ScoringConfig holds the level multiplier.
type ScoringConfig struct {
	Level int `yaml:"level"`
}

// HUDConfig controls the side panels.
type HUDConfig struct {
	NextCount int  `yaml:"next_count"`
	Ghost     bool `yaml:"ghost"`
}

// ModesConfig holds per-mode settings.
type ModesConfig struct {
	SprintLines   int `yaml:"sprint_lines"`
	DemoMoveTicks int `yaml:"demo_move_ticks"`
}

// DifficultyConfig names the preset applied on load.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// EngineConfig converts the file layout into the engine's Config.
func (c BlocksConfig) EngineConfig() core.Config {
	return core.Config{
		Width:         c.Board.Width,
		Height:        c.Board.Height,
		Spawn:         core.C(c.Board.SpawnX, c.Board.Height/2-c.Board.SpawnFromTop),
		Level:         c.Scoring.Level,
		StepInterval:  time.Duration(c.Timing.StepMs) * time.Millisecond,
		MoveDelay:     time.Duration(c.Timing.MoveDelayMs) * time.Millisecond,
		LockDelay:     time.Duration(c.Timing.LockDelayMs) * time.Millisecond,
		MaxLockResets: c.Timing.MaxLockResets,
	}
}

// Validate checks the engine settings and the host-side ones.
func (c BlocksConfig) Validate() error {
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.HUD.NextCount < 0 || c.HUD.NextCount > 6 {
		return fmt.Errorf("config: hud.next_count must be between 0 and 6, got %d", c.HUD.NextCount)
	}
	if c.Modes.SprintLines <= 0 {
		return fmt.Errorf("config: modes.sprint_lines must be positive, got %d", c.Modes.SprintLines)
	}
	if c.Modes.DemoMoveTicks <= 0 {
		return fmt.Errorf("config: modes.demo_move_ticks must be positive, got %d", c.Modes.DemoMoveTicks)
	}
	if !c.Difficulty.Preset.Valid() {
		return fmt.Errorf("config: unknown difficulty preset %q", c.Difficulty.Preset)
	}
	return nil
}
