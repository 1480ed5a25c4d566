package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultBlocksConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultBlocksConfig %+v", cfg, DefaultBlocksConfig())
	}
}

func TestEngineConfigMatchesEngineDefaults(t *testing.T) {
	got := DefaultBlocksConfig().EngineConfig()
	if got != core.DefaultConfig() {
		t.Errorf("EngineConfig() = %+v, expected %+v", got, core.DefaultConfig())
	}
}

func TestLoadBlocksCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	data := []byte("board:\n  width: 12\ntiming:\n  step_ms: 800\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks failed: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 20 {
		t.Errorf("partial file should override only its keys, got board %+v", cfg.Board)
	}
	if got := cfg.EngineConfig().StepInterval; got != 800*time.Millisecond {
		t.Errorf("step interval = %v", got)
	}
}

func TestLoadBlocksMissingCustomPath(t *testing.T) {
	if _, err := LoadBlocks(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestLoadBlocksRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  level: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadBlocks(path)
	if !core.IsConfigError(err, core.CodeBadLevel) {
		t.Errorf("expected a wrapped BAD_LEVEL error, got %v", err)
	}
}

func TestPresetInFileIsApplied(t *testing.T) {
	cfg, err := parseBlocks([]byte("difficulty:\n  preset: hard\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scoring.Level != 3 || cfg.Timing.StepMs != 400 {
		t.Errorf("hard preset not applied: %+v", cfg)
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		level  int
		stepMs int
	}{
		{DifficultyEasy, 1, 1500},
		{DifficultyNormal, 1, 1000},
		{DifficultyHard, 3, 400},
	}
	for _, tt := range tests {
		cfg := DefaultBlocksConfig()
		cfg.Timing.StepMs = 123
		ApplyBlocksPreset(&cfg, tt.preset)
		if cfg.Scoring.Level != tt.level || cfg.Timing.StepMs != tt.stepMs {
			t.Errorf("%s: level %d step %d", tt.preset, cfg.Scoring.Level, cfg.Timing.StepMs)
		}
	}

	cfg := DefaultBlocksConfig()
	cfg.Timing.StepMs = 123
	ApplyBlocksPreset(&cfg, DifficultyFixed)
	if cfg.Timing.StepMs != 123 {
		t.Error("fixed preset should leave timing alone")
	}
}

func TestValidateHostSettings(t *testing.T) {
	cfg := DefaultBlocksConfig()
	cfg.Modes.SprintLines = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for zero sprint lines")
	}

	cfg = DefaultBlocksConfig()
	cfg.Difficulty.Preset = "insane"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blocks.yaml")
	want := DefaultBlocksConfig()
	want.Board.Width = 8

	if err := Save(want, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}
