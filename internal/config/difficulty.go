package config

// DifficultyPreset is a named starting point for level and gravity.
// Presets only set the level scalar and the step interval; nothing ramps
// during a session.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep the file's values untouched
)

// Presets lists the known presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Valid reports whether p is a known preset. Empty counts as fixed.
func (p DifficultyPreset) Valid() bool {
	if p == "" {
		return true
	}
	for _, known := range Presets() {
		if p == known {
			return true
		}
	}
	return false
}

// ApplyBlocksPreset adjusts level and gravity for a preset.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Scoring.Level = 1
		cfg.Timing.StepMs = 1500
		cfg.Timing.LockDelayMs = 700
	case DifficultyNormal:
		cfg.Scoring.Level = 1
		cfg.Timing.StepMs = 1000
		cfg.Timing.LockDelayMs = 500
	case DifficultyHard:
		cfg.Scoring.Level = 3
		cfg.Timing.StepMs = 400
		cfg.Timing.LockDelayMs = 400
	}
}
