package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "blocks.yaml"

// LoadBlocks loads the configuration and validates it.
// Search order: customPath -> ~/.blocks/configs/blocks.yaml ->
// ./configs/blocks.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or broken.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	cfg, err := loadBlocks(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadBlocks(customPath string) (BlocksConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBlocks(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseBlocks(defaultBlocksYAML); err == nil {
		return cfg, nil
	}
	return DefaultBlocksConfig(), nil
}

// parseBlocks decodes YAML over the built-in defaults, so a partial file
// only overrides the keys it sets.
func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Difficulty.Preset != "" && cfg.Difficulty.Preset != DifficultyFixed {
		ApplyBlocksPreset(&cfg, cfg.Difficulty.Preset)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(fileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns ~/.blocks/configs/<name>, or "" without a home directory.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocks", "configs", name)
}

// UserPath is where `blocks config init` writes and LoadBlocks looks
// first after a custom path.
func UserPath() string {
	return userConfigPath(fileName)
}

// Save writes cfg as YAML, creating parent directories.
func Save(cfg BlocksConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: cannot encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}
