package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadGame loads the dotfill configuration.
// Search order: customPath -> ~/.dotfill/config.yaml -> ./configs/dotfill.yaml -> embedded default.
// Fields left out of a file are filled from DefaultGameConfig.
func LoadGame(customPath string) (GameConfig, error) {
	var cfg GameConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return Normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return Normalize(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dotfill.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return Normalize(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil
	}
	return Normalize(cfg), nil
}

// Normalize fills zero or out-of-range fields from DefaultGameConfig.
func Normalize(cfg GameConfig) GameConfig {
	def := DefaultGameConfig()

	if cfg.Drag.Threshold <= 0 {
		cfg.Drag.Threshold = def.Drag.Threshold
	}
	if cfg.Drag.HorizontalScale <= 0 {
		cfg.Drag.HorizontalScale = def.Drag.HorizontalScale
	}

	a := &cfg.Animation
	if a.SweepStepTicks <= 0 {
		a.SweepStepTicks = def.Animation.SweepStepTicks
	}
	if a.SweepGrowth < 1 {
		a.SweepGrowth = def.Animation.SweepGrowth
	}
	if a.RevealMinTicks <= 0 {
		a.RevealMinTicks = def.Animation.RevealMinTicks
	}
	if a.RevealMaxTicks < a.RevealMinTicks {
		a.RevealMaxTicks = a.RevealMinTicks
	}
	if a.ExitDelayTicks <= 0 {
		a.ExitDelayTicks = def.Animation.ExitDelayTicks
	}
	if a.ExitDelayTicks < a.RevealMaxTicks {
		a.ExitDelayTicks = a.RevealMaxTicks
	}

	th := &cfg.Theme
	if len(th.Trail) == 0 {
		th.Trail = def.Theme.Trail
	}
	if len(th.Obstacle) == 0 {
		th.Obstacle = def.Theme.Obstacle
	}
	if th.Empty == "" {
		th.Empty = def.Theme.Empty
	}
	if th.Head == "" {
		th.Head = def.Theme.Head
	}
	if th.Border == "" {
		th.Border = def.Theme.Border
	}
	if th.CellW <= 0 {
		th.CellW = def.Theme.CellW
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dotfill", filename)
}
