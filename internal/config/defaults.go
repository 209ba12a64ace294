package config

import (
	_ "embed"
)

//go:embed defaults/dotfill.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the hardcoded dotfill configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Drag: DragConfig{
			Threshold:       2.0,
			HorizontalScale: 0.5,
		},
		Animation: AnimationConfig{
			SweepStepTicks: 6,
			SweepGrowth:    1.06,
			RevealMinTicks: 30,
			RevealMaxTicks: 90,
			ExitDelayTicks: 120,
		},
		Theme: ThemeConfig{
			Trail:    []string{"orange", "dark_orange", "amber"},
			Obstacle: []string{"gray", "dark_gray"},
			Empty:    "dark_gray",
			Head:     "bright_yellow",
			Border:   "white",
			CellW:    2,
		},
	}
}
