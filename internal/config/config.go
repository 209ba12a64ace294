// Package config provides YAML-based game configuration loading for dotfill.
package config

// GameConfig contains all tunable parameters of a dotfill session.
type GameConfig struct {
	Drag      DragConfig      `yaml:"drag"`
	Animation AnimationConfig `yaml:"animation"`
	Theme     ThemeConfig     `yaml:"theme"`
}

// DragConfig defines how pointer drags turn into sweeps.
type DragConfig struct {
	Threshold       float64 `yaml:"threshold"`        // Minimum displacement in cells, exclusive
	HorizontalScale float64 `yaml:"horizontal_scale"` // Applied to dx; terminal cells are about twice as tall as wide
}

// AnimationConfig defines presentation timings in simulation ticks.
type AnimationConfig struct {
	SweepStepTicks int     `yaml:"sweep_step_ticks"` // Duration of the first step of a sweep
	SweepGrowth    float64 `yaml:"sweep_growth"`     // Each later step lasts this much longer
	RevealMinTicks int     `yaml:"reveal_min_ticks"` // Earliest obstacle reveal after a win
	RevealMaxTicks int     `yaml:"reveal_max_ticks"` // Latest obstacle reveal after a win
	ExitDelayTicks int     `yaml:"exit_delay_ticks"` // Ticks from win until the session ends
}

// ThemeConfig names the palette used by the renderer.
type ThemeConfig struct {
	Trail    []string `yaml:"trail"`    // One color per trail skin
	Obstacle []string `yaml:"obstacle"` // One color per obstacle skin
	Empty    string   `yaml:"empty"`
	Head     string   `yaml:"head"`
	Border   string   `yaml:"border"`
	CellW    int      `yaml:"cell_width"` // Screen columns per grid cell
}
