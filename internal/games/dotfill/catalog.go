package dotfill

import (
	"github.com/vovakirdan/dotfill/internal/config"
	"github.com/vovakirdan/dotfill/internal/puzzle/levels"
	"github.com/vovakirdan/dotfill/internal/registry"
)

// RegisterCatalog registers one game factory per level, keyed by level ID.
// Every game created from reg shares cfg.
func RegisterCatalog(reg *registry.Registry, lvls []levels.Level, cfg config.GameConfig) {
	cfg = config.Normalize(cfg)
	for _, lvl := range lvls {
		reg.Register(lvl.ID, func() registry.Game {
			return New(lvl, cfg)
		})
	}
}
