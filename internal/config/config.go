// Package config provides YAML-based configuration loading for gridpath.
package config

import (
	"fmt"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/render"
)

// Config is the full application configuration.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Search    SearchConfig    `yaml:"search"`
	Render    RenderConfig    `yaml:"render"`
	Editor    EditorConfig    `yaml:"editor"`
	Generator GeneratorConfig `yaml:"generator"`
	Storage   StorageConfig   `yaml:"storage"`
	Maps      MapsConfig      `yaml:"maps"`
	Log       LogConfig       `yaml:"log"`
}

// GridConfig is the default grid size for new layouts.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SearchConfig holds pathfinder options.
type SearchConfig struct {
	EndpointPolicy string `yaml:"endpoint_policy"` // "allow" or "reject"
	AutoReset      bool   `yaml:"auto_reset"`
}

// RenderConfig controls how grids are drawn.
type RenderConfig struct {
	ShowExplored bool                   `yaml:"show_explored"`
	CellWidth    int                    `yaml:"cell_width"`
	Glyphs       map[string]GlyphConfig `yaml:"glyphs"` // Keyed by category name
}

// GlyphConfig is the look of one display category.
type GlyphConfig struct {
	Char  string `yaml:"char"`
	Color string `yaml:"color"`
}

// EditorConfig controls the interactive editor.
type EditorConfig struct {
	TickRate      int `yaml:"tick_rate"`       // Animation ticks per second
	RevealPerTick int `yaml:"reveal_per_tick"` // Path cells revealed per tick, 0 = instant
}

// GeneratorConfig selects the default wall-layout generator.
type GeneratorConfig struct {
	Name    string  `yaml:"name"`
	Density float64 `yaml:"density"` // 0.0 - 1.0, used by density-based generators
}

// StorageConfig configures the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// MapsConfig configures where user map files live.
type MapsConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// PathfinderOptions converts the search section into pathfinder options.
func (c Config) PathfinderOptions() ([]pathfind.Option, error) {
	policy, err := pathfind.ParseEndpointPolicy(c.Search.EndpointPolicy)
	if err != nil {
		return nil, fmt.Errorf("config: search.endpoint_policy: %w", err)
	}
	opts := []pathfind.Option{pathfind.WithEndpointPolicy(policy)}
	if c.Search.AutoReset {
		opts = append(opts, pathfind.WithAutoReset())
	}
	return opts, nil
}

// Theme builds a render theme, overriding the defaults with configured glyphs.
// Unknown category or color names are reported as errors.
func (c Config) Theme() (render.Theme, error) {
	theme := render.DefaultTheme()
	if c.Render.CellWidth > 0 {
		theme.CellWidth = c.Render.CellWidth
	}

	categories := map[string]render.Category{}
	for _, cat := range []render.Category{
		render.CategoryEmpty, render.CategoryStart, render.CategoryGoal,
		render.CategoryWall, render.CategoryPath, render.CategoryExplored,
	} {
		categories[cat.String()] = cat
	}

	for name, gc := range c.Render.Glyphs {
		cat, ok := categories[name]
		if !ok {
			return theme, fmt.Errorf("config: render.glyphs: unknown category %q", name)
		}
		glyph := theme.Glyph(cat)
		if gc.Char != "" {
			glyph.Rune = []rune(gc.Char)[0]
		}
		if gc.Color != "" {
			color, ok := core.ParseColor(gc.Color)
			if !ok {
				return theme, fmt.Errorf("config: render.glyphs.%s: unknown color %q", name, gc.Color)
			}
			glyph.Color = color
		}
		theme.Glyphs[cat] = glyph
	}
	return theme, nil
}
