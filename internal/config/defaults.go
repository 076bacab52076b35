package config

import (
	_ "embed"
)

//go:embed defaults/gridpath.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Width:  20,
			Height: 20,
		},
		Search: SearchConfig{
			EndpointPolicy: "allow",
			AutoReset:      true,
		},
		Render: RenderConfig{
			ShowExplored: false,
			CellWidth:    2,
		},
		Editor: EditorConfig{
			TickRate:      30,
			RevealPerTick: 1,
		},
		Generator: GeneratorConfig{
			Name:    "scatter",
			Density: 0.25,
		},
		Storage: StorageConfig{
			DBPath: "~/.gridpath/runs.db",
		},
		Maps: MapsConfig{
			Dir: "~/.gridpath/maps",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
