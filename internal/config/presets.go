package config

import "sort"

// Presets are named board geometries.
var Presets = map[string]*Config{
	"small": {
		Board: BoardConfig{CellSize: 20, DisplayWidth: 400, DisplayHeight: 300, Scale: 2},
		Speed: SpeedConfig{Slider: 1600}, Density: DefaultDensity, Workers: 1,
	},
	"default": {
		Board: BoardConfig{CellSize: DefaultCellSize, DisplayWidth: DefaultDisplayWidth, DisplayHeight: DefaultDisplayHeight, Scale: DefaultScale},
		Speed: SpeedConfig{Slider: DefaultSlider}, Density: DefaultDensity, Workers: 1,
	},
	"large": {
		Board: BoardConfig{CellSize: 10, DisplayWidth: 1280, DisplayHeight: 960, Scale: 2},
		Speed: SpeedConfig{Slider: 1900}, Density: DefaultDensity, Workers: 4,
	},
	"trails": {
		Board: BoardConfig{CellSize: DefaultCellSize, DisplayWidth: DefaultDisplayWidth, DisplayHeight: DefaultDisplayHeight, Scale: DefaultScale},
		Speed: SpeedConfig{Slider: 1500}, Density: 0.2, HistoryTrail: true, Workers: 1,
	},
}

// GetPreset returns a copy of the named preset merged over the defaults, or
// nil when it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Board = p.Board
	cfg.Speed = p.Speed
	cfg.Density = p.Density
	cfg.HistoryTrail = p.HistoryTrail
	cfg.Workers = p.Workers
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
