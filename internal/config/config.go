package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCellSize      = 20
	DefaultDisplayWidth  = 800
	DefaultDisplayHeight = 600
	DefaultScale         = 2
	DefaultSlider        = 1200
	DefaultDensity       = 0.3
	DefaultWorkers       = 1
	DefaultTheme         = "classic"
	DefaultDataDir       = ".lifesim"
	DefaultAutosaveDir   = "backup-folder/autosave"
	DefaultLogLevel      = "info"

	MinSlider = 400
	MaxSlider = 2000
)

var (
	ErrInvalidBoard   = errors.New("config: board dimensions must be positive")
	ErrInvalidDensity = errors.New("config: density must be within [0, 1]")
	ErrInvalidSpeed   = errors.New("config: speed slider out of range")
)

type Config struct {
	Board        BoardConfig `yaml:"board"`
	Speed        SpeedConfig `yaml:"speed"`
	Density      float64     `yaml:"density"`
	HistoryTrail bool        `yaml:"history_trail"`
	Workers      int         `yaml:"workers"`
	Theme        string      `yaml:"theme"`
	DataDir      string      `yaml:"data_dir"`
	AutosaveDir  string      `yaml:"autosave_dir"`
	PatternDir   string      `yaml:"pattern_dir"`
	LogLevel     string      `yaml:"log_level"`
}

// BoardConfig derives the grid from a display area and a cell size, the way
// the window did: cols = width*scale/cell, rows = height*scale/cell.
type BoardConfig struct {
	CellSize      int `yaml:"cell_size"`
	DisplayWidth  int `yaml:"display_width"`
	DisplayHeight int `yaml:"display_height"`
	Scale         int `yaml:"scale"`
}

type SpeedConfig struct {
	Slider int `yaml:"slider"`
}

func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			CellSize:      DefaultCellSize,
			DisplayWidth:  DefaultDisplayWidth,
			DisplayHeight: DefaultDisplayHeight,
			Scale:         DefaultScale,
		},
		Speed:       SpeedConfig{Slider: DefaultSlider},
		Density:     DefaultDensity,
		Workers:     DefaultWorkers,
		Theme:       DefaultTheme,
		DataDir:     DefaultDataDir,
		AutosaveDir: DefaultAutosaveDir,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	b := c.Board
	if b.CellSize <= 0 || b.DisplayWidth <= 0 || b.DisplayHeight <= 0 || b.Scale <= 0 {
		return ErrInvalidBoard
	}
	if c.Cols() == 0 || c.Rows() == 0 {
		return ErrInvalidBoard
	}
	if c.Density < 0 || c.Density > 1 {
		return ErrInvalidDensity
	}
	if c.Speed.Slider < MinSlider || c.Speed.Slider > MaxSlider {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSpeed, c.Speed.Slider, MinSlider, MaxSlider)
	}
	return nil
}

func (c *Config) Cols() int {
	return c.Board.DisplayWidth * c.Board.Scale / c.Board.CellSize
}

func (c *Config) Rows() int {
	return c.Board.DisplayHeight * c.Board.Scale / c.Board.CellSize
}

// Interval is the delay between generations for the configured slider value.
func (c *Config) Interval() time.Duration {
	return IntervalFromSlider(c.Speed.Slider)
}

// IntervalFromSlider maps a speed slider position to a tick interval:
// 2002 - v milliseconds, never below 2ms.
func IntervalFromSlider(v int) time.Duration {
	ms := 2002 - v
	if ms <= 0 {
		ms = 2
	}
	return time.Duration(ms) * time.Millisecond
}
