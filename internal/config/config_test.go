package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", cfg.Cols())
	}
	if cfg.Rows() != 60 {
		t.Errorf("expected 60 rows, got %d", cfg.Rows())
	}
	if cfg.Interval() != 802*time.Millisecond {
		t.Errorf("expected 802ms interval, got %v", cfg.Interval())
	}
}

func TestIntervalFromSlider(t *testing.T) {
	tests := []struct {
		slider int
		want   time.Duration
	}{
		{400, 1602 * time.Millisecond},
		{2000, 2 * time.Millisecond},
		{2002, 2 * time.Millisecond},
		{5000, 2 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := IntervalFromSlider(tt.slider); got != tt.want {
			t.Errorf("IntervalFromSlider(%d) = %v, want %v", tt.slider, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero cell", func(c *Config) { c.Board.CellSize = 0 }, ErrInvalidBoard},
		{"cell larger than display", func(c *Config) { c.Board.CellSize = 5000 }, ErrInvalidBoard},
		{"negative density", func(c *Config) { c.Density = -0.1 }, ErrInvalidDensity},
		{"density above one", func(c *Config) { c.Density = 1.5 }, ErrInvalidDensity},
		{"slow slider", func(c *Config) { c.Speed.Slider = 10 }, ErrInvalidSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifesim.yaml")
	cfg := DefaultConfig()
	cfg.HistoryTrail = true
	cfg.Workers = 3
	cfg.Theme = "amber"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !got.HistoryTrail || got.Workers != 3 || got.Theme != "amber" {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("history_trail: true\nboard:\n  cell_size: 10\n  display_width: 800\n  display_height: 600\n  scale: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Cols() != 160 || cfg.Rows() != 120 {
		t.Errorf("expected 160x120, got %dx%d", cfg.Cols(), cfg.Rows())
	}
	if cfg.Density != DefaultDensity {
		t.Errorf("density default lost: %f", cfg.Density)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("density: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidDensity) {
		t.Errorf("expected ErrInvalidDensity, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Cols() != 40 || cfg.Rows() != 30 {
		t.Errorf("expected 40x30, got %dx%d", cfg.Cols(), cfg.Rows())
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("preset should inherit data dir, got %q", cfg.DataDir)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
