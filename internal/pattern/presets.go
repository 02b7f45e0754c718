package pattern

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/lifesim/internal/life"
)

// Preset files are authored for the default 80x60 board.
const (
	PresetCols = 80
	PresetRows = 60
)

const (
	Empty                     = "Empty"
	Random                    = "Random"
	DieHard                   = "Die Hard"
	RPentomino                = "R Pentomino"
	BlockLayingSwitchEngine   = "Block-laying Switch Engine"
	BlockLayingSwitchEngineV2 = "Block-laying Switch Engine v2"
	GosperGliderGun           = "Gosper Gilder Gun"
)

var ErrUnknownPreset = errors.New("pattern: unknown preset")

//go:embed presets/*.csv
var presetFS embed.FS

var presetFiles = map[string]string{
	DieHard:                   "die-hard.csv",
	RPentomino:                "r-pentomino.csv",
	BlockLayingSwitchEngine:   "block-laying-switch-engine.csv",
	BlockLayingSwitchEngineV2: "block-laying-switch-engine-v2.csv",
	GosperGliderGun:           "gosper-glider-gun.csv",
}

// Names lists the presets in menu order.
func Names() []string {
	return []string{
		Empty,
		Random,
		DieHard,
		RPentomino,
		BlockLayingSwitchEngine,
		BlockLayingSwitchEngineV2,
		GosperGliderGun,
	}
}

// Library resolves preset names to pattern files. Files found in Dir take
// precedence over the embedded ones.
type Library struct {
	Dir    string
	Logger log.Logger
}

func NewLibrary(dir string, logger log.Logger) *Library {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Library{Dir: dir, Logger: logger}
}

// Apply loads the named preset into b. Empty clears the board, Random clears
// it and fills it at density. A preset authored for a different board size is
// re-centered on b.
func (l *Library) Apply(name string, b *life.Board, density float64) error {
	switch name {
	case Empty:
		b.Clear()
		return nil
	case Random:
		b.Clear()
		b.Randomize(density)
		return nil
	}

	file, ok := presetFiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	data, err := l.read(file)
	if err != nil {
		return err
	}
	indices, stats, err := parse(bytes.NewReader(data), l.Logger)
	if err != nil {
		return fmt.Errorf("pattern: preset %q: %w", name, err)
	}

	var applied int
	if b.Cols() == PresetCols && b.Rows() == PresetRows {
		applied = b.LoadPattern(indices)
	} else {
		applied = b.LoadCoords(Recenter(indices, PresetRows, b.Cols(), b.Rows()))
	}
	level.Debug(l.Logger).Log("msg", "preset applied", "name", name, "cells", applied, "skipped", stats.Skipped+len(indices)-applied)
	return nil
}

func (l *Library) read(file string) ([]byte, error) {
	if l.Dir != "" {
		data, err := os.ReadFile(filepath.Join(l.Dir, file))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return presetFS.ReadFile("presets/" + file)
}

// Recenter decodes indices laid out with srcRows rows and moves the bounding
// box of the result to the middle of a cols x rows board. Cells that land
// outside the board are returned as-is and dropped by the caller.
func Recenter(indices []int, srcRows, cols, rows int) []life.Coord {
	if len(indices) == 0 || srcRows <= 0 {
		return nil
	}
	coords := make([]life.Coord, 0, len(indices))
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	maxX, maxY := -minX-1, -minY-1
	for _, idx := range indices {
		if idx < 0 {
			continue
		}
		c := life.Coord{X: idx / srcRows, Y: idx % srcRows}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
		coords = append(coords, c)
	}
	if len(coords) == 0 {
		return nil
	}
	dx := (cols-(maxX-minX+1))/2 - minX
	dy := (rows-(maxY-minY+1))/2 - minY
	for i := range coords {
		coords[i].X += dx
		coords[i].Y += dy
	}
	return coords
}

var defaultLibrary = NewLibrary("", nil)

// Apply loads a preset from the embedded library.
func Apply(name string, b *life.Board, density float64) error {
	return defaultLibrary.Apply(name, b, density)
}
