package pattern

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/lifesim/internal/life"
)

// BoardFile is the file name used when a directory is given instead of a file.
const BoardFile = "board.csv"

// ReadStats reports what a Read applied and skipped.
type ReadStats struct {
	Applied int
	Skipped int
}

// Write emits one "index,x,y" row per live cell in index order.
func Write(w io.Writer, b *life.Board) error {
	cw := csv.NewWriter(w)
	for _, idx := range b.AliveIndices() {
		c, _ := b.Coord(idx)
		row := []string{strconv.Itoa(idx), strconv.Itoa(c.X), strconv.Itoa(c.Y)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read clears b and sets alive the cell named by the first field of every
// row. Rows with a non-integer or out-of-range index are skipped and logged;
// rows already applied are kept.
func Read(r io.Reader, b *life.Board, logger log.Logger) (ReadStats, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	indices, stats, err := parse(r, logger)
	if err != nil {
		return stats, err
	}
	b.Clear()
	for _, idx := range indices {
		if !b.SetAlive(idx) {
			stats.Skipped++
			level.Warn(logger).Log("msg", "skipping out-of-range cell", "index", idx, "cells", b.Len())
			continue
		}
		stats.Applied++
	}
	return stats, nil
}

// parse reads one row per line. Only the first field matters and there is no
// quoting, so a bad line never affects the lines after it.
func parse(r io.Reader, logger log.Logger) ([]int, ReadStats, error) {
	var stats ReadStats
	indices := make([]int, 0, 64)

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		field, _, _ := strings.Cut(sc.Text(), ",")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		idx, err := strconv.Atoi(field)
		if err != nil {
			stats.Skipped++
			level.Warn(logger).Log("msg", "skipping malformed line", "line", line, "field", field)
			continue
		}
		indices = append(indices, idx)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, err
	}
	return indices, stats, nil
}

// Save writes dir/board.csv, creating dir if needed, and returns the file path.
func Save(dir string, b *life.Board) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, BoardFile)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(f, b); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Load reads a board file. A directory path is resolved to dir/board.csv.
// A missing file is returned as an error wrapping fs.ErrNotExist.
func Load(path string, b *life.Board, logger log.Logger) (ReadStats, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, BoardFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return ReadStats{}, fmt.Errorf("pattern: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, b, logger)
}
