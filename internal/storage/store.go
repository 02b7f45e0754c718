package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata describes a stored session.
type RunMetadata struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         uint64             `json:"seed"`
	Cols         int                `json:"cols"`
	Rows         int                `json:"rows"`
	Density      float64            `json:"density"`
	HistoryTrail bool               `json:"history_trail"`
	Generations  int                `json:"generations"`
	Initial      int                `json:"initial_population"`
	Final        int                `json:"final_population"`
	Stop         sim.StopReason     `json:"stop"`
	Metrics      map[string]float64 `json:"metrics"`
}

// RunInfo is what the caller knows about a run before it is stored.
type RunInfo struct {
	Preset       string
	Seed         uint64
	Density      float64
	HistoryTrail bool
}

// Save writes metadata.json, the final board and the population series of a
// run into a new directory and returns its id.
func (s *Store) Save(info RunInfo, board *life.Board, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(info.Preset, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Preset:       info.Preset,
		Timestamp:    now,
		Seed:         info.Seed,
		Cols:         board.Cols(),
		Rows:         board.Rows(),
		Density:      info.Density,
		HistoryTrail: info.HistoryTrail,
		Generations:  result.Generations(),
		Initial:      result.Initial,
		Final:        board.Population(),
		Stop:         result.Stop,
		Metrics:      result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if _, err := pattern.Save(runDir, board); err != nil {
		return "", err
	}
	if err := writePopulation(filepath.Join(runDir, populationFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(preset string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", slug(preset), now.Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func slug(name string) string {
	if name == "" {
		return "board"
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}

func writePopulation(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "population", "births", "deaths"}); err != nil {
		return err
	}
	if err := w.Write([]string{"0", strconv.Itoa(result.Initial), "0", "0"}); err != nil {
		return err
	}
	for _, st := range result.Steps {
		row := []string{
			strconv.Itoa(st.Generation),
			strconv.Itoa(st.Population),
			strconv.Itoa(st.Births),
			strconv.Itoa(st.Deaths),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPopulation reads the population series of a run. The first entry is the
// initial board at generation 0.
func (s *Store) LoadPopulation(runID string) ([]life.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, populationFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []life.Step{}, nil
	}

	out := make([]life.Step, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var vals [4]int
		ok := true
		for j := range vals {
			v, err := strconv.Atoi(record[j])
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		out = append(out, life.Step{Generation: vals[0], Population: vals[1], Births: vals[2], Deaths: vals[3]})
	}
	return out, nil
}

// LoadBoard rebuilds the final board of a run.
func (s *Store) LoadBoard(runID string, logger log.Logger) (*life.Board, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	b := life.New(meta.Cols, meta.Rows)
	if _, err := pattern.Load(filepath.Join(s.baseDir, runID), b, logger); err != nil {
		return nil, err
	}
	return b, nil
}

// BoardPath is the board.csv of a run.
func (s *Store) BoardPath(runID string) string {
	return filepath.Join(s.baseDir, runID, pattern.BoardFile)
}

// Autosave writes the board to dir/board.csv, replacing the previous backup.
func Autosave(dir string, b *life.Board) (string, error) {
	return pattern.Save(dir, b)
}
