package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lifesim/internal/life"
)

type ExportData struct {
	Run        RunMetadata `json:"run"`
	Alive      []int       `json:"alive"`
	Population []life.Step `json:"population"`
}

// ExportJSON writes a run's metadata, final live cells and population series
// as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	steps, err := s.LoadPopulation(runID)
	if err != nil {
		return err
	}
	b, err := s.LoadBoard(runID, nil)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:        *meta,
		Alive:      b.AliveIndices(),
		Population: steps,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
