package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/lifesim/internal/life"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writePopulationCSV writes one row per generation with a header.
func writePopulationCSV(w io.Writer, steps []life.Step) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"generation", "population", "births", "deaths"}); err != nil {
		return err
	}
	for _, s := range steps {
		row := []string{
			strconv.Itoa(s.Generation),
			strconv.Itoa(s.Population),
			strconv.Itoa(s.Births),
			strconv.Itoa(s.Deaths),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
