package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the self-contained JSON form of a run: metadata plus the
// full state history.
type ExportData struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

func ExportJSON(w io.Writer, meta RunMetadata, times []float64, states [][]float64) error {
	data := ExportData{Meta: meta, Times: times, States: states}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONFile(path string, meta RunMetadata, times []float64, states [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, times, states)
}
