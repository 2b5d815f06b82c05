package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/springcurve/internal/sim"
)

// StateColumns names the columns of a recorded state row.
var StateColumns = []string{"p1x", "p1y", "v1x", "v1y", "p2x", "p2y", "v2x", "v2y"}

var targetColumns = []string{"t1x", "t1y", "t2x", "t2y"}

// WriteCSV writes one row per recorded frame: time, state, then targets.
func WriteCSV(out io.Writer, result *sim.Result) error {
	if len(result.Times) != len(result.States) {
		return fmt.Errorf("%d times for %d states", len(result.Times), len(result.States))
	}
	w := csv.NewWriter(out)

	header := append([]string{"time"}, StateColumns...)
	header = append(header, targetColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if i < len(result.Targets) {
			for _, val := range result.Targets[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadCSV parses the output of WriteCSV back into a result. Metrics are not
// part of the CSV and are left empty.
func ReadCSV(in io.Reader) (*sim.Result, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{
		States:  make([][]float64, 0, len(records)),
		Targets: make([][]float64, 0, len(records)),
		Times:   make([]float64, 0, len(records)),
		Metrics: make(map[string]float64),
	}
	if len(records) < 2 {
		return result, nil
	}

	for i, record := range records[1:] {
		if len(record) < 1+len(StateColumns) {
			return nil, fmt.Errorf("row %d: %d columns", i+1, len(record))
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			vals[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i+1, j, err)
			}
		}

		result.Times = append(result.Times, vals[0])
		result.States = append(result.States, vals[1:1+len(StateColumns)])
		if len(vals) >= 1+len(StateColumns)+len(targetColumns) {
			result.Targets = append(result.Targets, vals[1+len(StateColumns):])
		}
	}
	result.StepsTaken = len(result.States) - 1

	return result, nil
}

// ExportData is the JSON document written by WriteJSON.
type ExportData struct {
	Meta    RunMetadata        `json:"meta"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	States  [][]float64        `json:"states"`
	Targets [][]float64        `json:"targets"`
	Metrics map[string]float64 `json:"metrics"`
}

func WriteJSON(out io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Meta:    meta,
		Steps:   result.StepsTaken,
		Times:   result.Times,
		States:  result.States,
		Targets: result.Targets,
		Metrics: result.Metrics,
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
