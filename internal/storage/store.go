// Package storage persists headless runs as a metadata.json and states.csv
// pair per run directory.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes the settings a run was produced with.
type RunMetadata struct {
	ID         string             `json:"id"`
	Path       string             `json:"path"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	FPS        int                `json:"fps"`
	Frames     int                `json:"frames"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
	NonFinite  []string           `json:"non_finite,omitempty"`
}

// Save writes a new run directory and returns its id. ID and Timestamp of
// meta are filled in; Metrics is taken from result. Non-finite metric values
// cannot be stored as JSON, so they are left out of Metrics and named in
// NonFinite instead. A run directory is never left half written.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Path, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	meta.ID = runID
	meta.Timestamp = now
	meta.Metrics, meta.NonFinite = finiteMetrics(result.Metrics)
	if len(meta.NonFinite) > 0 {
		dynamo.Logger().Warn("dropping non-finite metrics", "id", runID, "metrics", meta.NonFinite)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}

	dynamo.Logger().Debug("run saved", "id", runID, "frames", len(result.States))
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *sim.Result) error {
	if err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(runDir, "states.csv"), func(w io.Writer) error {
		return WriteCSV(w, result)
	})
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finiteMetrics(in map[string]float64) (map[string]float64, []string) {
	out := make(map[string]float64, len(in))
	var bad []string
	for name, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, name)
			continue
		}
		out[name] = v
	}
	sort.Strings(bad)
	return out, bad
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
			dynamo.Logger().Debug("skipping run dir", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadResult reads back a recorded run with its metrics.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	result, err := ReadCSV(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", runID, err)
	}
	result.Metrics = meta.Metrics
	return meta, result, nil
}

// LoadStates reads back the recorded free-point states and frame times.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	_, result, err := s.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	return result.States, result.Times, nil
}

// OpenStates opens the raw states.csv of a run.
func (s *Store) OpenStates(runID string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
}
