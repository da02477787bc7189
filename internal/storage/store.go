// Package storage persists headless runs: one directory per run holding
// metadata JSON and the sampled telemetry as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/telemetry"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	FixedStep float64            `json:"fixed_step"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"time", "x", "y", "vx", "vy"}

// Save writes one run directory and returns its id.
func (s *Store) Save(preset string, fixedStep, duration float64, rec *telemetry.Recording) (string, error) {
	runID := fmt.Sprintf("carbox_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		FixedStep: fixedStep,
		Duration:  duration,
		Metrics:   rec.Metrics(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, sample := range rec.Samples {
		row := []string{
			strconv.FormatFloat(sample.T, 'f', 6, 64),
			strconv.FormatFloat(sample.Pos.X, 'f', 6, 64),
			strconv.FormatFloat(sample.Pos.Y, 'f', 6, 64),
			strconv.FormatFloat(sample.Vel.X, 'f', 6, 64),
			strconv.FormatFloat(sample.Vel.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		meta, err := s.loadMetadata(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) loadMetadata(runID string) (*RunMetadata, error) {
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

// Load reads one run back: its metadata and its samples.
func (s *Store) Load(runID string) (*RunMetadata, *telemetry.Recording, error) {
	meta, err := s.loadMetadata(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	rec := telemetry.NewRecording()
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue
		}
		vals := make([]float64, 5)
		bad := false
		for j := range vals {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				bad = true
				break
			}
			vals[j] = v
		}
		if bad {
			continue
		}
		rec.Add(telemetry.Sample{
			T:   vals[0],
			Pos: cp.Vector{X: vals[1], Y: vals[2]},
			Vel: cp.Vector{X: vals[3], Y: vals[4]},
		})
	}
	return meta, rec, nil
}

// CSVPath returns the samples file for a run, verifying it exists.
func (s *Store) CSVPath(runID string) (string, error) {
	path := filepath.Join(s.baseDir, runID, "samples.csv")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return path, nil
}
