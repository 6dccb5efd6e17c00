// Package storage persists completed runs under a data directory, one
// subdirectory per run: metadata.json for the scenario and outcome,
// records.csv for the trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/ecosim/internal/ecosys"
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

// RunMetadata is the persisted run descriptor.
type RunMetadata struct {
	ID                 string                   `json:"id"`
	Scenario           string                   `json:"scenario"`
	Timestamp          time.Time                `json:"timestamp"`
	Horizon            float64                  `json:"horizon"`
	Parameters         *ecosys.Parameters       `json:"parameters"`
	EquilibriumReached bool                     `json:"equilibriumReached"`
	Equilibrium        *ecosys.EquilibriumPoint `json:"equilibriumPoint,omitempty"`
	ExtinctionOccurred bool                     `json:"extinctionOccurred"`
	Summary            ecosys.Summary           `json:"summary"`
}

var csvHeader = []string{"time", "prey", "predator", "resource"}

// Save writes a run to disk and returns its generated ID.
func (s *Store) Save(scenario string, horizon float64, params *ecosys.Parameters, result *ecosys.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", scenario, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:                 runID,
		Scenario:           scenario,
		Timestamp:          time.Now(),
		Horizon:            horizon,
		Parameters:         params,
		EquilibriumReached: result.EquilibriumReached,
		Equilibrium:        result.Equilibrium,
		ExtinctionOccurred: result.ExtinctionOccurred,
		Summary:            result.Summary,
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

	csvFile, err := os.Create(filepath.Join(runDir, "records.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range result.Records {
		row := []string{
			strconv.FormatFloat(r.Time, 'f', 2, 64),
			strconv.FormatFloat(r.Prey, 'f', 1, 64),
			strconv.FormatFloat(r.Predator, 'f', 1, 64),
			strconv.FormatFloat(r.Resource, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run.
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
	return runs, nil
}

// Load reads one run's metadata.
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

// LoadRecords reads one run's trajectory back from CSV.
func (s *Store) LoadRecords(runID string) ([]ecosys.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "records.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []ecosys.Record{}, nil
	}

	records := make([]ecosys.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			continue
		}
		vals := make([]float64, len(row))
		ok := true
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		records = append(records, ecosys.Record{
			Time:     vals[0],
			Prey:     vals[1],
			Predator: vals[2],
			Resource: vals[3],
		})
	}
	return records, nil
}
