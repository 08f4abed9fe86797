package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/heatsim/internal/sim"
)

const (
	metadataFile     = "metadata.json"
	temperaturesFile = "temperatures.csv"
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
	ID          string             `json:"id"`
	Mode        string             `json:"mode"`
	Source      string             `json:"source,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Elapsed     float64            `json:"elapsed"`
	Unsimulated float64            `json:"unsimulated"`
	Ambient     float64            `json:"ambient"`
	Bodies      []string           `json:"bodies"`
	Capacities  []float64          `json:"capacities,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes result under a new run directory. The caller fills the scenario fields
// of meta; identity and outcome fields are taken from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	if meta.Mode == "" {
		meta.Mode = result.Mode.String()
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Mode, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Elapsed = result.Elapsed
	meta.Unsimulated = result.Unsimulated
	meta.Metrics = result.Metrics
	meta.Bodies = make([]string, len(result.Series))
	for i, series := range result.Series {
		meta.Bodies[i] = series.Name
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, temperaturesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Series); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns stored runs, oldest first. Directories without readable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the most recent run, or an error when the store is empty.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs in %s", s.baseDir)
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]sim.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, temperaturesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}
