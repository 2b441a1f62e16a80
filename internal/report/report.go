package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/odelab/odelab/internal/experiment"
	"github.com/odelab/odelab/ode"
)

// Store lays runs out on disk under a base directory, one subdirectory per
// run holding a metadata file and the trajectory in CSV.
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
	Problem   string             `json:"problem"`
	Method    string             `json:"method"`
	Timestamp time.Time          `json:"timestamp"`
	X0        float64            `json:"x0"`
	Xf        float64            `json:"xf"`
	Stats     ode.Stats          `json:"stats"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run under the given id, or under "<problem>_<nanos>" when
// the id is empty. It returns the id used.
func (s *Store) Save(id string, res *experiment.Result) (string, error) {
	if id == "" {
		id = fmt.Sprintf("%s_%d", res.Problem, time.Now().UnixNano())
	}
	runDir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        id,
		Problem:   res.Problem,
		Method:    res.Method,
		Timestamp: time.Now(),
		X0:        res.X0,
		Xf:        res.Xf,
		Stats:     res.Stats,
		Metrics:   res.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, res); err != nil {
		return "", err
	}
	return id, nil
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads a saved trajectory back, returning the state rows and
// the abscissae.
func (s *Store) LoadStates(id string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("report: run %s has an empty states file", id)
	}

	states := make([][]float64, 0, len(records)-1)
	xs := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		x, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, err
		}
		row := make([]float64, len(rec)-1)
		for i, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, err
			}
			row[i] = v
		}
		xs = append(xs, x)
		states = append(states, row)
	}
	return states, xs, nil
}
