package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/export"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

const (
	metadataFile = "metadata.json"
	pathsFile    = "paths.csv"
	summaryFile  = "summary.csv"
)

// ErrNotFound is returned for an unknown run id.
var ErrNotFound = errors.New("storage: run not found")

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string            `json:"id"`
	Model     string            `json:"model"`
	Timestamp time.Time         `json:"timestamp"`
	Elapsed   time.Duration     `json:"elapsed_ns"`
	Params    config.Params     `json:"params"`
	Terminal  stats.Description `json:"terminal"`
}

// ModelName labels a run by its volatility specification.
func ModelName(cfg model.Config) string {
	if cfg.Volatility == model.VolatilityDynamic {
		return "dynamic"
	}
	return fmt.Sprintf("cev-%g", cfg.Gamma)
}

// Save stores out under a fresh run ID. A failed save leaves nothing behind.
func (s *Store) Save(out *experiment.Outcome) (string, error) {
	now := s.now()
	name := ModelName(out.Config)
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     name,
		Timestamp: now,
		Elapsed:   out.Elapsed,
		Params:    out.Params,
		Terminal:  out.Terminal,
	}

	// metadata.json goes last; List and Latest only see complete runs.
	err := writeFile(filepath.Join(runDir, pathsFile), func(f *os.File) error {
		return export.WritePaths(f, out.Ensemble)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, summaryFile), func(f *os.File) error {
			return export.WriteSummary(f, out.Summary)
		})
	}
	if err == nil {
		err = writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		})
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	path, err := s.file(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// Latest returns the id of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("%w: no runs in %s", ErrNotFound, s.baseDir)
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) LoadEnsemble(runID string) (*model.Ensemble, error) {
	path, err := s.file(runID, pathsFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	return export.ReadPaths(f)
}

// PathsFile and SummaryFile locate the stored tables for streaming.
func (s *Store) PathsFile(runID string) (string, error)   { return s.file(runID, pathsFile) }
func (s *Store) SummaryFile(runID string) (string, error) { return s.file(runID, summaryFile) }

func (s *Store) file(runID, name string) (string, error) {
	if runID == "" || strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return "", fmt.Errorf("%w: invalid id %q", ErrNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID, name), nil
}
