// Package store persists run artifacts on the filesystem. Every path derives
// from the outputs root:
//
//	<root>/<run>/metadata.json
//	<root>/<run>/contestants/{skill}_{test}_{contestant}.md
//	<root>/<run>/jury-scores/{skill}_{test}_{judge}.json
//	<root>/<run>/report.md
//
// Writes are whole-file replacements, so re-running a stage overwrites its
// artifacts idempotently.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spawner-ai/skillbench/internal/domain"
)

const (
	contestantsDir = "contestants"
	juryScoresDir  = "jury-scores"
	metadataFile   = "metadata.json"
	reportFile     = "report.md"
)

// RunStore reads and writes the artifacts of benchmark runs under a single
// outputs root.
type RunStore struct {
	root string
}

// NewRunStore creates a store rooted at the outputs directory.
func NewRunStore(root string) *RunStore {
	return &RunStore{root: root}
}

// RunDir returns the directory holding one run's artifacts.
func (s *RunStore) RunDir(runID string) string {
	return filepath.Join(s.root, runID)
}

// SaveMetadata writes the run metadata document, creating the run directory
// if needed.
func (s *RunStore) SaveMetadata(meta *domain.RunMetadata) error {
	dir := s.RunDir(meta.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run directory %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	path := filepath.Join(dir, metadataFile)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadMetadata reads the run metadata document. A missing document returns
// domain.ErrMetadataNotFound; stages after the first treat that as a hard
// precondition failure.
func (s *RunStore) LoadMetadata(runID string) (*domain.RunMetadata, error) {
	path := filepath.Join(s.RunDir(runID), metadataFile)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrMetadataNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var meta domain.RunMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &meta, nil
}

// UpdateMetadata loads the metadata, applies mutate, and writes it back.
func (s *RunStore) UpdateMetadata(runID string, mutate func(*domain.RunMetadata)) (*domain.RunMetadata, error) {
	meta, err := s.LoadMetadata(runID)
	if err != nil {
		return nil, err
	}
	mutate(meta)
	if err := s.SaveMetadata(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func contestantFileName(skillID, testID string, contestant domain.Contestant) string {
	return fmt.Sprintf("%s_%s_%s.md", skillID, testID, contestant)
}

// SaveContestantOutput persists one contestant's response text and returns
// the written path.
func (s *RunStore) SaveContestantOutput(runID, skillID, testID string, contestant domain.Contestant, text string) (string, error) {
	dir := filepath.Join(s.RunDir(runID), contestantsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create contestants directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, contestantFileName(skillID, testID, contestant))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// LoadContestantOutput reads one contestant's saved response text. The error
// wraps fs.ErrNotExist when the output was never produced, so callers can
// substitute a marker and keep the batch going.
func (s *RunStore) LoadContestantOutput(runID, skillID, testID string, contestant domain.Contestant) (string, error) {
	path := filepath.Join(s.RunDir(runID), contestantsDir, contestantFileName(skillID, testID, contestant))

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read contestant output: %w", err)
	}
	return string(raw), nil
}

// SaveReport writes the rendered report, replacing any previous version, and
// returns the written path.
func (s *RunStore) SaveReport(runID, content string) (string, error) {
	dir := s.RunDir(runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, reportFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
