// Package skillset reads the skill registry and per-skill test suites. The
// registry root contains category directories, each holding skill
// directories; a skill is addressed either by its bare ID (category scanned)
// or by its registry-relative path.
package skillset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Registry errors.
var (
	// ErrSkillNotFound indicates no category contains the skill directory.
	ErrSkillNotFound = errors.New("skill not found")

	// ErrSuiteNotFound indicates a skill has no test-case file.
	ErrSuiteNotFound = errors.New("test suite not found")
)

// improvementFileName is the per-skill feedback document written by stage 3.
const improvementFileName = "improvement-areas.md"

// Registry looks up skills under a filesystem root.
type Registry struct {
	root string
}

// NewRegistry creates a registry rooted at dir.
func NewRegistry(dir string) *Registry {
	return &Registry{root: dir}
}

// Find scans category directories in sorted order and returns the path of
// the first directory matching the skill ID. Returns ErrSkillNotFound when
// no category has it.
func (r *Registry) Find(skillID string) (string, error) {
	categories, err := os.ReadDir(r.root)
	if err != nil {
		return "", fmt.Errorf("read skill registry %s: %w", r.root, err)
	}

	for _, category := range categories {
		if !category.IsDir() {
			continue
		}
		candidate := filepath.Join(r.root, category.Name(), skillID)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrSkillNotFound, skillID)
}

// WriteImprovementAreas saves the improvement document into the skill's
// directory, replacing any previous version. Returns the written path.
func (r *Registry) WriteImprovementAreas(skillID, content string) (string, error) {
	dir, err := r.Find(skillID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, improvementFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
