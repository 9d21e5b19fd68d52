package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spawner-ai/skillbench/internal/domain"
)

// SaveJudgment persists one judgment record under its (skill, test, judge)
// storage key, overwriting any previous evaluation of the same triple.
func (s *RunStore) SaveJudgment(runID string, j *domain.Judgment) error {
	dir := filepath.Join(s.RunDir(runID), juryScoresDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create jury-scores directory %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal judgment %s: %w", j.Key(), err)
	}

	path := filepath.Join(dir, j.Key()+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadJudgments reads every judgment record of a run in filename order, so
// downstream aggregation is deterministic. A run with no jury-scores
// directory simply has no judgments yet: empty slice, nil error.
//
// Files that fail to parse are surfaced as error-marked records carrying the
// raw bytes, keeping them visible without aborting the batch.
func (s *RunStore) LoadJudgments(runID string) ([]domain.Judgment, error) {
	dir := filepath.Join(s.RunDir(runID), juryScoresDir)

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var judgments []domain.Judgment
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var j domain.Judgment
		if err := json.Unmarshal(raw, &j); err != nil {
			j = domain.Judgment{Error: "failed to parse judgment file", Raw: string(raw)}
		}
		annotateFromFilename(&j, entry.Name())

		judgments = append(judgments, j)
	}

	return judgments, nil
}

// annotateFromFilename fills identity fields absent from the record body by
// parsing the storage key. Embedded fields are authoritative; the parse only
// covers records written by older tooling that kept identity in the filename.
func annotateFromFilename(j *domain.Judgment, name string) {
	if j.SkillID != "" && j.TestID != "" && j.Judge != "" {
		return
	}

	skillID, testID, judge := parseLegacyKey(strings.TrimSuffix(name, ".json"))
	if j.SkillID == "" {
		j.SkillID = skillID
	}
	if j.TestID == "" {
		j.TestID = testID
	}
	if j.Judge == "" {
		// The body's jury_model beats the filename when present.
		if j.JuryModel != "" {
			j.Judge = j.JuryModel
		} else {
			j.Judge = judge
		}
	}
}

// parseLegacyKey splits a {skill}_{test}_{judge} storage key: the judge is
// the last underscore-delimited segment, the test identifier is everything
// before it, and the skill is the test identifier minus its own last
// segment. Identifiers with irregular underscores parse ambiguously, which
// is why embedded identity superseded this scheme.
func parseLegacyKey(stem string) (skillID, testID, judge string) {
	i := strings.LastIndex(stem, "_")
	if i < 0 {
		return stem, stem, stem
	}

	judge = stem[i+1:]
	testID = stem[:i]

	skillID = testID
	if k := strings.LastIndex(testID, "_"); k >= 0 {
		skillID = testID[:k]
	}
	return skillID, testID, judge
}
