package domain

import (
	"errors"
	"time"
)

// Run-specific errors.
var (
	// ErrMetadataNotFound indicates the run directory has no metadata
	// document, so stages after the first cannot proceed.
	ErrMetadataNotFound = errors.New("run metadata not found")
)

// RunStatus tracks pipeline progress through a run directory's lifecycle.
// Transitions follow: contestants_complete -> jury_complete.
type RunStatus string

// RunStatus enum values stamped into run metadata by each stage.
const (
	// RunStatusContestantsComplete is set once stage 1 has persisted every
	// contestant output and the run metadata.
	RunStatusContestantsComplete RunStatus = "contestants_complete"

	// RunStatusJuryComplete is set once stage 2 has persisted a judgment
	// record for every (test, judge) pair it attempted.
	RunStatusJuryComplete RunStatus = "jury_complete"
)

// IsValidRunStatus reports whether the status is a recognized pipeline stage
// marker.
func IsValidRunStatus(status RunStatus) bool {
	switch status {
	case RunStatusContestantsComplete, RunStatusJuryComplete:
		return true
	default:
		return false
	}
}

// TestCase describes one benchmark prompt for one skill. The same struct
// serves the per-skill YAML suites (yaml tags) and the run metadata document
// (json tags); the loader fills SkillID since suites don't repeat it per test.
type TestCase struct {
	// SkillID names the skill this test belongs to.
	SkillID string `json:"skill_id" yaml:"-" validate:"required"`

	// TestID is the suite-local identifier for this prompt.
	TestID string `json:"test_id" yaml:"id" validate:"required"`

	// TestType categorizes the prompt (trap, comparison, open-ended, ...).
	TestType string `json:"test_type" yaml:"type"`

	// TestName is the human-readable title shown in reports.
	TestName string `json:"test_name" yaml:"name"`

	// Prompt is the exact user message sent to both contestants.
	Prompt string `json:"prompt" yaml:"prompt" validate:"required"`
}

// RunMetadata is the shared state document for one benchmark run.
// Stage 1 creates it, stage 2 stamps jury completion onto it, stage 3 reads
// it to label the report. It lives at the root of the run directory.
type RunMetadata struct {
	// RunID identifies the run directory.
	RunID string `json:"run_id" validate:"required"`

	// Timestamp is when stage 1 started the run.
	Timestamp time.Time `json:"timestamp"`

	// SkillsTested is the resolved skill list the run was asked to benchmark.
	// Skills skipped for a missing test suite stay on the list.
	SkillsTested []string `json:"skills_tested"`

	// TestCases enumerates every prompt that was run, in execution order.
	// Stage 2 iterates this list rather than re-reading suite files.
	TestCases []TestCase `json:"test_cases"`

	// Status is the latest completed pipeline stage.
	Status RunStatus `json:"status"`

	// JuryCompleted is when stage 2 finished, nil until then.
	JuryCompleted *time.Time `json:"jury_completed,omitempty"`

	// JuryModelsUsed lists the judges stage 2 actually called.
	JuryModelsUsed []string `json:"jury_models_used,omitempty"`
}

// Validate checks the metadata document is structurally usable.
func (m *RunMetadata) Validate() error {
	return validate.Struct(m)
}
