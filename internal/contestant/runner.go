// Package contestant implements stage 1 of the benchmark pipeline. Every
// test prompt is answered twice by the same model, once bare and once primed
// with the skill's expertise, and both outputs are persisted for the jury
// stage. Failed calls persist an ERROR marker instead of aborting the batch.
package contestant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spawner-ai/skillbench/internal/config"
	"github.com/spawner-ai/skillbench/internal/domain"
	"github.com/spawner-ai/skillbench/internal/llm"
	"github.com/spawner-ai/skillbench/internal/llm/providers"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
	"github.com/spawner-ai/skillbench/internal/skillset"
	"github.com/spawner-ai/skillbench/internal/store"
)

// ErrMissingAnthropicKey aborts the stage before any call is made; both
// contestants run on the Anthropic model.
var ErrMissingAnthropicKey = errors.New("ANTHROPIC_API_KEY not set")

// runIDLayout names run directories by local start time.
const runIDLayout = "2006-01-02-150405"

// skilledPromptFrame wraps the expertise text into the skilled contestant's
// system prompt. The wording is part of the benchmark contract; changing it
// changes what is being measured.
const skilledPromptFrame = `You are an expert with deep domain knowledge. Apply the following expertise when responding:

%s

Use this knowledge to provide expert-level responses, catching common mistakes and applying best practices.`

// Params are the per-invocation arguments of the stage.
type Params struct {
	// Skills is the raw --skills argument: "all" (or empty) for the
	// configured list, otherwise a comma-separated list of skill IDs.
	Skills string

	// TestID, when set, restricts the run to a single test case.
	TestID string

	// RunID overrides the generated timestamp ID, letting a rerun write
	// into an existing run directory.
	RunID string
}

// Result summarizes a completed contestant run.
type Result struct {
	RunID          string
	SkillsTested   []string
	TestsCompleted int
}

// Runner executes the contestant stage.
type Runner struct {
	cfg      *config.Config
	client   llm.Client
	runs     *store.RunStore
	registry *skillset.Registry
	logger   *slog.Logger
	out      io.Writer
	now      func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger routes diagnostics to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput redirects progress printing, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithClock fixes the time source used for run IDs and metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner wires the stage with its collaborators.
func NewRunner(cfg *config.Config, client llm.Client, runs *store.RunStore, registry *skillset.Registry, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		client:   client,
		runs:     runs,
		registry: registry,
		logger:   slog.Default(),
		out:      os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "contestant_runner")
	return r
}

// Run executes the full contestant batch and writes the run metadata.
// Individual call failures are recorded as ERROR outputs; only missing
// credentials or filesystem failures abort the stage.
func (r *Runner) Run(ctx context.Context, params Params) (*Result, error) {
	if r.cfg.Keys.Anthropic == "" {
		return nil, ErrMissingAnthropicKey
	}

	skills := r.resolveSkills(params.Skills)
	runID := params.RunID
	if runID == "" {
		runID = r.now().Format(runIDLayout)
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "SKILL BENCHMARK - Contestant Run")
	fmt.Fprintf(r.out, "Run ID: %s\n", runID)
	fmt.Fprintf(r.out, "Skills: %s\n", strings.Join(skills, ", "))
	fmt.Fprintf(r.out, "%s\n\n", rule)

	r.logger.Info("contestant run starting", "run_id", runID, "skills", skills)

	var testCases []domain.TestCase

	for _, skillID := range skills {
		fmt.Fprintf(r.out, "\n--- Skill: %s ---\n", skillID)

		suite, err := skillset.LoadSuite(r.cfg.Paths.TestCases, skillID)
		if errors.Is(err, skillset.ErrSuiteNotFound) {
			fmt.Fprintf(r.out, "  Skipping %s - no test cases found\n", skillID)
			r.logger.Warn("skill has no test suite", "skill", skillID)
			continue
		}
		if err != nil {
			return nil, err
		}

		expertise, err := r.registry.LoadExpertise(suite.SkillPath)
		if err != nil {
			return nil, err
		}
		if expertise == "" {
			fmt.Fprintf(r.out, "  Warning: No skill content found for %s\n", suite.SkillPath)
			r.logger.Warn("skill expertise is empty", "skill", skillID, "skill_path", suite.SkillPath)
		} else {
			fmt.Fprintf(r.out, "  Loaded skill content (%d chars)\n", utf8.RuneCountInString(expertise))
		}

		for _, test := range suite.Tests {
			if params.TestID != "" && test.TestID != params.TestID {
				continue
			}

			fmt.Fprintf(r.out, "\n  Test: %s (%s)\n", test.TestID, test.TestType)

			fmt.Fprintln(r.out, "    Running vanilla...")
			if err := r.runOne(ctx, runID, test, domain.ContestantVanilla, ""); err != nil {
				return nil, err
			}

			fmt.Fprintln(r.out, "    Running skilled...")
			if err := r.runOne(ctx, runID, test, domain.ContestantSkilled, expertise); err != nil {
				return nil, err
			}

			testCases = append(testCases, test)
		}
	}

	meta := &domain.RunMetadata{
		RunID:        runID,
		Timestamp:    r.now(),
		SkillsTested: skills,
		TestCases:    testCases,
		Status:       domain.RunStatusContestantsComplete,
	}
	if err := r.runs.SaveMetadata(meta); err != nil {
		return nil, err
	}

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "Contestant run complete!")
	fmt.Fprintf(r.out, "Run ID: %s\n", runID)
	fmt.Fprintf(r.out, "Tests completed: %d\n", len(testCases))
	fmt.Fprintln(r.out, "\nNext step:")
	fmt.Fprintf(r.out, "  skillbench jury --run-id %s\n", runID)
	fmt.Fprintf(r.out, "%s\n\n", rule)

	r.logger.Info("contestant run complete", "run_id", runID, "tests", len(testCases))

	return &Result{
		RunID:          runID,
		SkillsTested:   skills,
		TestsCompleted: len(testCases),
	}, nil
}

// runOne calls the model for one contestant and persists the output. A call
// failure persists an ERROR marker and returns nil; only the write failing
// propagates an error.
func (r *Runner) runOne(ctx context.Context, runID string, test domain.TestCase, contestant domain.Contestant, expertise string) error {
	text := r.complete(ctx, test, contestant, expertise)

	path, err := r.runs.SaveContestantOutput(runID, test.SkillID, test.TestID, contestant, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "  Saved: %s\n", filepath.Base(path))
	return nil
}

func (r *Runner) complete(ctx context.Context, test domain.TestCase, contestant domain.Contestant, expertise string) string {
	model := r.cfg.Contestants.Vanilla.Model
	if contestant == domain.ContestantSkilled {
		model = r.cfg.Contestants.Skilled.Model
	}

	req := &transport.Request{
		Operation:    transport.OpContestant,
		Provider:     providers.ProviderAnthropic,
		Model:        model,
		Prompt:       test.Prompt,
		SystemPrompt: skilledSystemPrompt(expertise),
		MaxTokens:    r.cfg.Settings.ContestantMaxTokens,
		Temperature:  r.cfg.Settings.ContestantTemperature,
		TraceID:      fmt.Sprintf("%s_%s_%s", test.SkillID, test.TestID, contestant),
	}

	resp, err := r.client.Complete(ctx, req)
	if err != nil {
		r.logger.Error("contestant call failed",
			"skill", test.SkillID,
			"test", test.TestID,
			"contestant", contestant,
			"error", err,
		)
		return "ERROR: " + err.Error()
	}
	return resp.Content
}

// skilledSystemPrompt frames the expertise text; empty expertise means no
// system prompt at all, making the skilled call identical to the vanilla one.
func skilledSystemPrompt(expertise string) string {
	if expertise == "" {
		return ""
	}
	return fmt.Sprintf(skilledPromptFrame, expertise)
}

func (r *Runner) resolveSkills(arg string) []string {
	if arg == "" || arg == "all" {
		return r.cfg.SkillsToTest
	}

	parts := strings.Split(arg, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
