// Package jury implements stage 2 of the benchmark pipeline. Each test's two
// contestant outputs are shuffled into blinded A/B positions and put before
// every available judge model; each verdict is persisted as one judgment
// record. Failed calls and unparseable replies become error records so a
// single bad evaluation never aborts the batch.
package jury

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/spawner-ai/skillbench/internal/config"
	"github.com/spawner-ai/skillbench/internal/domain"
	"github.com/spawner-ai/skillbench/internal/llm"
	"github.com/spawner-ai/skillbench/internal/llm/transport"
	"github.com/spawner-ai/skillbench/internal/store"
)

// ErrNoJudges aborts the stage when every requested judge was filtered out
// for a missing API key or unknown name.
var ErrNoJudges = errors.New("no jury models available")

// Params are the per-invocation arguments of the stage.
type Params struct {
	// RunID names the contestant run to judge.
	RunID string

	// Jury is the raw --jury argument: a comma-separated subset of the
	// configured judges, empty for all of them.
	Jury string
}

// Result summarizes a completed jury run.
type Result struct {
	RunID       string
	JudgesUsed  []string
	Evaluations int
	Errors      int
}

// Runner executes the jury stage.
type Runner struct {
	cfg       *config.Config
	client    llm.Client
	runs      *store.RunStore
	logger    *slog.Logger
	out       io.Writer
	now       func() time.Time
	randFloat func() float64
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

// WithClock fixes the time source stamped into metadata and judgments.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRandSource fixes the randomness behind A/B position shuffling.
func WithRandSource(src rand.Source) Option {
	return func(r *Runner) {
		if src != nil {
			r.randFloat = rand.New(src).Float64
		}
	}
}

// NewRunner wires the stage with its collaborators.
func NewRunner(cfg *config.Config, client llm.Client, runs *store.RunStore, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		client:    client,
		runs:      runs,
		logger:    slog.Default(),
		out:       os.Stdout,
		now:       time.Now,
		randFloat: rand.Float64,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "jury_runner")
	return r
}

// Run judges every test case of the run with every available judge and
// stamps jury completion onto the metadata. Requires stage 1's metadata;
// aborts without it.
func (r *Runner) Run(ctx context.Context, params Params) (*Result, error) {
	meta, err := r.runs.LoadMetadata(params.RunID)
	if err != nil {
		return nil, err
	}

	judges, err := r.selectJudges(params.Jury)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(judges))
	for i, judge := range judges {
		names[i] = judge.Name
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "SKILL BENCHMARK - Jury Scoring")
	fmt.Fprintf(r.out, "Run ID: %s\n", params.RunID)
	fmt.Fprintf(r.out, "Jury Models: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(r.out, "Test Cases: %d\n", len(meta.TestCases))
	fmt.Fprintf(r.out, "%s\n\n", rule)

	r.logger.Info("jury run starting",
		"run_id", params.RunID, "judges", names, "tests", len(meta.TestCases))

	res := &Result{RunID: params.RunID, JudgesUsed: names}

	for _, tc := range meta.TestCases {
		fmt.Fprintf(r.out, "\n--- %s/%s ---\n", tc.SkillID, tc.TestID)

		vanillaText := r.loadOutput(params.RunID, tc, domain.ContestantVanilla)
		skilledText := r.loadOutput(params.RunID, tc, domain.ContestantSkilled)

		for _, judge := range judges {
			fmt.Fprintf(r.out, "  Jury: %s... ", judge.Name)

			j := r.evaluate(ctx, tc, judge, vanillaText, skilledText)
			if j.IsError() {
				fmt.Fprintf(r.out, "ERROR: %s\n", j.Error)
				res.Errors++
			} else {
				fmt.Fprintf(r.out, "Winner: %s\n", j.ResolveWinner())
			}

			if err := r.runs.SaveJudgment(params.RunID, &j); err != nil {
				return nil, err
			}
			res.Evaluations++
		}
	}

	completed := r.now()
	if _, err := r.runs.UpdateMetadata(params.RunID, func(m *domain.RunMetadata) {
		m.JuryCompleted = &completed
		m.JuryModelsUsed = names
		m.Status = domain.RunStatusJuryComplete
	}); err != nil {
		return nil, err
	}

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "Jury scoring complete!")
	fmt.Fprintln(r.out, "\nNext step:")
	fmt.Fprintf(r.out, "  skillbench report --run-id %s\n", params.RunID)
	fmt.Fprintf(r.out, "%s\n\n", rule)

	r.logger.Info("jury run complete",
		"run_id", params.RunID, "evaluations", res.Evaluations, "errors", res.Errors)

	return res, nil
}

// selectJudges resolves the requested judge names against the configuration
// and drops any judge whose provider has no API key. Skips warn, an empty
// result aborts.
func (r *Runner) selectJudges(arg string) ([]config.Juror, error) {
	var requested []string
	if arg == "" {
		for _, juror := range r.cfg.Jury {
			requested = append(requested, juror.Name)
		}
	} else {
		for _, part := range strings.Split(arg, ",") {
			if name := strings.TrimSpace(part); name != "" {
				requested = append(requested, name)
			}
		}
	}

	var judges []config.Juror
	for _, name := range requested {
		juror, ok := r.jurorByName(name)
		if !ok {
			fmt.Fprintf(r.out, "Warning: Skipping %s - not in jury configuration\n", name)
			r.logger.Warn("jury model not configured", "judge", name)
			continue
		}
		if r.cfg.Keys.ForProvider(juror.Provider) == "" {
			fmt.Fprintf(r.out, "Warning: Skipping %s - no API key configured\n", name)
			r.logger.Warn("jury model has no api key", "judge", name, "provider", juror.Provider)
			continue
		}
		judges = append(judges, juror)
	}

	if len(judges) == 0 {
		return nil, ErrNoJudges
	}
	return judges, nil
}

func (r *Runner) jurorByName(name string) (config.Juror, bool) {
	for _, juror := range r.cfg.Jury {
		if juror.Name == name {
			return juror, true
		}
	}
	return config.Juror{}, false
}

// loadOutput reads one contestant's saved text. A missing file substitutes an
// inline marker so the judge still sees both slots and the batch continues.
func (r *Runner) loadOutput(runID string, tc domain.TestCase, contestant domain.Contestant) string {
	text, err := r.runs.LoadContestantOutput(runID, tc.SkillID, tc.TestID, contestant)
	if err != nil {
		r.logger.Warn("contestant output missing",
			"skill", tc.SkillID, "test", tc.TestID, "contestant", contestant, "error", err)
		return fmt.Sprintf("ERROR: Output not found for %s_%s_%s", tc.SkillID, tc.TestID, contestant)
	}
	return text
}

// evaluate runs one judge over one test: shuffle positions, render the
// prompt, call the model, parse the verdict. Every failure path returns an
// error-marked judgment rather than an error.
func (r *Runner) evaluate(ctx context.Context, tc domain.TestCase, judge config.Juror, vanillaText, skilledText string) domain.Judgment {
	positions := domain.NewPositionMap(r.randFloat() >= 0.5)
	responseA, responseB := bySide(positions, vanillaText, skilledText)

	prompt, err := RenderPrompt(tc.Prompt, responseA, responseB)
	if err != nil {
		return domain.NewErrorJudgment(tc.SkillID, tc.TestID, judge.Name, positions, err.Error(), "")
	}
	hash := HashPrompt(prompt)

	req := &transport.Request{
		Operation:   transport.OpJudgment,
		Provider:    judge.Provider,
		Model:       judge.Model,
		Prompt:      prompt,
		MaxTokens:   r.cfg.Settings.JuryMaxTokens,
		Temperature: r.cfg.Settings.JuryTemperature,
		TraceID:     fmt.Sprintf("%s_%s_%s", tc.SkillID, tc.TestID, judge.Name),
	}

	resp, err := r.client.Complete(ctx, req)
	if err != nil {
		r.logger.Error("judge call failed",
			"judge", judge.Name, "skill", tc.SkillID, "test", tc.TestID, "error", err)
		j := domain.NewErrorJudgment(tc.SkillID, tc.TestID, judge.Name, positions, err.Error(), "")
		j.PromptHash = hash
		return j
	}

	v, err := parseVerdict(resp.Content)
	if err != nil {
		r.logger.Warn("verdict parse failed",
			"judge", judge.Name, "skill", tc.SkillID, "test", tc.TestID, "error", err)
		j := domain.NewErrorJudgment(tc.SkillID, tc.TestID, judge.Name, positions, parseFailureMessage, resp.Content)
		j.PromptHash = hash
		return j
	}
	if v.Error != "" {
		j := domain.NewErrorJudgment(tc.SkillID, tc.TestID, judge.Name, positions, v.Error, resp.Content)
		j.PromptHash = hash
		return j
	}

	j := domain.NewJudgment(tc.SkillID, tc.TestID, judge.Name, positions)
	j.ResponseA = v.ResponseA
	j.ResponseB = v.ResponseB
	j.Winner = v.Winner
	j.Reasoning = v.Reasoning
	j.PromptHash = hash
	return j
}

// bySide orders the contestant texts into their blinded slots.
func bySide(positions domain.PositionMap, vanilla, skilled string) (responseA, responseB string) {
	if positions[domain.SideA] == domain.ContestantSkilled {
		return skilled, vanilla
	}
	return vanilla, skilled
}
