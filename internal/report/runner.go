package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spawner-ai/skillbench/internal/skillset"
	"github.com/spawner-ai/skillbench/internal/stats"
	"github.com/spawner-ai/skillbench/internal/store"
)

// Params are the per-invocation arguments of the stage.
type Params struct {
	// RunID names the judged run to report on.
	RunID string

	// SkipImprovementFiles suppresses the per-skill improvement-areas
	// documents, leaving only the run report.
	SkipImprovementFiles bool
}

// Result summarizes a completed report run.
type Result struct {
	RunID            string
	ReportPath       string
	Evaluations      int
	ImprovementFiles []string
}

// Runner executes the report stage.
type Runner struct {
	runs     *store.RunStore
	registry *skillset.Registry
	renderer *Renderer
	logger   *slog.Logger
	out      io.Writer
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

// WithClock fixes the timestamps stamped into the rendered documents.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.renderer.now = now
		}
	}
}

// NewRunner wires the stage with its collaborators.
func NewRunner(runs *store.RunStore, registry *skillset.Registry, opts ...Option) *Runner {
	r := &Runner{
		runs:     runs,
		registry: registry,
		renderer: NewRenderer(),
		logger:   slog.Default(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "report_runner")
	return r
}

// Run aggregates the run's judgments into the benchmark report and, unless
// disabled, one improvement-areas document per evaluated skill. Requires
// stage 1's metadata; aborts without it.
func (r *Runner) Run(params Params) (*Result, error) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "SKILL BENCHMARK - Report Generation")
	fmt.Fprintf(r.out, "Run ID: %s\n", params.RunID)
	fmt.Fprintf(r.out, "%s\n\n", rule)

	meta, err := r.runs.LoadMetadata(params.RunID)
	if err != nil {
		return nil, err
	}
	judgments, err := r.runs.LoadJudgments(params.RunID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(r.out, "Loaded %d jury evaluations\n", len(judgments))

	r.logger.Info("report run starting",
		"run_id", params.RunID, "evaluations", len(judgments))

	summary := stats.Compute(judgments)

	reportPath, err := r.runs.SaveReport(params.RunID, r.renderer.Render(params.RunID, meta, summary))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(r.out, "Report saved: %s\n", reportPath)

	res := &Result{RunID: params.RunID, ReportPath: reportPath, Evaluations: len(judgments)}

	if !params.SkipImprovementFiles {
		fmt.Fprintln(r.out, "\nGenerating skill improvement files...")
		res.ImprovementFiles = r.writeImprovementFiles(summary, params.RunID)
	}

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "Report generation complete!")
	fmt.Fprintf(r.out, "\nView report: %s\n", reportPath)
	fmt.Fprintf(r.out, "%s\n\n", rule)

	r.logger.Info("report run complete",
		"run_id", params.RunID, "report", reportPath, "improvement_files", len(res.ImprovementFiles))

	return res, nil
}

// writeImprovementFiles persists one document per skill that has at least
// one usable evaluation. A skill missing from the registry degrades to a
// warning and the rest of the batch continues.
func (r *Runner) writeImprovementFiles(summary *stats.RunSummary, runID string) []string {
	var written []string
	for _, skillID := range sortedKeys(summary.BySkill) {
		content := r.renderer.RenderImprovementAreas(skillID, summary.BySkill[skillID], runID)
		if content == "" {
			continue
		}

		path, err := r.registry.WriteImprovementAreas(skillID, content)
		if err != nil {
			if errors.Is(err, skillset.ErrSkillNotFound) {
				fmt.Fprintf(r.out, "Warning: Could not find skill folder for %s\n", skillID)
			} else {
				fmt.Fprintf(r.out, "Warning: Could not save improvement areas for %s: %v\n", skillID, err)
			}
			r.logger.Warn("improvement areas not saved", "skill", skillID, "error", err)
			continue
		}

		fmt.Fprintf(r.out, "Improvement areas saved: %s\n", path)
		written = append(written, path)
	}
	return written
}
