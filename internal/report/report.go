// Package report implements stage 3: it aggregates a run's judgment records
// and renders the markdown documents, the benchmark report plus the
// per-skill improvement-areas files. Rendering is pure and iterates maps
// over sorted keys, so the output is deterministic except for the generation
// timestamp; persistence is the Runner's job.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spawner-ai/skillbench/internal/domain"
	"github.com/spawner-ai/skillbench/internal/stats"
)

// PassThresholdPct is the skilled win rate a skill must reach to pass. The
// benchmark exists to prove skills help at least this often; it is a design
// constant, not configuration.
const PassThresholdPct = 70.0

// emptyReport is produced when a run has zero usable evaluations.
const emptyReport = "# Benchmark Report\n\nNo results found."

// Renderer builds the markdown documents.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a renderer stamping documents with the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render produces the full benchmark report for a run.
func (r *Renderer) Render(runID string, meta *domain.RunMetadata, summary *stats.RunSummary) string {
	if summary.Overall.Total == 0 {
		return emptyReport
	}

	var b strings.Builder
	r.writeHeader(&b, runID, meta)
	r.writeOverall(&b, summary.Overall)
	r.writeByJudge(&b, summary)
	r.writeBySkill(&b, summary)
	r.writeDetailedResults(&b, summary)
	r.writeFooter(&b)
	return b.String()
}

func (r *Renderer) writeHeader(b *strings.Builder, runID string, meta *domain.RunMetadata) {
	date := "Unknown"
	var skills, judges []string
	if meta != nil {
		if !meta.Timestamp.IsZero() {
			date = meta.Timestamp.Format(time.RFC3339)
		}
		skills = meta.SkillsTested
		judges = meta.JuryModelsUsed
	}

	b.WriteString("# Skill Benchmark Report\n\n")
	fmt.Fprintf(b, "**Run ID:** %s\n", runID)
	fmt.Fprintf(b, "**Date:** %s\n", date)
	fmt.Fprintf(b, "**Skills Tested:** %s\n", strings.Join(skills, ", "))
	fmt.Fprintf(b, "**Jury Models:** %s\n\n", strings.Join(judges, ", "))
	b.WriteString("---\n\n")
}

func (r *Renderer) writeOverall(b *strings.Builder, overall stats.ScoreSummary) {
	b.WriteString("## Overall Results\n\n")

	b.WriteString("```\n")
	b.WriteString("                    Vanilla    Skilled    Delta\n")
	fmt.Fprintf(b, "Avg Benchmark:      %.1f        %.1f       %+.1f\n",
		overall.VanillaAvg, overall.SkilledAvg, overall.Delta())
	fmt.Fprintf(b, "Win Rate:           %.0f%%         %.0f%%\n",
		overall.VanillaWinRate(), overall.SkilledWinRate())
	b.WriteString("```\n\n")

	renderTable(b, []string{"Metric", "Value"}, [][]string{
		{"Skilled Wins", fmt.Sprintf("%d (%.1f%%)", overall.SkilledWins, overall.SkilledWinRate())},
		{"Vanilla Wins", fmt.Sprintf("%d (%.1f%%)", overall.VanillaWins, overall.VanillaWinRate())},
		{"Ties", fmt.Sprintf("%d (%.1f%%)", overall.Ties, overall.TieRate())},
		{"Total Evaluations", strconv.Itoa(overall.Total)},
	})

	marker := "❌ BELOW TARGET"
	if overall.SkilledWinRate() >= PassThresholdPct {
		marker = "✅ PASS"
	}
	fmt.Fprintf(b, "**Target: %.0f%% skilled win rate** %s\n\n", PassThresholdPct, marker)
	b.WriteString("---\n\n")
}

func (r *Renderer) writeByJudge(b *strings.Builder, summary *stats.RunSummary) {
	b.WriteString("## Results by Jury Model\n\n")

	for _, judge := range sortedKeys(summary.ByJudge) {
		tally := summary.ByJudge[judge]
		if tally.Total == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n", judge)
		fmt.Fprintf(b, "- Skilled wins: %d/%d (%.0f%%)\n", tally.SkilledWins, tally.Total, tally.SkilledWinRate())
		fmt.Fprintf(b, "- Vanilla wins: %d/%d\n", tally.VanillaWins, tally.Total)
		fmt.Fprintf(b, "- Ties: %d/%d\n\n", tally.Ties, tally.Total)
	}

	b.WriteString("---\n\n")
}

func (r *Renderer) writeBySkill(b *strings.Builder, summary *stats.RunSummary) {
	b.WriteString("## Results by Skill\n\n")

	for _, skillID := range sortedKeys(summary.BySkill) {
		skill := summary.BySkill[skillID]
		if skill.Total == 0 {
			continue
		}

		marker := "⚠️"
		if skill.SkilledWinRate() >= PassThresholdPct {
			marker = "✅"
		}
		fmt.Fprintf(b, "### %s %s\n\n", skillID, marker)

		renderTable(b, []string{"Metric", "Vanilla", "Skilled", "Delta"}, [][]string{
			{
				"Avg Score",
				fmt.Sprintf("%.1f", skill.VanillaAvg),
				fmt.Sprintf("%.1f", skill.SkilledAvg),
				fmt.Sprintf("%+.1f", skill.Delta()),
			},
			{
				"Wins",
				strconv.Itoa(skill.VanillaWins),
				strconv.Itoa(skill.SkilledWins),
				"-",
			},
		})
	}

	b.WriteString("---\n\n")
}

func (r *Renderer) writeDetailedResults(b *strings.Builder, summary *stats.RunSummary) {
	b.WriteString("## Detailed Test Results\n\n")

	for _, skillID := range sortedKeys(summary.BySkill) {
		skill := summary.BySkill[skillID]
		fmt.Fprintf(b, "### %s\n\n", skillID)

		for _, testID := range sortedKeys(skill.Tests) {
			fmt.Fprintf(b, "#### %s\n\n", testID)

			results := skill.Tests[testID]
			rows := make([][]string, 0, len(results.Judges))
			for _, res := range results.Judges {
				rows = append(rows, []string{
					res.Judge,
					string(res.Winner),
					scoreCell(res.VanillaScore),
					scoreCell(res.SkilledScore),
					sanitizeCell(truncate(res.Reasoning, reasoningLimit)),
				})
			}
			renderTable(b, []string{"Jury", "Winner", "Vanilla", "Skilled", "Reasoning"}, rows)
		}
	}

	b.WriteString("---\n\n")
}

func (r *Renderer) writeFooter(b *strings.Builder) {
	b.WriteString("## Improvement Recommendations\n\n")
	b.WriteString("Based on these results, focus on:\n\n")
	fmt.Fprintf(b, "1. **Skills below %.0f%% win rate** - Review sharp edges and identity\n", PassThresholdPct)
	b.WriteString("2. **Tests where skilled lost** - Analyze what vanilla did better\n")
	b.WriteString("3. **Low jury agreement** - May indicate ambiguous test cases\n\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(b, "*Generated: %s*\n", r.now().Format(time.RFC3339))
}

// scoreCell formats a nullable benchmark score for a table cell.
func scoreCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
