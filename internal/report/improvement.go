package report

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spawner-ai/skillbench/internal/domain"
	"github.com/spawner-ai/skillbench/internal/stats"
)

var titleCaser = cases.Title(language.English)

// testVotes is one test's jury tally for the win/loss partition.
type testVotes struct {
	testID  string
	results *stats.TestResults
	skilled int
	vanilla int
}

// RenderImprovementAreas produces the improvement-areas.md content for one
// skill. Returns "" when the skill has no evaluations; callers skip writing
// the file in that case.
func (r *Renderer) RenderImprovementAreas(skillID string, skill *stats.SkillStats, runID string) string {
	if skill == nil || skill.Total == 0 {
		return ""
	}

	wins, losses := partitionByVotes(skill)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Skill - Improvement Areas\n\n", skillTitle(skillID))
	fmt.Fprintf(&b, "> Generated from benchmark run %s\n\n", runID)

	b.WriteString("## Benchmark Summary\n\n")
	marker := "⚠️ BELOW TARGET"
	if skill.SkilledWinRate() >= PassThresholdPct {
		marker = "✅"
	}
	renderTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Win Rate", fmt.Sprintf("%.1f%% %s", skill.SkilledWinRate(), marker)},
		{"Avg Score Delta", fmt.Sprintf("%+.1f (Skilled: %.1f, Vanilla: %.1f)", skill.Delta(), skill.SkilledAvg, skill.VanillaAvg)},
		{"Tests Evaluated", strconv.Itoa(skill.Total)},
	})

	if len(losses) > 0 {
		b.WriteString("## Tests Where Skill Lost\n\n")
		for _, loss := range losses {
			fmt.Fprintf(&b, "### %s\n", loss.testID)
			fmt.Fprintf(&b, "- **Jury vote:** Vanilla %d - Skilled %d\n", loss.vanilla, loss.skilled)
			b.WriteString("- **Jury reasoning:**\n")
			for _, res := range loss.results.Judges {
				if res.Winner == domain.OutcomeVanilla {
					fmt.Fprintf(&b, "  - %s: %s\n", res.Judge, reasoningOrDefault(res.Reasoning))
				}
			}
			b.WriteString("- **Root cause:** [TODO: Analyze]\n")
			b.WriteString("- **Action:** [TODO: Define fix]\n")
			b.WriteString("- **Status:** [ ] Not started\n\n")
		}
	}

	if len(wins) > 0 {
		b.WriteString("## Tests Where Skill Won (Reinforce)\n\n")
		for _, win := range wins {
			fmt.Fprintf(&b, "### %s\n", win.testID)
			fmt.Fprintf(&b, "- **Jury vote:** Skilled %d - Vanilla %d\n", win.skilled, win.vanilla)
			for _, res := range win.results.Judges {
				if res.Winner == domain.OutcomeSkilled {
					fmt.Fprintf(&b, "- **Why it won (%s):** %s\n", res.Judge, reasoningOrDefault(res.Reasoning))
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Improvement Backlog\n\n")
	b.WriteString("- [ ] Review tests where skill lost\n")
	b.WriteString("- [ ] Analyze jury reasoning for patterns\n")
	b.WriteString("- [ ] Update sharp edges if gaps found\n")
	b.WriteString("- [ ] Strengthen identity if expertise lacking\n")
	b.WriteString("- [ ] Re-run benchmark after fixes\n\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*Last updated: %s*\n", r.now().Format("2006-01-02"))

	return b.String()
}

// partitionByVotes splits tests into jury-majority wins and losses. Tests
// with a split or all-tie vote appear in neither list.
func partitionByVotes(skill *stats.SkillStats) (wins, losses []testVotes) {
	for _, testID := range sortedKeys(skill.Tests) {
		results := skill.Tests[testID]
		votes := testVotes{testID: testID, results: results}
		for _, res := range results.Judges {
			switch res.Winner {
			case domain.OutcomeSkilled:
				votes.skilled++
			case domain.OutcomeVanilla:
				votes.vanilla++
			}
		}
		switch {
		case votes.skilled > votes.vanilla:
			wins = append(wins, votes)
		case votes.vanilla > votes.skilled:
			losses = append(losses, votes)
		}
	}
	return wins, losses
}

// skillTitle turns a kebab-case skill ID into a document heading.
func skillTitle(skillID string) string {
	return titleCaser.String(strings.ReplaceAll(skillID, "-", " "))
}

func reasoningOrDefault(reasoning string) string {
	if reasoning == "" {
		return "No reasoning provided"
	}
	return reasoning
}
