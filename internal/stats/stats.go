// Package stats folds judgment records into the run summary consumed by the
// report renderer. All aggregates are explicit typed structs, initialized on
// first touch; error-marked records are excluded from every denominator.
package stats

import (
	"github.com/spawner-ai/skillbench/internal/domain"
)

// Totals counts resolved outcomes. The three win counters always sum to
// Total.
type Totals struct {
	VanillaWins int
	SkilledWins int
	Ties        int
	Total       int
}

// record tallies one resolved outcome.
func (t *Totals) record(outcome domain.Outcome) {
	t.Total++
	switch outcome {
	case domain.OutcomeVanilla:
		t.VanillaWins++
	case domain.OutcomeSkilled:
		t.SkilledWins++
	default:
		t.Ties++
	}
}

// SkilledWinRate returns the skilled win percentage, 0 for an empty tally.
func (t Totals) SkilledWinRate() float64 { return rate(t.SkilledWins, t.Total) }

// VanillaWinRate returns the vanilla win percentage, 0 for an empty tally.
func (t Totals) VanillaWinRate() float64 { return rate(t.VanillaWins, t.Total) }

// TieRate returns the tie percentage, 0 for an empty tally.
func (t Totals) TieRate() float64 { return rate(t.Ties, t.Total) }

func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// ScoreSummary is a tally plus benchmark-score samples and their means.
// Averages over an empty sample list are 0, never NaN.
type ScoreSummary struct {
	Totals
	VanillaScores []float64
	SkilledScores []float64
	VanillaAvg    float64
	SkilledAvg    float64
}

// appendScores collects the non-nil benchmark scores of one judgment.
func (s *ScoreSummary) appendScores(vanilla, skilled *float64) {
	if vanilla != nil {
		s.VanillaScores = append(s.VanillaScores, *vanilla)
	}
	if skilled != nil {
		s.SkilledScores = append(s.SkilledScores, *skilled)
	}
}

// finalize computes the averages after the fold.
func (s *ScoreSummary) finalize() {
	s.VanillaAvg = mean(s.VanillaScores)
	s.SkilledAvg = mean(s.SkilledScores)
}

// Delta is the skilled average minus the vanilla average.
func (s *ScoreSummary) Delta() float64 {
	return s.SkilledAvg - s.VanillaAvg
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// JudgeResult is one judge's resolved verdict on one test, kept for the
// detailed report tables.
type JudgeResult struct {
	Judge        string
	Winner       domain.Outcome
	VanillaScore *float64
	SkilledScore *float64
	Reasoning    string
}

// TestResults groups the judge results for a single test case in load order.
type TestResults struct {
	Judges []JudgeResult
}

// SkillStats aggregates one skill: tally, score samples, and the per-test
// judge results.
type SkillStats struct {
	ScoreSummary
	Tests map[string]*TestResults
}

func (s *SkillStats) test(testID string) *TestResults {
	if s.Tests[testID] == nil {
		s.Tests[testID] = &TestResults{}
	}
	return s.Tests[testID]
}

// RunSummary is the full aggregate of a run's judgments.
type RunSummary struct {
	Overall ScoreSummary
	BySkill map[string]*SkillStats
	ByJudge map[string]*Totals
}

func (r *RunSummary) skill(skillID string) *SkillStats {
	if r.BySkill[skillID] == nil {
		r.BySkill[skillID] = &SkillStats{Tests: make(map[string]*TestResults)}
	}
	return r.BySkill[skillID]
}

func (r *RunSummary) judge(name string) *Totals {
	if r.ByJudge[name] == nil {
		r.ByJudge[name] = &Totals{}
	}
	return r.ByJudge[name]
}

// Compute folds judgment records into a run summary. Input order carries
// through to the per-test judge result lists, so a deterministic loader
// yields a deterministic summary.
func Compute(judgments []domain.Judgment) *RunSummary {
	summary := &RunSummary{
		BySkill: make(map[string]*SkillStats),
		ByJudge: make(map[string]*Totals),
	}

	for i := range judgments {
		j := &judgments[i]
		if j.IsError() {
			continue
		}

		outcome := j.ResolveWinner()
		vanillaScore, skilledScore := j.ResolveScores()

		summary.Overall.record(outcome)
		summary.Overall.appendScores(vanillaScore, skilledScore)

		skill := summary.skill(j.SkillID)
		skill.record(outcome)
		skill.appendScores(vanillaScore, skilledScore)
		skill.test(j.TestID).Judges = append(skill.test(j.TestID).Judges, JudgeResult{
			Judge:        j.Judge,
			Winner:       outcome,
			VanillaScore: vanillaScore,
			SkilledScore: skilledScore,
			Reasoning:    j.Reasoning,
		})

		summary.judge(j.Judge).record(outcome)
	}

	summary.Overall.finalize()
	for _, skill := range summary.BySkill {
		skill.finalize()
	}

	return summary
}
