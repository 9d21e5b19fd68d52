package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Judgment-specific errors.
var (
	// ErrInvalidJudgment is returned when judgment validation fails due to
	// missing identity fields or a malformed position map.
	ErrInvalidJudgment = errors.New("invalid judgment")
)

// Contestant identifies one of the two assistant modes under comparison.
type Contestant string

// Contestant enum values for the two modes every test is run in.
const (
	// ContestantVanilla is the bare model with no injected expertise.
	ContestantVanilla Contestant = "vanilla"

	// ContestantSkilled is the model primed with the skill's expertise text.
	ContestantSkilled Contestant = "skilled"
)

// IsValid reports whether the contestant is one of the two recognized modes.
func (c Contestant) IsValid() bool {
	switch c {
	case ContestantVanilla, ContestantSkilled:
		return true
	default:
		return false
	}
}

// Outcome is a judgment after blind positions are resolved: one of the two
// contestants, or a tie.
type Outcome string

// Outcome enum values.
const (
	// OutcomeVanilla means the vanilla response won the comparison.
	OutcomeVanilla Outcome = "vanilla"

	// OutcomeSkilled means the skilled response won the comparison.
	OutcomeSkilled Outcome = "skilled"

	// OutcomeTie covers declared ties and every unresolvable verdict.
	OutcomeTie Outcome = "tie"
)

// Side is a blinded presentation slot in the jury prompt.
type Side string

// Side enum values. Judges only ever see these two labels.
const (
	SideA Side = "A"
	SideB Side = "B"
)

// WinnerTie is the literal sentinel judges declare in the winner field when
// neither response is better. Any other unrecognized value resolves the same
// way, but this is the one the jury prompt asks for.
const WinnerTie = "Tie"

// PositionMap records which contestant occupied which presentation slot for a
// single evaluation. The jury stage generates it once per (test, judge) pair
// and stores it verbatim on the judgment so the verdict resolves
// deterministically long after the shuffle happened.
type PositionMap map[Side]Contestant

// NewPositionMap assigns the two contestants to presentation slots.
// skilledFirst places the skilled response at side A.
func NewPositionMap(skilledFirst bool) PositionMap {
	if skilledFirst {
		return PositionMap{SideA: ContestantSkilled, SideB: ContestantVanilla}
	}
	return PositionMap{SideA: ContestantVanilla, SideB: ContestantSkilled}
}

// IsValid reports whether the map assigns a distinct recognized contestant to
// both sides.
func (m PositionMap) IsValid() bool {
	a, b := m[SideA], m[SideB]
	return a.IsValid() && b.IsValid() && a != b
}

// SideScores holds the rubric scores a judge reported for one blinded side.
// Every field is a pointer: judges omit scores often enough that absent must
// stay distinguishable from zero, and absent scores are excluded from
// averages rather than dragging them down.
type SideScores struct {
	// Correctness rates technical accuracy on a 1-10 scale.
	Correctness *float64 `json:"correctness,omitempty"`

	// Completeness rates coverage of the important aspects on a 1-10 scale.
	Completeness *float64 `json:"completeness,omitempty"`

	// Expertise rates apparent depth of domain knowledge on a 1-10 scale.
	Expertise *float64 `json:"expertise,omitempty"`

	// GotchaAwareness rates mention of pitfalls and edge cases on a 1-10 scale.
	GotchaAwareness *float64 `json:"gotcha_awareness,omitempty"`

	// BenchmarkScore is the judge's overall 0-100 quality score. It is the
	// only score the aggregator folds into averages.
	BenchmarkScore *float64 `json:"benchmark_score,omitempty"`
}

// Judgment is one judge's evaluation of one test: both blinded sides' scores,
// the declared winner, and the position map needed to un-blind them.
//
// Identity (skill, test, judge) travels inside the record. The storage
// filename encodes the same triple for uniqueness, but readers must not need
// to parse it; the filename is a key, not the record of truth.
type Judgment struct {
	// ID uniquely identifies this judgment record.
	ID string `json:"id,omitempty"`

	// SkillID names the skill whose test was evaluated.
	SkillID string `json:"skill_id,omitempty" validate:"required"`

	// TestID names the test case that was evaluated.
	TestID string `json:"test_id,omitempty" validate:"required"`

	// Judge names the jury member that produced this judgment.
	Judge string `json:"judge,omitempty" validate:"required"`

	// JuryModel mirrors Judge. Records written by earlier tooling carry only
	// this field, so it is kept on the wire shape.
	JuryModel string `json:"jury_model,omitempty"`

	// PositionMap is the side-to-contestant assignment used for this
	// evaluation. Present on error records too.
	PositionMap PositionMap `json:"position_map,omitempty"`

	// ResponseA and ResponseB carry the judge's scores for each blinded side.
	// Nil on error records.
	ResponseA *SideScores `json:"response_a,omitempty"`
	ResponseB *SideScores `json:"response_b,omitempty"`

	// Winner is the side the judge declared better: "A", "B", or the tie
	// sentinel. Unrecognized values resolve to a tie, never an error.
	Winner string `json:"winner,omitempty"`

	// Reasoning is the judge's free-text justification.
	Reasoning string `json:"reasoning,omitempty"`

	// Error marks the record as unusable for aggregation: the judge call or
	// verdict parse failed. Error records stay on disk for inspection but
	// are excluded from every statistic.
	Error string `json:"error,omitempty"`

	// Raw preserves the unparseable judge output when Error is set for a
	// parse failure.
	Raw string `json:"raw,omitempty"`

	// PromptHash is the SHA-256 of the rendered jury prompt, kept so a
	// verdict can be traced back to the exact prompt that produced it.
	PromptHash string `json:"prompt_hash,omitempty"`

	// CreatedAt is when the jury stage wrote this record.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// NewJudgment creates a judgment with identity and provenance filled in.
// Scores and winner are set by the caller after parsing the verdict.
func NewJudgment(skillID, testID, judge string, positions PositionMap) Judgment {
	return Judgment{
		ID:          uuid.New().String(),
		SkillID:     skillID,
		TestID:      testID,
		Judge:       judge,
		JuryModel:   judge,
		PositionMap: positions,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewErrorJudgment records a failed evaluation so the batch can continue.
// raw may be empty when the failure happened before any judge output existed.
func NewErrorJudgment(skillID, testID, judge string, positions PositionMap, errMsg, raw string) Judgment {
	j := NewJudgment(skillID, testID, judge, positions)
	j.Error = errMsg
	j.Raw = raw
	return j
}

// Key returns the storage key for this judgment, unique per
// (skill, test, judge) triple. Re-evaluating the same triple overwrites the
// prior record rather than accumulating duplicates.
func (j *Judgment) Key() string {
	return fmt.Sprintf("%s_%s_%s", j.SkillID, j.TestID, j.Judge)
}

// IsError reports whether this record marks a failed evaluation.
func (j *Judgment) IsError() bool { return j.Error != "" }

// ResolveWinner maps the declared winner letter through the position map.
// Anything other than a recognized letter naming a known contestant is a
// tie: a garbled verdict must never abort aggregation.
func (j *Judgment) ResolveWinner() Outcome {
	switch Side(j.Winner) {
	case SideA, SideB:
	default:
		return OutcomeTie
	}
	switch j.PositionMap[Side(j.Winner)] {
	case ContestantVanilla:
		return OutcomeVanilla
	case ContestantSkilled:
		return OutcomeSkilled
	default:
		return OutcomeTie
	}
}

// ResolveScores returns the benchmark scores for vanilla and skilled by
// undoing the position shuffle. When the map does not place vanilla at side
// A, side B is treated as vanilla; the fallback branch also absorbs missing
// or garbled maps so scores are never silently dropped.
func (j *Judgment) ResolveScores() (vanilla, skilled *float64) {
	a := j.ResponseA.Benchmark()
	b := j.ResponseB.Benchmark()
	if j.PositionMap[SideA] == ContestantVanilla {
		return a, b
	}
	return b, a
}

// Benchmark returns the side's benchmark score, nil when the side or the
// score is absent.
func (s *SideScores) Benchmark() *float64 {
	if s == nil {
		return nil
	}
	return s.BenchmarkScore
}

// Validate checks structural integrity for records produced by this harness.
// Error records are valid with just identity and a position map; successful
// records must carry a valid map as well.
func (j *Judgment) Validate() error {
	if err := validate.Struct(j); err != nil {
		return err
	}
	if !j.PositionMap.IsValid() {
		return fmt.Errorf("%w: position map must assign both sides", ErrInvalidJudgment)
	}
	return nil
}
