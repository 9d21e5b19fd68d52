package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestJudgment_ResolveWinner(t *testing.T) {
	tests := []struct {
		name      string
		winner    string
		positions PositionMap
		want      Outcome
	}{
		{
			name:      "a_maps_to_vanilla",
			winner:    "A",
			positions: NewPositionMap(false),
			want:      OutcomeVanilla,
		},
		{
			name:      "a_maps_to_skilled",
			winner:    "A",
			positions: NewPositionMap(true),
			want:      OutcomeSkilled,
		},
		{
			name:      "b_maps_to_skilled",
			winner:    "B",
			positions: NewPositionMap(false),
			want:      OutcomeSkilled,
		},
		{
			name:      "b_maps_to_vanilla",
			winner:    "B",
			positions: NewPositionMap(true),
			want:      OutcomeVanilla,
		},
		{
			name:      "declared_tie",
			winner:    WinnerTie,
			positions: NewPositionMap(false),
			want:      OutcomeTie,
		},
		{
			name:      "lowercase_tie_is_unrecognized",
			winner:    "tie",
			positions: NewPositionMap(false),
			want:      OutcomeTie,
		},
		{
			name:      "unknown_letter",
			winner:    "C",
			positions: NewPositionMap(false),
			want:      OutcomeTie,
		},
		{
			name:      "empty_winner",
			winner:    "",
			positions: NewPositionMap(false),
			want:      OutcomeTie,
		},
		{
			name:      "winner_letter_missing_from_map",
			winner:    "A",
			positions: PositionMap{SideB: ContestantSkilled},
			want:      OutcomeTie,
		},
		{
			name:      "map_value_unrecognized",
			winner:    "A",
			positions: PositionMap{SideA: "mystery", SideB: ContestantSkilled},
			want:      OutcomeTie,
		},
		{
			name:      "nil_map",
			winner:    "A",
			positions: nil,
			want:      OutcomeTie,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Judgment{Winner: tt.winner, PositionMap: tt.positions}
			assert.Equal(t, tt.want, j.ResolveWinner())
		})
	}
}

func TestJudgment_ResolveScores(t *testing.T) {
	tests := []struct {
		name        string
		positions   PositionMap
		a, b        *SideScores
		wantVanilla *float64
		wantSkilled *float64
	}{
		{
			name:        "vanilla_at_a",
			positions:   NewPositionMap(false),
			a:           &SideScores{BenchmarkScore: fp(40)},
			b:           &SideScores{BenchmarkScore: fp(85)},
			wantVanilla: fp(40),
			wantSkilled: fp(85),
		},
		{
			name:        "skilled_at_a",
			positions:   NewPositionMap(true),
			a:           &SideScores{BenchmarkScore: fp(85)},
			b:           &SideScores{BenchmarkScore: fp(40)},
			wantVanilla: fp(40),
			wantSkilled: fp(85),
		},
		{
			// The fallback branch treats side B as vanilla when the map
			// does not place vanilla at A, including when the map is gone.
			name:        "missing_map_uses_fallback_orientation",
			positions:   nil,
			a:           &SideScores{BenchmarkScore: fp(10)},
			b:           &SideScores{BenchmarkScore: fp(20)},
			wantVanilla: fp(20),
			wantSkilled: fp(10),
		},
		{
			name:        "absent_side_yields_nil",
			positions:   NewPositionMap(false),
			a:           nil,
			b:           &SideScores{BenchmarkScore: fp(70)},
			wantVanilla: nil,
			wantSkilled: fp(70),
		},
		{
			name:        "absent_benchmark_score_yields_nil",
			positions:   NewPositionMap(false),
			a:           &SideScores{Correctness: fp(9)},
			b:           &SideScores{BenchmarkScore: fp(70)},
			wantVanilla: nil,
			wantSkilled: fp(70),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Judgment{PositionMap: tt.positions, ResponseA: tt.a, ResponseB: tt.b}
			vanilla, skilled := j.ResolveScores()
			assert.Equal(t, tt.wantVanilla, vanilla)
			assert.Equal(t, tt.wantSkilled, skilled)
		})
	}
}

func TestNewPositionMap(t *testing.T) {
	m := NewPositionMap(false)
	assert.Equal(t, ContestantVanilla, m[SideA])
	assert.Equal(t, ContestantSkilled, m[SideB])

	m = NewPositionMap(true)
	assert.Equal(t, ContestantSkilled, m[SideA])
	assert.Equal(t, ContestantVanilla, m[SideB])
}

func TestPositionMap_IsValid(t *testing.T) {
	tests := []struct {
		name string
		m    PositionMap
		want bool
	}{
		{name: "vanilla_first", m: NewPositionMap(false), want: true},
		{name: "skilled_first", m: NewPositionMap(true), want: true},
		{name: "nil_map", m: nil, want: false},
		{name: "missing_side", m: PositionMap{SideA: ContestantVanilla}, want: false},
		{name: "duplicate_contestant", m: PositionMap{SideA: ContestantSkilled, SideB: ContestantSkilled}, want: false},
		{name: "unknown_contestant", m: PositionMap{SideA: "neither", SideB: ContestantSkilled}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.IsValid())
		})
	}
}

func TestNewJudgment(t *testing.T) {
	j := NewJudgment("frontend", "trap-01", "claude-opus", NewPositionMap(true))

	assert.NotEmpty(t, j.ID)
	assert.Equal(t, "frontend", j.SkillID)
	assert.Equal(t, "trap-01", j.TestID)
	assert.Equal(t, "claude-opus", j.Judge)
	assert.Equal(t, "claude-opus", j.JuryModel)
	assert.False(t, j.IsError())
	assert.False(t, j.CreatedAt.IsZero())
	assert.Equal(t, "frontend_trap-01_claude-opus", j.Key())
}

func TestNewErrorJudgment(t *testing.T) {
	j := NewErrorJudgment("frontend", "trap-01", "gpt-4o", NewPositionMap(false),
		"failed to parse response", "not json at all")

	assert.True(t, j.IsError())
	assert.Equal(t, "failed to parse response", j.Error)
	assert.Equal(t, "not json at all", j.Raw)
	assert.Nil(t, j.ResponseA)
	assert.Nil(t, j.ResponseB)
	assert.Equal(t, OutcomeTie, j.ResolveWinner())
}

func TestJudgment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Judgment)
		wantErr bool
	}{
		{
			name:    "valid_record",
			mutate:  func(*Judgment) {},
			wantErr: false,
		},
		{
			name:    "missing_skill",
			mutate:  func(j *Judgment) { j.SkillID = "" },
			wantErr: true,
		},
		{
			name:    "missing_test",
			mutate:  func(j *Judgment) { j.TestID = "" },
			wantErr: true,
		},
		{
			name:    "missing_judge",
			mutate:  func(j *Judgment) { j.Judge = "" },
			wantErr: true,
		},
		{
			name:    "broken_position_map",
			mutate:  func(j *Judgment) { j.PositionMap = PositionMap{SideA: ContestantVanilla} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJudgment("frontend", "trap-01", "gemini-pro", NewPositionMap(false))
			tt.mutate(&j)
			err := j.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestJudgment_JSONRoundTrip(t *testing.T) {
	j := NewJudgment("backend", "race-02", "claude-opus", NewPositionMap(true))
	j.ResponseA = &SideScores{
		Correctness:     fp(9),
		Completeness:    fp(8),
		Expertise:       fp(9),
		GotchaAwareness: fp(7),
		BenchmarkScore:  fp(88),
	}
	j.ResponseB = &SideScores{BenchmarkScore: fp(55)}
	j.Winner = "A"
	j.Reasoning = "Response A handled the failure path."

	data, err := json.Marshal(&j)
	require.NoError(t, err)

	// The legacy shape keys must survive on the wire.
	assert.Contains(t, string(data), `"position_map"`)
	assert.Contains(t, string(data), `"jury_model"`)
	assert.Contains(t, string(data), `"benchmark_score"`)

	var back Judgment
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, j.SkillID, back.SkillID)
	assert.Equal(t, OutcomeSkilled, back.ResolveWinner())

	vanilla, skilled := back.ResolveScores()
	require.NotNil(t, vanilla)
	require.NotNil(t, skilled)
	assert.Equal(t, 55.0, *vanilla)
	assert.Equal(t, 88.0, *skilled)
}
