package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidRunStatus(t *testing.T) {
	tests := []struct {
		name   string
		status RunStatus
		want   bool
	}{
		{name: "contestants_complete", status: RunStatusContestantsComplete, want: true},
		{name: "jury_complete", status: RunStatusJuryComplete, want: true},
		{name: "empty", status: "", want: false},
		{name: "unknown", status: "report_complete", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRunStatus(tt.status))
		})
	}
}

func TestRunMetadata_Validate(t *testing.T) {
	meta := RunMetadata{
		RunID:        "2025-01-15-093045",
		Timestamp:    time.Now(),
		SkillsTested: []string{"frontend"},
		TestCases: []TestCase{
			{SkillID: "frontend", TestID: "trap-01", TestType: "trap", TestName: "Stale closure", Prompt: "Why does this counter never increment?"},
		},
		Status: RunStatusContestantsComplete,
	}
	require.NoError(t, meta.Validate())

	meta.RunID = ""
	require.Error(t, meta.Validate())
}
