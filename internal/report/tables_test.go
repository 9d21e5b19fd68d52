package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "short stays", input: "fine", limit: 80, want: "fine"},
		{name: "exact limit stays", input: strings.Repeat("a", 80), limit: 80, want: strings.Repeat("a", 80)},
		{name: "over limit cut", input: strings.Repeat("a", 81), limit: 80, want: strings.Repeat("a", 80) + "..."},
		{name: "empty", input: "", limit: 80, want: ""},
		{name: "runes not bytes", input: strings.Repeat("é", 5), limit: 3, want: "ééé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.input, tt.limit))
		})
	}
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "no changes", want: "no changes"},
		{name: "newlines flattened", input: "line one\nline two", want: "line one line two"},
		{name: "crlf flattened", input: "one\r\ntwo", want: "one  two"},
		{name: "pipes escaped", input: "a | b", want: `a \| b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeCell(tt.input))
		})
	}
}

func TestRenderTable(t *testing.T) {
	var b strings.Builder
	renderTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Skilled Wins", "2 (50.0%)"},
		{"Ties", "0 (0.0%)"},
	})
	out := b.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4) // header, separator, two rows

	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "|"), "line %q should start a markdown row", line)
		assert.True(t, strings.HasSuffix(line, "|"), "line %q should close a markdown row", line)
	}

	assert.Contains(t, lines[0], "Metric")
	assert.Contains(t, lines[0], "Value")
	assert.Contains(t, lines[1], "-")
	assert.Contains(t, out, "Skilled Wins")
	assert.Contains(t, out, "2 (50.0%)")

	// Headers stay as given, no upper-casing.
	assert.NotContains(t, out, "METRIC")

	// Trailing blank line separates the table from the next section.
	assert.True(t, strings.HasSuffix(out, "\n\n"))
}
