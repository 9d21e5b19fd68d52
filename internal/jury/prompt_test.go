package jury

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt(t *testing.T) {
	out, err := RenderPrompt("Design a rate limiter.", "first answer", "second answer")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "You are evaluating two responses to the same task.\n"))
	assert.Contains(t, out, "TASK:\nDesign a rate limiter.\n")
	assert.Contains(t, out, "RESPONSE A:\nfirst answer\n")
	assert.Contains(t, out, "RESPONSE B:\nsecond answer\n")
	assert.True(t, strings.HasSuffix(out, "Respond ONLY with valid JSON, no other text."))

	// The schema block must survive templating with its braces intact.
	assert.Contains(t, out, "\"response_a\": {")
	assert.Contains(t, out, "\"benchmark_score\": <0-100>")
	assert.Contains(t, out, "\"winner\": \"<A|B|Tie>\"")
	assert.Contains(t, out, "- GOTCHA_AWARENESS: Does it anticipate/avoid common mistakes?")

	// A comes before B, B before the schema instructions.
	a := strings.Index(out, "RESPONSE A:")
	b := strings.Index(out, "RESPONSE B:")
	schema := strings.Index(out, "JSON format")
	assert.Less(t, a, b)
	assert.Less(t, b, schema)
}

func TestRenderPrompt_ContentIsVerbatim(t *testing.T) {
	task := "Line one\nLine two with {braces} and ```fences```"
	out, err := RenderPrompt(task, "a", "b")
	require.NoError(t, err)

	assert.Contains(t, out, task)
}

func TestHashPrompt(t *testing.T) {
	h1 := HashPrompt("prompt text")
	h2 := HashPrompt("prompt text")
	h3 := HashPrompt("prompt text!")

	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)

	// Known digest of the empty string, guarding the hash choice.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashPrompt(""))
}
