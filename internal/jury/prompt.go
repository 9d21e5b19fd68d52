package jury

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"text/template"
)

// juryPromptText is the fixed blind-evaluation prompt. Judges see slots A and
// B, never which contestant sits where. The wording is part of the benchmark
// contract; changing it invalidates comparisons across runs.
const juryPromptText = `You are evaluating two responses to the same task.
Do not assume which is better - evaluate purely on merit.

TASK:
{{.Task}}

---

RESPONSE A:
{{.ResponseA}}

---

RESPONSE B:
{{.ResponseB}}

---

Evaluate each response and provide your assessment in the following JSON format:

{
  "response_a": {
    "correctness": <1-10>,
    "completeness": <1-10>,
    "expertise": <1-10>,
    "gotcha_awareness": <1-10>,
    "benchmark_score": <0-100>
  },
  "response_b": {
    "correctness": <1-10>,
    "completeness": <1-10>,
    "expertise": <1-10>,
    "gotcha_awareness": <1-10>,
    "benchmark_score": <0-100>
  },
  "winner": "<A|B|Tie>",
  "reasoning": "<2-3 sentence explanation of your decision>"
}

Scoring guide:
- CORRECTNESS: Is the information/code accurate?
- COMPLETENESS: Does it address all aspects of the task?
- EXPERTISE: Does it show deep domain knowledge?
- GOTCHA_AWARENESS: Does it anticipate/avoid common mistakes?
- BENCHMARK_SCORE: Overall quality for professional use (0-100)

Respond ONLY with valid JSON, no other text.`

var juryPrompt = template.Must(template.New("jury_prompt").Parse(juryPromptText))

type promptData struct {
	Task      string
	ResponseA string
	ResponseB string
}

// RenderPrompt fills the jury template with the task and the two responses in
// their blinded positions.
func RenderPrompt(task, responseA, responseB string) (string, error) {
	var b strings.Builder
	err := juryPrompt.Execute(&b, promptData{Task: task, ResponseA: responseA, ResponseB: responseB})
	if err != nil {
		return "", fmt.Errorf("render jury prompt: %w", err)
	}
	return b.String(), nil
}

// HashPrompt returns the hex SHA-256 of a rendered prompt. Stored on each
// judgment so a verdict can be traced to the exact prompt that produced it.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
