package jury

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/spawner-ai/skillbench/internal/domain"
)

// parseFailureMessage marks records whose judge reply could not be decoded.
// The literal matches records written by earlier tooling.
const parseFailureMessage = "Failed to parse response"

// trailingCommaRe matches a comma left dangling before a closing brace or
// bracket, the most common judge JSON slip.
var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// verdict is the reply shape the jury prompt instructs judges to produce.
// Error is not part of the schema, but a judge that answers with an error
// object instead of scores is recorded as a failed evaluation.
type verdict struct {
	ResponseA *domain.SideScores `json:"response_a"`
	ResponseB *domain.SideScores `json:"response_b"`
	Winner    string             `json:"winner"`
	Reasoning string             `json:"reasoning"`
	Error     string             `json:"error"`
}

// parseVerdict decodes a judge reply: strip a surrounding markdown fence,
// trim, repair dangling commas, then unmarshal.
func parseVerdict(reply string) (*verdict, error) {
	text := extractJSON(reply)
	text = trailingCommaRe.ReplaceAllString(text, "$1")

	var v verdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	return &v, nil
}

// extractJSON returns the content of the first markdown code fence, or the
// whole reply when there is none. A fence left unclosed yields everything
// after the opening marker.
func extractJSON(reply string) string {
	if _, after, found := strings.Cut(reply, "```json"); found {
		if inner, _, closed := strings.Cut(after, "```"); closed {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}
	if _, after, found := strings.Cut(reply, "```"); found {
		if inner, _, closed := strings.Cut(after, "```"); closed {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(reply)
}
