package skillset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkillFiles(t *testing.T, skillYAML, edgesYAML string) *Registry {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "engineering", "frontend")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	if skillYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "skill.yaml"), []byte(skillYAML), 0o644))
	}
	if edgesYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sharp-edges.yaml"), []byte(edgesYAML), 0o644))
	}

	return NewRegistry(root)
}

func TestLoadExpertise_ComposesSections(t *testing.T) {
	skillYAML := `
identity: An expert frontend engineer.
patterns:
  - name: Hooks
    description: Prefer hooks for shared state.
    example: "useEffect(() => load(), [id])"
  - description: Unnamed guidance.
`
	edgesYAML := `
sharp_edges:
  - id: SE-1
    summary: Stale closure captures
    severity: high
    situation: Callbacks capture old state.
    why: Users see stale data.
    solution: List dependencies explicitly.
  - summary: Minimal edge
`
	reg := writeSkillFiles(t, skillYAML, edgesYAML)

	got, err := reg.LoadExpertise(filepath.Join("engineering", "frontend"))
	require.NoError(t, err)

	want := strings.Join([]string{
		"# Identity\nAn expert frontend engineer.",
		"# Patterns",
		"## Hooks\nPrefer hooks for shared state.",
		"```\nuseEffect(() => load(), [id])\n```",
		"## Pattern\nUnnamed guidance.",
		"\n# Sharp Edges (Common Mistakes)",
		"\n## SE-1: Stale closure captures",
		"Severity: high",
		"Situation: Callbacks capture old state.",
		"Why it matters: Users see stale data.",
		"Solution: List dependencies explicitly.",
		"\n## Edge: Minimal edge",
		"Severity: unknown",
	}, "\n\n")
	assert.Equal(t, want, got)
}

func TestLoadExpertise_IdentityOnly(t *testing.T) {
	reg := writeSkillFiles(t, "identity: An expert.\n", "")

	got, err := reg.LoadExpertise(filepath.Join("engineering", "frontend"))

	require.NoError(t, err)
	assert.Equal(t, "# Identity\nAn expert.", got)
}

func TestLoadExpertise_NoFiles(t *testing.T) {
	reg := writeSkillFiles(t, "", "")

	got, err := reg.LoadExpertise(filepath.Join("engineering", "frontend"))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadExpertise_MissingSkillDir(t *testing.T) {
	reg := NewRegistry(t.TempDir())

	got, err := reg.LoadExpertise("engineering/frontend")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadExpertise_EmptyEdgeList(t *testing.T) {
	reg := writeSkillFiles(t, "identity: An expert.\n", "sharp_edges: []\n")

	got, err := reg.LoadExpertise(filepath.Join("engineering", "frontend"))

	require.NoError(t, err)
	assert.Equal(t, "# Identity\nAn expert.", got)
}

func TestLoadExpertise_MalformedYAML(t *testing.T) {
	reg := writeSkillFiles(t, "identity: [unclosed", "")

	_, err := reg.LoadExpertise(filepath.Join("engineering", "frontend"))

	require.Error(t, err)
}
