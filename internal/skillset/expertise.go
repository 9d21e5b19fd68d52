package skillset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// skillFile is the optional skill.yaml shape.
type skillFile struct {
	Identity string    `yaml:"identity"`
	Patterns []pattern `yaml:"patterns"`
}

type pattern struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Example     string `yaml:"example"`
}

// sharpEdgesFile is the optional sharp-edges.yaml shape.
type sharpEdgesFile struct {
	SharpEdges []sharpEdge `yaml:"sharp_edges"`
}

type sharpEdge struct {
	ID        string `yaml:"id"`
	Summary   string `yaml:"summary"`
	Severity  string `yaml:"severity"`
	Situation string `yaml:"situation"`
	Why       string `yaml:"why"`
	Solution  string `yaml:"solution"`
}

// LoadExpertise composes the skill expertise text injected into the skilled
// contestant's system prompt. skillPath is relative to the registry root.
// Both source files are optional; with neither present the expertise is the
// empty string and the skilled contestant runs bare.
func (r *Registry) LoadExpertise(skillPath string) (string, error) {
	base := filepath.Join(r.root, skillPath)

	var sections []string

	skill, err := readSkillFile(filepath.Join(base, "skill.yaml"))
	if err != nil {
		return "", err
	}
	if skill != nil {
		sections = append(sections, skillSections(skill)...)
	}

	edges, err := readSharpEdges(filepath.Join(base, "sharp-edges.yaml"))
	if err != nil {
		return "", err
	}
	if edges != nil {
		sections = append(sections, edgeSections(edges)...)
	}

	return strings.Join(sections, "\n\n"), nil
}

func readSkillFile(path string) (*skillFile, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var skill skillFile
	if err := yaml.Unmarshal(raw, &skill); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &skill, nil
}

func readSharpEdges(path string) (*sharpEdgesFile, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var edges sharpEdgesFile
	if err := yaml.Unmarshal(raw, &edges); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &edges, nil
}

func skillSections(skill *skillFile) []string {
	var sections []string

	if skill.Identity != "" {
		sections = append(sections, fmt.Sprintf("# Identity\n%s", skill.Identity))
	}

	if len(skill.Patterns) > 0 {
		sections = append(sections, "# Patterns")
		for _, p := range skill.Patterns {
			name := p.Name
			if name == "" {
				name = "Pattern"
			}
			sections = append(sections, fmt.Sprintf("## %s\n%s", name, p.Description))
			if p.Example != "" {
				sections = append(sections, fmt.Sprintf("```\n%s\n```", p.Example))
			}
		}
	}

	return sections
}

func edgeSections(edges *sharpEdgesFile) []string {
	if len(edges.SharpEdges) == 0 {
		return nil
	}

	sections := []string{"\n# Sharp Edges (Common Mistakes)"}
	for _, edge := range edges.SharpEdges {
		id := edge.ID
		if id == "" {
			id = "Edge"
		}
		severity := edge.Severity
		if severity == "" {
			severity = "unknown"
		}

		sections = append(sections, fmt.Sprintf("\n## %s: %s", id, edge.Summary))
		sections = append(sections, fmt.Sprintf("Severity: %s", severity))
		if edge.Situation != "" {
			sections = append(sections, fmt.Sprintf("Situation: %s", edge.Situation))
		}
		if edge.Why != "" {
			sections = append(sections, fmt.Sprintf("Why it matters: %s", edge.Why))
		}
		if edge.Solution != "" {
			sections = append(sections, fmt.Sprintf("Solution: %s", edge.Solution))
		}
	}

	return sections
}
