package skillset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spawner-ai/skillbench/internal/domain"
)

// Suite holds the test cases for one skill, loaded from
// <dir>/<skill-id>.yaml.
type Suite struct {
	// SkillPath locates the skill directory relative to the registry root.
	// Defaults to the skill ID when the file does not set it.
	SkillPath string `yaml:"skill_path"`

	// Tests are the prompts put to both contestants. SkillID on each entry
	// is filled from the suite's skill, not the file.
	Tests []domain.TestCase `yaml:"tests"`
}

// LoadSuite reads the test suite for a skill. Returns ErrSuiteNotFound when
// the skill has no test-case file.
func LoadSuite(dir, skillID string) (*Suite, error) {
	path := filepath.Join(dir, skillID+".yaml")

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrSuiteNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var suite Suite
	if err := yaml.Unmarshal(raw, &suite); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if suite.SkillPath == "" {
		suite.SkillPath = skillID
	}
	for i := range suite.Tests {
		suite.Tests[i].SkillID = skillID
	}

	return &suite, nil
}
