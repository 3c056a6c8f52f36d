package message

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultStyleFileName is the per-repo style pack looked up at the repository
// root when no style file is configured.
const DefaultStyleFileName = ".quill.yaml"

// Style is an optional per-repo style pack that constrains the generated
// title and adds extra prompt instructions.
type Style struct {
	Types        []string `yaml:"types,omitempty"`
	Scope        string   `yaml:"scope,omitempty"`
	MaxSubject   int      `yaml:"maxSubject,omitempty"`
	Instructions []string `yaml:"instructions,omitempty"`
}

// defaultTypes are the Conventional Commits types accepted when no style pack
// overrides them.
var defaultTypes = []string{
	"feat", "fix", "refactor", "chore", "docs", "test", "style", "perf", "build", "ci",
}

// LoadStyle loads a style pack from disk. Returns nil Style and nil error if
// path is empty.
func LoadStyle(path string) (*Style, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style file: %w", err)
	}
	var style Style
	if err := yaml.Unmarshal(data, &style); err != nil {
		return nil, fmt.Errorf("parsing style file: %w", err)
	}
	return &style, nil
}

// FindStyleFile returns the path of the default style pack under root, or ""
// when none exists.
func FindStyleFile(root string) string {
	if root == "" {
		return ""
	}
	path := filepath.Join(root, DefaultStyleFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// AllowedTypes returns the commit types a generated title may use. Titles are
// matched against the list case-insensitively.
func AllowedTypes(style *Style) []string {
	if style != nil && len(style.Types) > 0 {
		return style.Types
	}
	return defaultTypes
}

// BuildStylePromptSection returns additional prompt instructions derived from
// the style pack.
func BuildStylePromptSection(style *Style) string {
	if style == nil {
		return ""
	}

	var b strings.Builder
	if style.Scope != "" {
		fmt.Fprintf(&b, "Use %q as the scope unless a more specific one is obvious.\n", style.Scope)
	}
	if style.MaxSubject > 0 {
		fmt.Fprintf(&b, "Keep the subject under %d characters.\n", style.MaxSubject)
	}
	for _, inst := range style.Instructions {
		fmt.Fprintf(&b, "%s\n", inst)
	}
	return b.String()
}
