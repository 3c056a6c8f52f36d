package message

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	content := `types: [feat, fix, docs]
scope: api
maxSubject: 60
instructions:
  - Reference the issue number when known.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	if len(style.Types) != 3 || style.Types[0] != "feat" {
		t.Errorf("Types = %v", style.Types)
	}
	if style.Scope != "api" {
		t.Errorf("Scope = %q", style.Scope)
	}
	if style.MaxSubject != 60 {
		t.Errorf("MaxSubject = %d", style.MaxSubject)
	}
	if len(style.Instructions) != 1 {
		t.Errorf("Instructions = %v", style.Instructions)
	}
}

func TestLoadStyleEmptyPath(t *testing.T) {
	style, err := LoadStyle("")
	if err != nil {
		t.Fatalf("LoadStyle(\"\"): %v", err)
	}
	if style != nil {
		t.Errorf("style = %+v, want nil", style)
	}
}

func TestLoadStyleBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	if err := os.WriteFile(path, []byte("types: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStyle(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindStyleFile(t *testing.T) {
	root := t.TempDir()
	if got := FindStyleFile(root); got != "" {
		t.Errorf("FindStyleFile = %q, want empty for missing file", got)
	}

	path := filepath.Join(root, DefaultStyleFileName)
	if err := os.WriteFile(path, []byte("scope: cli\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := FindStyleFile(root); got != path {
		t.Errorf("FindStyleFile = %q, want %q", got, path)
	}

	if got := FindStyleFile(""); got != "" {
		t.Errorf("FindStyleFile(\"\") = %q", got)
	}
}

func TestAllowedTypes(t *testing.T) {
	if got := AllowedTypes(nil); len(got) == 0 || got[0] != "feat" {
		t.Errorf("default types = %v", got)
	}
	style := &Style{Types: []string{"fix"}}
	got := AllowedTypes(style)
	if len(got) != 1 || got[0] != "fix" {
		t.Errorf("style types = %v", got)
	}
	if got := AllowedTypes(&Style{}); len(got) == 0 {
		t.Error("empty style must fall back to defaults")
	}
}
