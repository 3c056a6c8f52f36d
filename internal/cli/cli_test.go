package cli

import (
	"testing"

	"github.com/quill-dev/quill/internal/config"
)

func TestSplitComma(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a, b , c", []string{"a", "b", "c"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		got := splitComma(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitComma(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitComma(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func resetFlags() {
	flagProvider = ""
	flagModel = ""
	flagFormat = ""
	flagMaxPatchBytes = 0
	flagContextLines = 0
	flagStyle = ""
	flagBody = false
	flagPaths = ""
	flagExclude = ""
}

func TestBuildOverrides(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagProvider = "anthropic"
	flagModel = "claude-haiku-4-5"
	flagMaxPatchBytes = 4000
	flagBody = true

	m := buildOverrides()
	if m["provider"] != "anthropic" {
		t.Errorf("provider = %q", m["provider"])
	}
	if m["model"] != "claude-haiku-4-5" {
		t.Errorf("model = %q", m["model"])
	}
	if m["maxPatchBytes"] != "4000" {
		t.Errorf("maxPatchBytes = %q", m["maxPatchBytes"])
	}
	if m["body"] != "true" {
		t.Errorf("body = %q", m["body"])
	}
	if _, ok := m["format"]; ok {
		t.Error("unset flags must not appear in overrides")
	}
}

func TestBuildDiffOpts(t *testing.T) {
	resetFlags()
	defer resetFlags()

	cfg := config.Default()
	flagPaths = "src/**,cmd/**"
	flagExclude = "**/*.pb.go"

	opts := buildDiffOpts(cfg)
	if len(opts.Include) != 2 || opts.Include[0] != "src/**" {
		t.Errorf("Include = %v", opts.Include)
	}
	// Flag excludes extend, not replace, the configured list
	if len(opts.Exclude) != len(cfg.Exclude)+1 {
		t.Errorf("Exclude = %v", opts.Exclude)
	}
	if opts.ContextLines != cfg.ContextLines {
		t.Errorf("ContextLines = %d", opts.ContextLines)
	}
	if !opts.IgnoreWhitespace {
		t.Error("IgnoreWhitespace not carried from config")
	}
}

func TestExitCodes(t *testing.T) {
	if ExitSuccess != 0 || ExitNoChanges != 1 || ExitUsageError != 2 || ExitConfigError != 3 || ExitRuntimeError != 4 {
		t.Error("exit code values are part of the CLI contract")
	}
}
