package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/quill-dev/quill/internal/gitctx"
	"github.com/quill-dev/quill/internal/message"
)

func sampleReport() *Report {
	msg := &message.Message{
		Title: "feat: add parser",
		Summaries: []message.Summary{
			{Path: "a.go", Text: "add parser"},
		},
	}
	return BuildReport("0.1.0", gitctx.RepoMeta{Root: "/repo", Head: "abc123", Branch: "main"},
		"openai", "gpt-4o-mini", msg, Timing{GitMs: 5, LLMMs: 100, TotalMs: 110})
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q): %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "feat: add parser\n\n- a.go: add parser") {
		t.Errorf("text output = %q", got)
	}
}

func TestTextWriterNoMessage(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, &Report{}); err == nil {
		t.Error("expected error for report without message")
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Tool != "quill" {
		t.Errorf("tool = %q", decoded.Tool)
	}
	if decoded.Message == nil || decoded.Message.Title != "feat: add parser" {
		t.Errorf("message = %+v", decoded.Message)
	}
	if decoded.Repo.Branch != "main" {
		t.Errorf("branch = %q", decoded.Repo.Branch)
	}
}
