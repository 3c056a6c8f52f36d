package message

import (
	"fmt"
	"strings"
)

// Summary is a one-line description of the change to a single file.
type Summary struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// Message is a drafted commit message: a Conventional Commits title line
// followed by one bullet per changed file and an optional free-form body.
type Message struct {
	Title     string    `json:"title"`
	Summaries []Summary `json:"summaries,omitempty"`
	Body      string    `json:"body,omitempty"`
}

// Render returns the full commit message text.
func (m *Message) Render() string {
	var b strings.Builder
	b.WriteString(m.Title)
	if desc := m.Description(); desc != "" {
		b.WriteString("\n\n")
		b.WriteString(desc)
	}
	return b.String()
}

// Description returns everything after the title: the per-file bullet list
// and, when present, the body paragraph(s). Suitable for the second -m of
// git commit.
func (m *Message) Description() string {
	var b strings.Builder
	for i, s := range m.Summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Path != "" {
			fmt.Fprintf(&b, "- %s: %s", s.Path, s.Text)
		} else {
			fmt.Fprintf(&b, "- %s", s.Text)
		}
	}
	if m.Body != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Body)
	}
	return b.String()
}
