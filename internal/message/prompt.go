package message

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quill-dev/quill/internal/gitctx"
)

const systemPrompt = `You are a senior software engineer who drafts commit messages for a well-maintained repository. You write detailed, high-quality abstractive summaries of code changes. High quality summaries omit unnecessary, redundant, or obvious details and use clear, precise, non-self-referential language.`

const summaryInstruction = `Write a one-line summary of the following code change. The input is a single file's patch from git diff --cached. Describe what actually changed, not the diff syntax. Respond with ONLY the summary line, no preamble.`

const titleInstruction = `Write the title line of a git commit message covering all of the change summaries below. You MUST use the Conventional Commits format: <type>(<scope>): <subject>. The scope is optional, the subject is a short imperative description with no trailing period. Respond with ONLY the title line.`

const bodyInstruction = `From the commit title and change summaries below, write a commit body according to the Conventional Commits specification. The body follows the title and provides additional information about the code changes. It is free-form and MAY consist of any number of newline-separated paragraphs; it excludes the type and subject. Respond with ONLY the body text.`

// SystemPrompt returns the system prompt shared by all completion calls.
func SystemPrompt() string {
	return systemPrompt
}

// TruncatePatch caps patch text at maxBytes, returning the exact prefix and
// whether anything was cut. The cap is character-based, not token-based, and
// backs off to the nearest rune boundary so a multi-byte rune is never split.
func TruncatePatch(patch string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(patch) <= maxBytes {
		return patch, false
	}
	end := maxBytes
	for end > 0 && !utf8.RuneStart(patch[end]) {
		end--
	}
	return patch[:end], true
}

// BuildSummaryPrompt constructs the per-file summarization prompt.
func BuildSummaryPrompt(fd gitctx.FileDiff, maxPatchBytes int) string {
	patch, truncated := TruncatePatch(fd.Patch, maxPatchBytes)

	var b strings.Builder
	b.WriteString(summaryInstruction)
	if fd.Path != "" {
		fmt.Fprintf(&b, "\n\nFile: %s\n", fd.Path)
	}
	b.WriteString("\n--- BEGIN PATCH ---\n")
	b.WriteString(patch)
	if truncated {
		b.WriteString("\n--- PATCH TRUNCATED ---")
	}
	b.WriteString("\n--- END PATCH ---\n")
	return b.String()
}

// BuildTitlePrompt constructs the aggregate title prompt from the per-file
// summaries, folding in any style pack constraints.
func BuildTitlePrompt(summaries []Summary, style *Style) string {
	var b strings.Builder
	b.WriteString(titleInstruction)
	fmt.Fprintf(&b, "\nAllowed types: %s.\n", strings.Join(AllowedTypes(style), ", "))

	if section := BuildStylePromptSection(style); section != "" {
		b.WriteString(section)
	}

	b.WriteString("\nChange summaries:\n")
	writeSummaryLines(&b, summaries)
	return b.String()
}

// BuildBodyPrompt constructs the prompt for the optional extended body.
func BuildBodyPrompt(title string, summaries []Summary) string {
	var b strings.Builder
	b.WriteString(bodyInstruction)
	fmt.Fprintf(&b, "\n\nTitle: %s\n", title)
	b.WriteString("\nChange summaries:\n")
	writeSummaryLines(&b, summaries)
	return b.String()
}

func writeSummaryLines(b *strings.Builder, summaries []Summary) {
	for _, s := range summaries {
		if s.Path != "" {
			fmt.Fprintf(b, "- %s: %s\n", s.Path, s.Text)
		} else {
			fmt.Fprintf(b, "- %s\n", s.Text)
		}
	}
}
