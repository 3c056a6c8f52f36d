package message

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/quill-dev/quill/internal/cache"
	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/gitctx"
	"github.com/quill-dev/quill/internal/providers"
	"github.com/quill-dev/quill/internal/redact"
)

const (
	// PlaceholderSummary stands in for a per-file summary whose API call
	// failed. A single bad call never aborts the run.
	PlaceholderSummary = "failed to summarize changes"

	// DefaultTitle is used when the title call fails or the model does not
	// return a Conventional Commits line.
	DefaultTitle = "chore: update staged files"

	// WhitespaceOnlyTitle is the fixed message for whitespace-only change
	// sets, which skip generation entirely.
	WhitespaceOnlyTitle = "style: fix whitespace"

	defaultMaxTokens   = 500
	defaultTemperature = 0.6
)

// titleLinePattern matches "type(scope)!: subject" with optional scope and
// breaking-change marker.
var titleLinePattern = regexp.MustCompile(`^([A-Za-z]+)(\([^)]+\))?(!)?:\s+(.+)$`)

// Generate runs the two-phase pipeline over a ChangeSet: one completion call
// per file, then one call for the title (plus one for the body when enabled).
// Calls are sequential and blocking; per-call failures are absorbed so the
// tool always produces some commit message.
func Generate(ctx context.Context, changes gitctx.ChangeSet, cfg config.Config, completer providers.Completer, store *cache.Cache) (*Message, error) {
	if len(changes.Files) == 0 {
		return nil, gitctx.ErrNoStagedChanges
	}

	style, err := LoadStyle(cfg.StyleFile)
	if err != nil {
		return nil, err
	}

	msg := &Message{}
	for _, fd := range changes.Files {
		patch := fd.Patch
		if cfg.Privacy.RedactSecrets {
			patch = redact.Patch(patch, fd.Path, cfg.Privacy.RedactPaths)
		}
		prompt := BuildSummaryPrompt(gitctx.FileDiff{Path: fd.Path, Patch: patch}, cfg.MaxPatchBytes)
		key := cache.BuildKey(completer.Name(), cfg.Model, "summary", prompt)

		text, err := complete(ctx, completer, store, key, prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quill: summarizing %s: %v\n", fd.Path, err)
			text = PlaceholderSummary
		}
		msg.Summaries = append(msg.Summaries, Summary{Path: fd.Path, Text: firstLine(text)})
	}

	titlePrompt := BuildTitlePrompt(msg.Summaries, style)
	titleKey := cache.BuildKey(completer.Name(), cfg.Model, "title", titlePrompt)
	raw, err := complete(ctx, completer, store, titleKey, titlePrompt)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "quill: generating title: %v\n", err)
		msg.Title = DefaultTitle
	default:
		title, ok := NormalizeTitle(raw, style)
		if !ok {
			fmt.Fprintf(os.Stderr, "quill: model returned a non-conventional title %q, using default\n", firstLine(raw))
			msg.Title = DefaultTitle
		} else {
			msg.Title = title
		}
	}

	if cfg.Body {
		bodyPrompt := BuildBodyPrompt(msg.Title, msg.Summaries)
		bodyKey := cache.BuildKey(completer.Name(), cfg.Model, "body", bodyPrompt)
		raw, err := complete(ctx, completer, store, bodyKey, bodyPrompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "quill: generating body: %v\n", err)
		} else {
			msg.Body = strings.TrimSpace(raw)
		}
	}

	return msg, nil
}

// complete issues a single completion, consulting the cache first.
func complete(ctx context.Context, completer providers.Completer, store *cache.Cache, key, userPrompt string) (string, error) {
	if cached, ok := store.Get(key); ok {
		return cached, nil
	}
	resp, err := completer.Complete(ctx, providers.CompletionRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   userPrompt,
		MaxTokens:    defaultMaxTokens,
		Temperature:  defaultTemperature,
	})
	if err != nil {
		return "", err
	}
	if err := store.Put(key, resp.Content); err != nil {
		fmt.Fprintf(os.Stderr, "quill: caching response: %v\n", err)
	}
	return resp.Content, nil
}

// NormalizeTitle cleans up a model response and validates it as a
// Conventional Commits title line. Returns ("", false) when the response
// cannot be used.
func NormalizeTitle(raw string, style *Style) (string, bool) {
	line := firstLine(stripFences(raw))
	line = strings.Trim(line, "`\"' ")
	line = strings.TrimSuffix(line, ".")
	if line == "" {
		return "", false
	}

	m := titleLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	typ := strings.ToLower(m[1])
	allowed := false
	for _, t := range AllowedTypes(style) {
		if typ == strings.ToLower(t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", false
	}

	subject := strings.TrimSpace(m[4])
	if subject == "" {
		return "", false
	}
	if style != nil && style.MaxSubject > 0 && len(subject) > style.MaxSubject {
		subject = strings.TrimSpace(subject[:style.MaxSubject])
	}

	return typ + m[2] + m[3] + ": " + subject, true
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}

func firstLine(s string) string {
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
