package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/gitctx"
	"github.com/quill-dev/quill/internal/providers"
	"github.com/spf13/cobra"
)

const (
	hookMarkerStart = "# >>> quill prepare-commit-msg hook >>>"
	hookMarkerEnd   = "# <<< quill prepare-commit-msg hook <<<"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git prepare-commit-msg hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install quill as a git prepare-commit-msg hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := gitctx.HookPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		section := generateHookScript()

		existing, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error reading hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		var content string
		if os.IsNotExist(err) || len(existing) == 0 {
			content = "#!/bin/sh\n" + section
		} else {
			content = replaceQuillSection(string(existing), section)
		}

		if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating hooks directory: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Installed quill prepare-commit-msg hook at %s\n", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the quill prepare-commit-msg hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := gitctx.HookPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		existing, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(os.Stdout, "No prepare-commit-msg hook found.")
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error reading hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		content := removeQuillSection(string(existing))

		// If only shebang (and whitespace) remains, delete the file entirely
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := os.Remove(hookPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing hook file: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stdout, "Removed quill prepare-commit-msg hook at %s\n", hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Removed quill section from %s\n", hookPath)
		return nil
	},
}

// generateHookScript builds the hook section. A failing draft warns but never
// blocks the commit.
func generateHookScript() string {
	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString("quill prepare-commit-msg \"$1\" \"$2\" \"$3\"\n")
	b.WriteString("QUILL_EXIT=$?\n")
	b.WriteString("if [ $QUILL_EXIT -ge 2 ]; then\n")
	b.WriteString("  echo \"quill: drafting failed (exit $QUILL_EXIT), continuing without a draft\" >&2\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceQuillSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		// No existing quill section, append
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")
	return before + section + after
}

func removeQuillSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")

	return before + after
}

// skipSources are commit message sources that already carry a message, so the
// hook must leave them alone.
var skipSources = map[string]bool{
	"message":  true,
	"template": true,
	"merge":    true,
	"squash":   true,
	"commit":   true,
}

var prepareCommitMsgCmd = &cobra.Command{
	Use:    "prepare-commit-msg <msg-file> [source] [sha]",
	Short:  "Run as the git prepare-commit-msg hook",
	Hidden: true,
	Args:   cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		msgFile := args[0]
		source := ""
		if len(args) > 1 {
			source = args[1]
		}
		runPrepareCommitMsg(msgFile, source)
		return nil
	},
}

func runPrepareCommitMsg(msgFile, source string) {
	if skipSources[source] {
		return
	}

	existing, err := os.ReadFile(msgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading commit message file: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if hasMessageContent(string(existing)) {
		return
	}

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitConfigError
		return
	}

	changes, err := gitctx.Staged(buildDiffOpts(cfg))
	if err != nil {
		if errors.Is(err, gitctx.ErrNoStagedChanges) {
			exitCode = ExitNoChanges
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	// A hung provider call must not block the commit indefinitely.
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	msg, _, err := draftMessage(ctx, changes, &cfg)
	if err != nil {
		if config.IsMissingKey(err) || providers.IsAuthError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitConfigError
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	content := msg.Render() + "\n"
	if len(existing) > 0 {
		content += "\n" + string(existing)
	}
	if err := os.WriteFile(msgFile, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing commit message file: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
}

// hasMessageContent reports whether a commit message file already contains a
// message, ignoring comment lines and whitespace.
func hasMessageContent(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
}
