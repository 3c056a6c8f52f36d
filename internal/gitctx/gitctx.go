package gitctx

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoStagedChanges is returned by Staged when the index matches HEAD.
var ErrNoStagedChanges = errors.New("no staged changes")

// DiffOptions controls how the staged diff is gathered.
type DiffOptions struct {
	ContextLines     int
	Include          []string
	Exclude          []string
	IgnoreWhitespace bool
}

// FileDiff is the patch for a single changed file.
type FileDiff struct {
	Path  string
	Patch string
}

// ChangeSet holds the per-file patches for the staged changes.
type ChangeSet struct {
	Files []FileDiff
	Repo  RepoMeta

	// WhitespaceOnly is set when whitespace-insensitive collection produced
	// nothing but the index still differs from HEAD.
	WhitespaceOnly bool
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta() (RepoMeta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Staged collects the diff of index vs HEAD, split per file.
// Returns ErrNoStagedChanges when nothing is staged at all.
func Staged(opts DiffOptions) (ChangeSet, error) {
	args := append([]string{"--no-pager", "diff", "--cached"}, buildDiffArgs(opts)...)
	diff, err := gitOutput(args...)
	if err != nil {
		return ChangeSet{}, fmt.Errorf("git diff --cached: %w", err)
	}

	meta, err := GetRepoMeta()
	if err != nil {
		return ChangeSet{}, err
	}

	files := SplitFileDiffs(diff)
	if len(opts.Exclude) > 0 {
		files = filterExcluded(files, opts.Exclude)
	}

	if len(files) == 0 {
		if opts.IgnoreWhitespace && stagedDiffExists() {
			return ChangeSet{Repo: meta, WhitespaceOnly: true}, nil
		}
		return ChangeSet{}, ErrNoStagedChanges
	}

	return ChangeSet{Files: files, Repo: meta}, nil
}

// stagedDiffExists reports whether a plain --cached diff (whitespace included)
// is non-empty.
func stagedDiffExists() bool {
	out, err := gitOutput("--no-pager", "diff", "--cached")
	return err == nil && strings.TrimSpace(out) != ""
}

// Commit runs git commit with the given title and body, opening the editor so
// the user can adjust the drafted message. Stdio is inherited.
func Commit(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("empty commit title")
	}
	args := []string{"commit", "--edit", "--message", title}
	if strings.TrimSpace(body) != "" {
		args = append(args, "--message", body)
	}
	cmd := exec.Command("git", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// HookPath returns the path of the prepare-commit-msg hook for the current
// repository.
func HookPath() (string, error) {
	out, err := gitOutput("rev-parse", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository (git rev-parse --git-dir failed)")
	}
	gitDir := strings.TrimSpace(out)
	return filepath.Join(gitDir, "hooks", "prepare-commit-msg"), nil
}

func buildDiffArgs(opts DiffOptions) []string {
	var args []string
	if opts.ContextLines > 0 {
		args = append(args, fmt.Sprintf("-U%d", opts.ContextLines))
	}
	if opts.IgnoreWhitespace {
		args = append(args, "--ignore-all-space", "--ignore-blank-lines")
	}
	args = append(args, "--")
	if len(opts.Include) > 0 {
		for _, p := range opts.Include {
			if p != "**/*" {
				args = append(args, p)
			}
		}
	}
	return args
}

// SplitFileDiffs splits combined diff output into per-file patches on
// "diff --git" boundaries.
func SplitFileDiffs(diff string) []FileDiff {
	if strings.TrimSpace(diff) == "" {
		return nil
	}
	var files []FileDiff
	var current strings.Builder
	flush := func() {
		s := current.String()
		if strings.TrimSpace(s) == "" {
			return
		}
		files = append(files, FileDiff{
			Path:  pathFromPatch(s),
			Patch: s,
		})
	}
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			flush()
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		flush()
	}
	return files
}

// pathFromPatch extracts the file path from a single-file patch. The "+++"
// side is preferred; deletions fall back to the "---" side, and anything else
// to the "diff --git" header.
func pathFromPatch(patch string) string {
	var headerPath string
	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ b/"):
			return strings.TrimPrefix(line, "+++ b/")
		case strings.HasPrefix(line, "--- a/"):
			if headerPath == "" {
				headerPath = strings.TrimPrefix(line, "--- a/")
			}
		case strings.HasPrefix(line, "diff --git a/"):
			if headerPath == "" {
				rest := strings.TrimPrefix(line, "diff --git a/")
				if idx := strings.Index(rest, " b/"); idx > 0 {
					headerPath = rest[:idx]
				}
			}
		}
	}
	return headerPath
}

func filterExcluded(files []FileDiff, excludes []string) []FileDiff {
	var kept []FileDiff
	for _, f := range files {
		if f.Path != "" && MatchesAny(f.Path, excludes) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// MatchesAny returns true if the path matches any of the given glob patterns.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			matched, err = filepath.Match(clean, filepath.Base(path))
			if err == nil && matched {
				return true
			}
			matched, err = filepath.Match(clean, path)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
