// Package gitctx extracts staged changes and commit metadata from a git
// repository.
//
// [Staged] shells out to git diff --cached and splits the combined output
// into per-file patches on "diff --git" boundaries. Results are filtered by
// exclude glob patterns. When whitespace-insensitive collection is enabled
// and nothing survives it, the returned ChangeSet is flagged WhitespaceOnly
// so callers can short-circuit message generation.
package gitctx
