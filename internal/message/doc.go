// Package message contains the core types and engine for drafting commit
// messages from staged changes.
//
// [Generate] runs a two-phase batch pipeline: one completion call per changed
// file to get a one-line summary, then one call over the aggregate summaries
// to get a Conventional Commits title (optionally one more for an extended
// body). Execution is strictly sequential. Per-call failures are absorbed:
// a failed file summary becomes a fixed placeholder, and a failed or
// malformed title becomes [DefaultTitle], so a commit is never blocked by
// the API.
//
// Patch text is capped at a configured byte length before prompting; the cap
// is character-based rather than token-based.
//
// Style packs (style.go) let a repository constrain the allowed commit types,
// suggest a scope, and add extra prompt instructions via a .quill.yaml file.
package message
