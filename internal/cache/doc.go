// Package cache provides a file-based cache for LLM completion responses.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, call kind
// (summary, title, or body), and the redacted prompt material. Each entry
// stores the raw response string with a creation timestamp and TTL; expired
// entries are skipped on read.
//
// The default cache directory is $XDG_CACHE_HOME/quill (or the OS-appropriate
// equivalent). All payloads stored here have already been through secret
// redaction.
package cache
