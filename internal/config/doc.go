// Package config loads and merges quill configuration from multiple sources.
//
// Settings precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (QUILL_PROVIDER, QUILL_MODEL, etc.)
//  3. Settings file ($XDG_CONFIG_HOME/quill/config.json)
//  4. Built-in defaults
//
// API keys live separately in an INI credentials file
// ($XDG_CONFIG_HOME/quill/credentials.ini) with one section per provider.
// Provider environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY) take
// precedence over the file. A missing or placeholder key is a fatal
// configuration error surfaced as [MissingKeyError].
package config
