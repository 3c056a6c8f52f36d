// Package redact removes secrets from patch content before it is sent to any
// LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS credentials, bearer tokens, and provider-specific
// tokens. Files whose paths match configured glob patterns have their whole
// patch replaced with [REDACTED] instead.
package redact
