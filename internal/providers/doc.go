// Package providers implements the Completer interface for each supported
// LLM provider.
//
// Supported providers: OpenAI (via the go-openai SDK), Anthropic (Claude),
// and Ollama / LM Studio for local models.
//
// All providers share a common retry helper with exponential back-off on
// rate limits; auth errors are never retried. Base URLs can be redirected
// through environment variables so tests can point calls at local httptest
// servers without making live API requests.
//
// Use [New] to obtain a Completer by provider name, model string, and the
// credentials loaded at startup.
package providers
