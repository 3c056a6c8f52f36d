package providers

import (
	"context"
	"fmt"

	"github.com/quill-dev/quill/internal/config"
)

// CompletionRequest contains the data sent to an LLM for one completion.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// CompletionResponse contains the raw response from an LLM.
type CompletionResponse struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction interface.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	Name() string
}

// New creates a provider by name. API keys come from the credentials loaded
// at startup; Ollama and LM Studio work without one.
func New(provider, model string, creds config.Credentials) (Completer, error) {
	switch provider {
	case "openai":
		key, err := creds.Key("openai")
		if err != nil {
			return nil, err
		}
		return NewOpenAI(model, key), nil
	case "anthropic":
		key, err := creds.Key("anthropic")
		if err != nil {
			return nil, err
		}
		return NewAnthropic(model, key), nil
	case "ollama", "lmstudio":
		return NewOllama(model, creds.OptionalKey("ollama")), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
