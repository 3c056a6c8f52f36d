package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements the Completer interface on top of the go-openai SDK.
type OpenAI struct {
	model  string
	client *openai.Client
}

// NewOpenAI creates a new OpenAI provider. QUILL_OPENAI_BASE_URL redirects
// calls to an OpenAI-compatible server (including httptest servers in tests).
func NewOpenAI(model, apiKey string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("QUILL_OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	return &OpenAI{
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	chatReq := openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}
	if req.Temperature > 0 {
		chatReq.Temperature = float32(req.Temperature)
	}

	var resp CompletionResponse
	err := retryWithBackoff(ctx, 3, func() error {
		out, err := o.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(out.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		content := strings.TrimSpace(out.Choices[0].Message.Content)
		if content == "" {
			return fmt.Errorf("empty text content in API response")
		}
		resp = CompletionResponse{
			Content:    content,
			TokensUsed: out.Usage.TotalTokens,
		}
		return nil
	})

	return resp, err
}

// classifyOpenAIError maps SDK errors onto the shared retry error types.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &rateLimitError{}
		case apiErr.HTTPStatusCode == http.StatusUnauthorized ||
			apiErr.HTTPStatusCode == http.StatusForbidden:
			return &authError{message: apiErr.Message}
		case apiErr.HTTPStatusCode >= 500:
			return &serverError{statusCode: apiErr.HTTPStatusCode, body: apiErr.Message}
		}
	}
	return fmt.Errorf("sending request: %w", err)
}
