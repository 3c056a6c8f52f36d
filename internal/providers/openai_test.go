package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const openaiChatResponse = `{
	"choices": [{"message": {"role": "assistant", "content": "feat: add parser"}}],
	"usage": {"total_tokens": 42}
}`

func TestOpenAIComplete(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openaiChatResponse))
	}))
	defer srv.Close()
	t.Setenv("QUILL_OPENAI_BASE_URL", srv.URL+"/v1")

	p := NewOpenAI("gpt-4o-mini", "test-key")
	if p.Name() != "openai" {
		t.Errorf("Name = %q", p.Name())
	}

	resp, err := p.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys",
		UserPrompt:   "summarize",
		MaxTokens:    100,
		Temperature:  0.6,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "feat: add parser" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d", resp.TokensUsed)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestOpenAIAuthErrorNotRetried(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	}))
	defer srv.Close()
	t.Setenv("QUILL_OPENAI_BASE_URL", srv.URL+"/v1")

	p := NewOpenAI("gpt-4o-mini", "bad-key")
	_, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("IsAuthError = false for %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, auth errors must not be retried", requests)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 0}}`))
	}))
	defer srv.Close()
	t.Setenv("QUILL_OPENAI_BASE_URL", srv.URL+"/v1")

	p := NewOpenAI("gpt-4o-mini", "test-key")
	if _, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
