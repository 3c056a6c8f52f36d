package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicAPIVersion {
			t.Errorf("anthropic-version = %q", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req anthropicRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		if req.System != "sys" {
			t.Errorf("system = %q", req.System)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [{"type": "text", "text": "fix: handle nil input"}],
			"usage": {"input_tokens": 30, "output_tokens": 12}
		}`))
	}))
	defer srv.Close()
	t.Setenv("QUILL_ANTHROPIC_BASE_URL", srv.URL)

	p := NewAnthropic("claude-haiku-4-5", "test-key")
	if p.Name() != "anthropic" {
		t.Errorf("Name = %q", p.Name())
	}

	resp, err := p.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys",
		UserPrompt:   "summarize",
		Temperature:  0.6,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "fix: handle nil input" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d", resp.TokensUsed)
	}
}

func TestAnthropicAuthErrorNotRetried(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"type": "authentication_error"}}`))
	}))
	defer srv.Close()
	t.Setenv("QUILL_ANTHROPIC_BASE_URL", srv.URL)

	p := NewAnthropic("claude-haiku-4-5", "bad-key")
	_, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	if !IsAuthError(err) {
		t.Errorf("IsAuthError = false for %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, auth errors must not be retried", requests)
	}
}

func TestAnthropicServerErrorNotRetried(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("QUILL_ANTHROPIC_BASE_URL", srv.URL)

	p := NewAnthropic("claude-haiku-4-5", "test-key")
	if _, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"}); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("requests = %d, server errors are not retried", requests)
	}
}

func TestAnthropicEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`))
	}))
	defer srv.Close()
	t.Setenv("QUILL_ANTHROPIC_BASE_URL", srv.URL)

	p := NewAnthropic("claude-haiku-4-5", "test-key")
	if _, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"}); err == nil {
		t.Fatal("expected error for empty content")
	}
}
