package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider("test-key", "gpt-4o-mini", server.URL+"/v1")
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func chatCompletion(content ...string) map[string]any {
	choices := make([]map[string]any, len(content))
	for i, c := range content {
		choices[i] = map[string]any{
			"index":         i,
			"message":       map[string]any{"role": "assistant", "content": c},
			"finish_reason": "stop",
		}
	}
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": choices,
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var gotBody map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"question":"What is 2+3?","answer":"5"}`))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages:   []Message{{Role: RoleUser, Content: "Generate a question."}},
		MaxTokens:  256,
		JSONOutput: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, ok := resp.FirstText()
	if !ok || text != `{"question":"What is 2+3?","answer":"5"}` {
		t.Fatalf("first text = %q (%v)", text, ok)
	}
	if resp.Candidates[0].FinishReason != "end" {
		t.Fatalf("expected finish reason 'end', got %q", resp.Candidates[0].FinishReason)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.Model != "gpt-4o-mini-2024-07-18" {
		t.Fatalf("model = %q", resp.Model)
	}
	if len(resp.Raw) == 0 {
		t.Fatal("expected raw payload")
	}

	format, _ := gotBody["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", gotBody["response_format"])
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected a single user message, got %d", len(msgs))
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion())
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), UserPrompt("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(resp.Candidates))
	}
	if _, ok := resp.FirstText(); ok {
		t.Fatal("expected FirstText to report no text")
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"bad key", http.StatusUnauthorized, func(err error) bool {
			var rej *ErrRequestRejected
			return errors.As(err, &rej) && rej.StatusCode == http.StatusUnauthorized
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var unavail *ErrProviderUnavailable
			return errors.As(err, &unavail)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": "nope"},
				})
			}

			p := newTestOpenAIProvider(t, handler)
			_, err := p.Generate(context.Background(), UserPrompt("test"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
			if !IsTransport(err) {
				t.Fatal("expected IsTransport to be true")
			}
		})
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p, err := NewOpenAIProvider("test-key", "gpt-4o", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}

func TestNewOpenAIProvider_EmptyKey(t *testing.T) {
	if _, err := NewOpenAIProvider("", "gpt-4o", ""); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
