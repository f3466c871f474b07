package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return newOpenAIProvider(cfg, "gpt-4o-mini")
}

// chatCompletion writes a one-choice completion with the given content and
// finish reason.
func chatCompletion(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func openAIError(status int, typ string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": typ, "message": typ},
		})
	}
}

func TestOpenAIProvider_JudgementRoundTrip(t *testing.T) {
	var got openai.ChatCompletionRequest
	inner := chatCompletion(`{"correct":true,"feedback":"Yes! Ten take away two is eight."}`, "stop")
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		inner(w, r)
	})

	ctx := WithSession(t.Context(), "sess-7")
	resp, err := p.Generate(ctx, Request{
		System:    "You are a cheerful homework buddy.",
		Messages:  []Message{{Role: RoleUser, Content: "The child answered 8 to 10 - 2."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason %q, got %q", StopEnd, resp.StopReason)
	}

	if got.User != "sess-7" {
		t.Errorf("expected session as user tag, got %q", got.User)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("expected system + user messages, got %+v", got.Messages)
	}
}

func TestOpenAIProvider_ContentFilterIsBlocked(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion("", "content_filter"))
	_, err := p.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "tell me a story"}}})
	var blocked *ErrContentBlocked
	if !errors.As(err, &blocked) {
		t.Fatalf("expected ErrContentBlocked, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_TruncatedStructuredOutput(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion(`{"correct":tr`, "length"))
	_, err := p.Generate(t.Context(), Request{
		Messages: []Message{{Role: RoleUser, Content: "judge"}},
		Schema: &Schema{Name: "openai-truncation", Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"correct": map[string]any{"type": "boolean"}},
		}},
	})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{"rate limit", openAIError(http.StatusTooManyRequests, "tokens"), func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"server error", openAIError(http.StatusInternalServerError, "server_error"), func(err error) bool {
			var u *ErrProviderUnavailable
			return errors.As(err, &u)
		}},
		{"no choices", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
		}, func(err error) bool {
			var inv *ErrInvalidResponse
			return errors.As(err, &inv)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, tt.handler)
			_, err := p.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}, MaxTokens: 100})
			if !tt.check(err) {
				t.Fatalf("unexpected error %T (%v)", err, err)
			}
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for missing key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: "https://gateway.example/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}
