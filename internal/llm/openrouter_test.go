package llm

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("requires key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("model names pass through", func(t *testing.T) {
		for _, model := range []string{"google/gemini-2.0-flash-exp", "anthropic/claude-3-haiku", "gpt-4o"} {
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != model {
				t.Errorf("model = %q, want %q", p.ModelID(), model)
			}
		}
	})
}

func TestOpenRouterProvider_SendsAppTitle(t *testing.T) {
	var title, auth string
	inner := chatCompletion("Once upon a time, Pal found a map.", "stop")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		auth = r.Header.Get("Authorization")
		inner(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "meta-llama/llama-3-8b",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "story please"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != "Once upon a time, Pal found a map." {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if title != openRouterAppTitle {
		t.Errorf("X-Title = %q, want %q", title, openRouterAppTitle)
	}
	if auth != "Bearer sk-or-test" {
		t.Errorf("Authorization = %q", auth)
	}
}
