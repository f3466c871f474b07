package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.0-flash",
		"gemini-pro":       "gemini-2.0-pro",
		"gemini-2.0-flash": "gemini-2.0-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	// Shape of the quest designer's output.
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string", "description": "Short quest title"},
			"kind":     map[string]any{"type": "string", "enum": []any{"multiple_choice", "memorization"}},
			"stars":    map[string]any{"type": "integer"},
			"approved": map[string]any{"type": "boolean"},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": float64(5),
				"items":    map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "questions"},
	}

	s := buildGeminiSchema(def)

	if s.Type != genai.TypeObject || len(s.Properties) != 5 {
		t.Fatalf("unexpected root schema %+v", s)
	}
	if s.Properties["title"].Description != "Short quest title" {
		t.Errorf("description lost: %+v", s.Properties["title"])
	}
	if got := s.Properties["kind"].Enum; len(got) != 2 || got[1] != "memorization" {
		t.Errorf("unexpected enum %v", got)
	}
	if s.Properties["stars"].Type != genai.TypeInteger || s.Properties["approved"].Type != genai.TypeBoolean {
		t.Errorf("scalar types not mapped")
	}
	q := s.Properties["questions"]
	if q.Type != genai.TypeArray || q.Items.Type != genai.TypeString {
		t.Fatalf("unexpected array schema %+v", q)
	}
	if q.MinItems == nil || *q.MinItems != 3 || q.MaxItems == nil || *q.MaxItems != 5 {
		t.Errorf("item bounds not mapped: min=%v max=%v", q.MinItems, q.MaxItems)
	}
	if len(s.Required) != 2 {
		t.Errorf("expected 2 required fields, got %v", s.Required)
	}
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(Request{
		System:      "You are Pal.",
		MaxTokens:   300,
		Temperature: 0.7,
		Schema:      &Schema{Name: "story", Definition: map[string]any{"type": "object"}},
	})
	if cfg.MaxOutputTokens != 300 || cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Errorf("generation knobs not set: %+v", cfg)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "You are Pal." {
		t.Errorf("system instruction not set")
	}
	if cfg.ResponseMIMEType != "application/json" || cfg.ResponseSchema == nil {
		t.Errorf("structured output not requested")
	}
	if len(cfg.SafetySettings) != 4 {
		t.Fatalf("expected child safety settings, got %d", len(cfg.SafetySettings))
	}
	for _, s := range cfg.SafetySettings {
		if s.Threshold != genai.HarmBlockThresholdBlockLowAndAbove {
			t.Errorf("category %s threshold %s", s.Category, s.Threshold)
		}
	}

	if plain := geminiConfig(Request{}); plain.Temperature != nil || plain.ResponseSchema != nil {
		t.Errorf("expected vendor defaults for a plain request")
	}
}

func TestGeminiStop(t *testing.T) {
	candidate := func(r genai.FinishReason) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: r}}}
	}
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		stop   string
		reason string
	}{
		{"stop", candidate(genai.FinishReasonStop), StopEnd, ""},
		{"max tokens", candidate(genai.FinishReasonMaxTokens), StopMaxTokens, ""},
		{"safety", candidate(genai.FinishReasonSafety), StopBlocked, string(genai.FinishReasonSafety)},
		{"prohibited", candidate(genai.FinishReasonProhibitedContent), StopBlocked, string(genai.FinishReasonProhibitedContent)},
		{"blocked prompt", &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
		}, StopBlocked, string(genai.BlockedReasonSafety)},
		{"no candidates", &genai.GenerateContentResponse{}, StopEnd, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop, reason := geminiStop(tt.result)
			if stop != tt.stop || reason != tt.reason {
				t.Fatalf("geminiStop = (%q, %q), want (%q, %q)", stop, reason, tt.stop, tt.reason)
			}
		})
	}
}

func TestGeminiContentsRoles(t *testing.T) {
	out := geminiContents([]Message{
		{Role: RoleUser, Content: "Ready!"},
		{Role: RoleAssistant, Content: "Question 1:"},
	})
	if len(out) != 2 || out[0].Role != "user" || out[1].Role != "model" {
		t.Fatalf("unexpected roles: %q %q", out[0].Role, out[1].Role)
	}
	if out[1].Parts[0].Text != "Question 1:" {
		t.Fatalf("unexpected text %q", out[1].Parts[0].Text)
	}
}
