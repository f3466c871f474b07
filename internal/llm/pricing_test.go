package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		wantInput float64
		found     bool
	}{
		{"gpt-4o-mini", 0.15, true},
		{"gpt-4o", 2.5, true},
		{"claude-haiku-4-5-20251001", 1, true},
		{"claude-sonnet-4-20250514", 3, true},
		{"models/gemini-2.5-flash", 0.3, true},
		{"gemini-2.5-flash-lite", 0.1, true},
		{"google/gemini-2.0-flash-exp:free", 0, true},
		{"mock", 0, false},
		{"gpt-4", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if (c != nil) != tt.found {
				t.Fatalf("found = %v, want %v", c != nil, tt.found)
			}
			if c != nil && c.InputPerMTok != tt.wantInput {
				t.Errorf("input price = %v, want %v", c.InputPerMTok, tt.wantInput)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	got := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}.Cost(2_000, 400)
	if math.Abs(got-0.004) > 1e-12 {
		t.Fatalf("Cost = %v, want 0.004", got)
	}
}
