package questgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/homeworkpal/internal/llm"
)

func TestStoryteller_Tell(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"title":"The Planet Detective","story":"You are a space detective! 🚀 The planets need your help."}`),
	})
	s := NewStoryteller(mock, DefaultStoryConfig(), nil)

	story := s.Tell(t.Context(), "Planets", "##LEARNING##\nJupiter is big.\n\n##QUIZ##\n1. Q\n  1) A*\n  2) B")
	if story.Title != "The Planet Detective" || !strings.Contains(story.Story, "space detective") {
		t.Errorf("unexpected story: %+v", story)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Jupiter is big.") {
		t.Errorf("learning material missing from prompt:\n%s", msg)
	}
	if strings.Contains(msg, "1) A*") {
		t.Errorf("quiz answers must not reach the story prompt:\n%s", msg)
	}
}

func TestStoryteller_Fallback(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"empty story", llm.MockResponse{Content: json.RawMessage(`{"title":"x","story":""}`)}},
		{"bad json", llm.MockResponse{Content: json.RawMessage(`"just text"`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStoryteller(llm.NewMockProvider(tt.resp), DefaultStoryConfig(), nil)
			got := s.Tell(t.Context(), "Subtraction", "")
			if got != FallbackStory("Subtraction") {
				t.Errorf("expected fallback, got %+v", got)
			}
		})
	}
}

func TestStoryteller_NilProvider(t *testing.T) {
	s := NewStoryteller(nil, DefaultStoryConfig(), nil)
	if got := s.Tell(t.Context(), "Rhymes", ""); got.Story != "Let's get started with your assignment!" {
		t.Errorf("unexpected story: %+v", got)
	}
}
