package tutor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/quest"
)

func TestLLMStrategy_MultipleChoiceVerdictIsFinal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct": true, "feedback": "Wonderful! 🎉"}`),
	})
	s := NewLLMStrategy(mock, quest.NewMatcher(0), DefaultConfig())
	item := subtractionQuest().Items[0]

	j, err := s.Judge(t.Context(), JudgeInput{Kind: quest.KindMultipleChoice, Item: item, Total: 2, Answer: "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.Correct {
		t.Error("model must not overrule the answer key")
	}
	if !strings.Contains(j.Feedback, "8") {
		t.Errorf("expected canned feedback naming the answer, got %q", j.Feedback)
	}

	req := mock.Calls[0]
	if req.Schema != JudgementSchema {
		t.Error("expected judgement schema")
	}
	if !strings.Contains(req.Messages[0].Content, "Correct option: 8") {
		t.Errorf("prompt missing answer key:\n%s", req.Messages[0].Content)
	}
}

func TestLLMStrategy_UsesModelFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct": true, "feedback": "Wonderful! 🎉"}`),
	})
	s := NewLLMStrategy(mock, quest.NewMatcher(0), DefaultConfig())

	j, err := s.Judge(t.Context(), JudgeInput{Kind: quest.KindMultipleChoice, Item: subtractionQuest().Items[0], Answer: "8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.Correct || j.Feedback != "Wonderful! 🎉" {
		t.Errorf("unexpected judgement: %+v", j)
	}
}

func TestLLMStrategy_MemorizationIsLenient(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"correct": true, "feedback": "You said it! 🎤"}`),
	})
	s := NewLLMStrategy(mock, quest.NewMatcher(0), DefaultConfig())

	j, err := s.Judge(t.Context(), JudgeInput{
		Kind:   quest.KindMemorization,
		Item:   rhymeQuest().Items[1],
		Answer: "a kitty with a fiddler",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.Correct {
		t.Error("expected the model's acceptance to count")
	}
}

func TestLLMStrategy_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	s := NewLLMStrategy(mock, quest.NewMatcher(0), DefaultConfig())

	_, err := s.Judge(t.Context(), JudgeInput{Kind: quest.KindMultipleChoice, Item: subtractionQuest().Items[0], Answer: "8"})
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestLLMStrategy_WithEngineApologises(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue fails every call
	e := NewEngine(NewLLMStrategy(mock, quest.NewMatcher(0), DefaultConfig()), nil)

	res, err := e.Respond(t.Context(), Request{
		Content:  subtractionQuest(),
		Progress: Progress{Stage: StageQuiz, Presented: 1, Total: 2},
		Input:    "8",
	})
	if err == nil || res.Turn.Content != ApologyMessage {
		t.Fatalf("expected apology, got %+v err=%v", res.Turn, err)
	}
}

func TestLLMStrategy_BlockedReplyKeepsProgress(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrContentBlocked{Reason: "SAFETY"}})
	e := NewEngine(NewLLMStrategy(mock, quest.NewMatcher(0), DefaultConfig()), nil)

	before := Progress{Stage: StageQuiz, Presented: 1, Total: 2}
	res, err := e.Respond(t.Context(), Request{Content: subtractionQuest(), Progress: before, Input: "8"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	var blocked *llm.ErrContentBlocked
	if !errors.As(err, &blocked) {
		t.Fatalf("expected the safety block to stay visible, got %v", err)
	}
	if res.Progress != before || res.Turn.Content != ApologyMessage {
		t.Fatalf("expected apology with unchanged progress, got %+v", res)
	}
}
