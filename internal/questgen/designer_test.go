package questgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/quest"
)

func designJSON(learning, quiz string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"learning_material": learning, "quiz": quiz})
	return data
}

const planetsLearning = "Our solar system has amazing planets! Jupiter is the biggest of all."

const planetsQuiz = `1. What is the biggest planet?
  1) Mars
  2) Jupiter*
  3) Earth
2. Which planet is called the Red Planet?
  1) Mars*
  2) Venus
  3) Saturn
3. What is the name of the planet we live on?
  1) Mercury
  2) Earth*
  3) Neptune`

func TestDesigner_Design(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: designJSON(planetsLearning, planetsQuiz)})
	d := NewDesigner(mock, DefaultConfig(), nil)

	design, err := d.Design(t.Context(), "Learn about the planets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(design.Content, "##LEARNING##\n"+planetsLearning+"\n\n##QUIZ##\n1. What is the biggest planet?") {
		t.Errorf("unexpected content layout:\n%s", design.Content)
	}
	if design.Quest.Kind != quest.KindMultipleChoice || design.Quest.Len() != 3 {
		t.Errorf("unexpected parsed quest: kind=%s len=%d", design.Quest.Kind, design.Quest.Len())
	}

	req := mock.Calls[0]
	if req.Schema != QuestSchema {
		t.Error("expected quest schema")
	}
	if !strings.Contains(req.Messages[0].Content, `Goal: "Learn about the planets"`) {
		t.Errorf("goal missing from prompt:\n%s", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "between 3 and 10") {
		t.Errorf("item range missing from prompt:\n%s", req.Messages[0].Content)
	}
}

func TestDesigner_Memorization(t *testing.T) {
	rhyme := "Hey, diddle, diddle,\nThe cat and the fiddle,\nThe cow jumped over the moon;"
	quiz := "1. Hey, diddle, diddle,\n2. The cat and the fiddle,\n3. The cow jumped over the moon;"
	mock := llm.NewMockProvider(llm.MockResponse{Content: designJSON(rhyme, quiz)})

	design, err := NewDesigner(mock, DefaultConfig(), nil).Design(t.Context(), "Hey Diddle Diddle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.Quest.Kind != quest.KindMemorization {
		t.Errorf("expected memorization, got %s", design.Quest.Kind)
	}
}

func TestDesigner_RetriesRejectedDesign(t *testing.T) {
	tooShort := "1. What is the biggest planet?\n  1) Mars\n  2) Jupiter*"
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: designJSON(planetsLearning, tooShort)},
		llm.MockResponse{Content: designJSON(planetsLearning, planetsQuiz)},
	)

	design, err := NewDesigner(mock, DefaultConfig(), nil).Design(t.Context(), "planets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.Quest.Len() != 3 {
		t.Errorf("expected the second design, got %d items", design.Quest.Len())
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	if !strings.Contains(mock.Calls[1].Messages[0].Content, "previous attempt was rejected") {
		t.Error("retry prompt should carry the rejection reason")
	}
}

func TestDesigner_GivesUp(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: designJSON(planetsLearning, "")},
		llm.MockResponse{Content: designJSON(planetsLearning, "")},
	)

	_, err := NewDesigner(mock, DefaultConfig(), nil).Design(t.Context(), "planets")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "parse" {
		t.Fatalf("expected parse validation error, got %v", err)
	}
}

func TestDesigner_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	_, err := NewDesigner(mock, DefaultConfig(), nil).Design(t.Context(), "planets")
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestDesigner_EmptyGoal(t *testing.T) {
	mock := llm.NewMockProvider()
	if _, err := NewDesigner(mock, DefaultConfig(), nil).Design(t.Context(), "  "); !errors.Is(err, ErrEmptyGoal) {
		t.Fatalf("expected ErrEmptyGoal, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("no call expected for an empty goal")
	}
}
