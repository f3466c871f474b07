package tutor

import (
	"errors"
	"testing"
)

func TestReplay_MatchesLiveProgress(t *testing.T) {
	e := rulesEngine()
	c := subtractionQuest()

	var (
		p       Progress
		history []Turn
	)
	for i, in := range []string{"", "ready", "8"} {
		if i > 0 {
			history = append(history, UserTurn(in))
		}
		res, err := e.Respond(t.Context(), Request{Content: c, Stars: 1, Progress: p, Input: in})
		if err != nil {
			t.Fatalf("Respond: %v", err)
		}
		p = res.Progress
		history = append(history, res.Turn)
	}

	got, err := Replay(c, history)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got != p {
		t.Errorf("Replay = %+v, live = %+v", got, p)
	}
}

func TestReplay_SkipsApologies(t *testing.T) {
	history := []Turn{
		{Role: RoleModel, Stage: StageLearning, Content: "learn"},
		UserTurn("ready"),
		{Role: RoleModel, Stage: StageQuiz, Content: "Q1", QuizQuestion: "10 - 2 = ?"},
		UserTurn("8"),
		{Role: RoleModel, Stage: StageQuiz, Content: ApologyMessage},
	}
	p, err := Replay(subtractionQuest(), history)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if p.Stage != StageQuiz || p.Presented != 1 || p.Correct != 0 {
		t.Errorf("unexpected progress: %+v", p)
	}
}

func TestReplay_Empty(t *testing.T) {
	p, err := Replay(subtractionQuest(), nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if p.Started() || p.Total != 2 {
		t.Errorf("unexpected progress: %+v", p)
	}
}

func TestReplay_Inconsistent(t *testing.T) {
	learning := Turn{Role: RoleModel, Stage: StageLearning, Content: "learn"}
	first := Turn{Role: RoleModel, Stage: StageQuiz, Content: "Q1", QuizQuestion: "10 - 2 = ?"}

	tests := []struct {
		name    string
		history []Turn
	}{
		{
			name: "more items than the quest has",
			history: []Turn{
				{Role: RoleModel, Stage: StageQuiz, Content: "Q", QuizQuestion: "?"},
				{Role: RoleModel, Stage: StageQuiz, Content: "Q", QuizQuestion: "?"},
				{Role: RoleModel, Stage: StageQuiz, Content: "Q", QuizQuestion: "?"},
			},
		},
		{
			name: "inflated stars",
			history: []Turn{
				learning, first, UserTurn("8"),
				{Role: RoleModel, Stage: StageQuiz, Content: "Yes!", QuizQuestion: "7 - 3 = ?", StarsEarned: 500},
			},
		},
		{
			name: "negative stars",
			history: []Turn{
				learning, first, UserTurn("8"),
				{Role: RoleModel, Stage: StageQuiz, Content: "Hmm", QuizQuestion: "7 - 3 = ?", StarsEarned: -1},
			},
		},
		{
			name: "credit before any item",
			history: []Turn{
				learning, UserTurn("ready"),
				{Role: RoleModel, Stage: StageQuiz, Content: "Q1", QuizQuestion: "10 - 2 = ?", StarsEarned: 1},
			},
		},
		{
			name: "same item credited twice",
			history: []Turn{
				learning, first, UserTurn("8"),
				{Role: RoleModel, Stage: StageQuiz, Content: "Yes!", StarsEarned: 1},
				UserTurn("8"),
				{Role: RoleModel, Stage: StageQuiz, Content: "Yes again!", StarsEarned: 1},
			},
		},
		{
			name:    "quiz stage without an item",
			history: []Turn{{Role: RoleModel, Stage: StageQuiz, Content: "Q"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Replay(subtractionQuest(), tt.history); !errors.Is(err, ErrInconsistentHistory) {
				t.Fatalf("expected ErrInconsistentHistory, got %v", err)
			}
		})
	}
}

func TestReplay_CreditOnPresentingTurn(t *testing.T) {
	history := []Turn{
		{Role: RoleModel, Stage: StageLearning, Content: "learn"},
		UserTurn("ready"),
		{Role: RoleModel, Stage: StageQuiz, Content: "Q1", QuizQuestion: "10 - 2 = ?"},
		UserTurn("8"),
		{Role: RoleModel, Stage: StageQuiz, Content: "Yes! Q2", QuizQuestion: "7 - 3 = ?", StarsEarned: 1},
	}
	p, err := Replay(subtractionQuest(), history)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if p.Presented != 2 || p.Correct != 1 || p.StarsEarned != 1 {
		t.Errorf("unexpected progress: %+v", p)
	}
}
