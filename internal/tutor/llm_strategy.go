package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/quest"
)

// Config holds tutor generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for answer judging.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.4,
	}
}

// LLMStrategy asks the model to judge and phrase feedback.
//
// For multiple-choice items the matcher's verdict is final and the model
// only words the feedback. For memorization lines the answer counts when
// either the model or the matcher accepts it.
type LLMStrategy struct {
	provider llm.Provider
	matcher  quest.Matcher
	cfg      Config
}

// NewLLMStrategy creates an LLM-backed strategy.
func NewLLMStrategy(provider llm.Provider, matcher quest.Matcher, cfg Config) *LLMStrategy {
	return &LLMStrategy{provider: provider, matcher: matcher, cfg: cfg}
}

type judgementOutput struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

func (s *LLMStrategy) Judge(ctx context.Context, in JudgeInput) (Judgement, error) {
	ctx = llm.WithPurpose(ctx, "tutor")

	verdict := s.matcher.Check(in.Item, in.Answer)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildJudgeUserMessage(in, verdict)},
		},
		Schema:      JudgementSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Judgement{}, fmt.Errorf("judge answer: %w", err)
	}

	var out judgementOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Judgement{}, fmt.Errorf("parse judgement: %w", err)
	}

	correct := verdict
	if in.Kind == quest.KindMemorization {
		correct = out.Correct || verdict
	}

	feedback := out.Feedback
	if feedback == "" || (in.Kind != quest.KindMemorization && out.Correct != verdict) {
		feedback = cannedFeedback(in, correct)
	}
	return Judgement{Correct: correct, Feedback: feedback}, nil
}
