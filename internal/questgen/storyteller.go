package questgen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/quest"
	"go.uber.org/zap"
)

// Storyteller writes the intro for a quest.
type Storyteller struct {
	provider llm.Provider
	cfg      StoryConfig
	logger   *zap.Logger
}

// NewStoryteller creates a Storyteller. A nil provider always yields the
// fallback story.
func NewStoryteller(provider llm.Provider, cfg StoryConfig, logger *zap.Logger) *Storyteller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storyteller{provider: provider, cfg: cfg, logger: logger}
}

// Tell returns the story for an assignment. It never fails; any
// generation problem yields FallbackStory(title).
func (s *Storyteller) Tell(ctx context.Context, title, description string) Story {
	if s == nil || s.provider == nil {
		return FallbackStory(title)
	}
	ctx = llm.WithPurpose(ctx, "story")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: storySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildStoryUserMessage(title, quest.LearningPreview(description))},
		},
		Schema:      StorySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Warn("story generation failed, using fallback", zap.String("title", title), zap.Error(err))
		return FallbackStory(title)
	}

	var story Story
	if err := json.Unmarshal(resp.Content, &story); err != nil || strings.TrimSpace(story.Story) == "" {
		s.logger.Warn("story response unusable, using fallback", zap.String("title", title), zap.Error(err))
		return FallbackStory(title)
	}
	if strings.TrimSpace(story.Title) == "" {
		story.Title = title
	}
	return story
}
