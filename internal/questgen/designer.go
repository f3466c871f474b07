package questgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/quest"
	"go.uber.org/zap"
)

// ErrEmptyGoal is returned when Design is called without a goal.
var ErrEmptyGoal = errors.New("quest goal is empty")

// Designer turns an author's plain-language goal into quest content.
type Designer struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewDesigner creates a Designer.
func NewDesigner(provider llm.Provider, cfg Config, logger *zap.Logger) *Designer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Designer{provider: provider, cfg: cfg, logger: logger}
}

type designOutput struct {
	LearningMaterial string `json:"learning_material"`
	Quiz             string `json:"quiz"`
}

// Design generates quest content for goal. The content is parsed and
// validated before it is returned; a design that never passes is an error.
func (d *Designer) Design(ctx context.Context, goal string) (*Design, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}
	ctx = llm.WithPurpose(ctx, "quest-design")

	var rejected string
	for attempt := 1; ; attempt++ {
		design, verr, err := d.attempt(ctx, goal, rejected)
		if err != nil {
			return nil, err
		}
		if verr == nil {
			return design, nil
		}
		if !verr.Retryable || attempt >= d.cfg.MaxAttempts {
			return nil, fmt.Errorf("quest design rejected: %w", verr)
		}
		d.logger.Info("quest design rejected, retrying",
			zap.String("validator", verr.Validator), zap.String("reason", verr.Message), zap.Int("attempt", attempt))
		rejected = verr.Message
	}
}

func (d *Designer) attempt(ctx context.Context, goal, rejected string) (*Design, *ValidationError, error) {
	resp, err := d.provider.Generate(ctx, llm.Request{
		System: designSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDesignUserMessage(goal, d.cfg, rejected)},
		},
		Schema:      QuestSchema,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("quest design: %w", err)
	}

	var out designOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, nil, fmt.Errorf("parse quest design: %w", err)
	}

	content := quest.Join(out.LearningMaterial, out.Quiz)
	parsed, err := quest.Parse(content)
	if err != nil {
		return nil, &ValidationError{Validator: "parse", Message: err.Error(), Retryable: true}, nil
	}
	for _, v := range d.cfg.Validators {
		if verr := v.Validate(parsed); verr != nil {
			return nil, verr, nil
		}
	}
	return &Design{Content: content, Quest: parsed}, nil, nil
}
