package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/config"
	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/narration"
	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/quest"
	"github.com/abhisek/homeworkpal/internal/questgen"
	"github.com/abhisek/homeworkpal/internal/store"
	"github.com/abhisek/homeworkpal/internal/tutor"
	"go.uber.org/zap"
)

// stack holds the services shared by the commands.
type stack struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       *store.Store
	assignments *assignment.Service

	// provider is nil when no LLM is configured.
	provider llm.Provider

	closers []func() error
}

// openStack opens the store and the configured assignment backend.
// The LLM provider is optional; without it the tutor falls back to rules
// and quest design is unavailable.
func openStack(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stack, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &stack{cfg: cfg, logger: logger, store: st, closers: []func() error{st.Close}}

	backend, err := s.backend(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	if cfg.ReadOnly {
		backend = assignment.ReadOnly(backend)
	}
	s.assignments = assignment.NewService(backend, logger)

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
	if err != nil {
		logger.Warn("LLM provider not configured, AI features unavailable", zap.Error(err))
	} else {
		s.provider = provider
	}

	logger.Debug("stack ready",
		zap.String("db", dbPath),
		zap.String("backend", cfg.Backend),
		zap.Bool("read_only", backend.ReadOnly()),
		zap.Bool("llm", s.provider != nil))
	return s, nil
}

func (s *stack) backend(ctx context.Context) (assignment.Backend, error) {
	switch s.cfg.Backend {
	case config.BackendFile:
		return assignment.NewFileBackend(s.cfg.AssignmentsFile), nil
	case config.BackendEnv:
		return assignment.NewEnvBackend(s.cfg.AssignmentsEnv), nil
	case config.BackendRedis:
		client, err := assignment.DialRedis(ctx, s.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		return assignment.NewRedisBackend(client, s.cfg.RedisKey), nil
	default:
		return assignment.NewStoreBackend(s.store.DocumentRepo()), nil
	}
}

// Close releases everything openStack acquired, newest first.
func (s *stack) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("close failed", zap.Error(err))
		}
	}
}

// tutor builds the engine for the configured strategy.
func (s *stack) tutor() *tutor.Engine {
	matcher := quest.NewMatcher(s.cfg.RecallThreshold)
	var strategy tutor.Strategy = tutor.NewRulesStrategy(matcher)
	if s.cfg.Strategy == config.StrategyLLM {
		if s.provider != nil {
			strategy = tutor.NewLLMStrategy(s.provider, matcher, tutor.DefaultConfig())
		} else {
			s.logger.Warn("llm strategy requested without a provider, using rules")
		}
	}
	return tutor.NewEngine(strategy, s.logger)
}

// designer returns nil when no LLM is configured.
func (s *stack) designer() *questgen.Designer {
	if s.provider == nil {
		return nil
	}
	return questgen.NewDesigner(s.provider, questgen.DefaultConfig(), s.logger)
}

// voice returns nil unless narration is enabled and an OpenAI key exists.
func (s *stack) voice() *narration.Service {
	if !s.cfg.Narration {
		return nil
	}
	llmCfg, err := llm.ConfigFromEnv()
	if err != nil {
		s.logger.Warn("narration disabled", zap.Error(err))
		return nil
	}
	if llmCfg.OpenAI.APIKey == "" {
		llmCfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	v, err := narration.NewOpenAIVoice(narration.Config{
		APIKey:  llmCfg.OpenAI.APIKey,
		BaseURL: llmCfg.OpenAI.BaseURL,
		Voice:   s.cfg.Voice,
	})
	if err != nil {
		s.logger.Warn("narration disabled", zap.Error(err))
		return nil
	}
	return narration.NewService(v, v, s.logger)
}

// playDeps wires a session driver.
func (s *stack) playDeps(engine *tutor.Engine) play.Deps {
	deps := play.Deps{
		Tutor:       engine,
		Assignments: s.assignments,
		Sessions:    s.store.SessionRepo(),
		Logger:      s.logger,
	}
	if s.provider != nil {
		deps.Story = questgen.NewStoryteller(s.provider, questgen.DefaultStoryConfig(), s.logger)
	}
	if v := s.voice(); v != nil {
		deps.Voice = v
	}
	return deps
}
