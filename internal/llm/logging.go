package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/homeworkpal/internal/metrics"
	"github.com/abhisek/homeworkpal/internal/store"
	"go.uber.org/zap"
)

// LoggingProvider records every call in the event log, the process log and
// the Prometheus collectors.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	logger *zap.Logger
}

// WithLogging wraps p. events may be nil, in which case only log lines and
// metrics are produced.
func WithLogging(p Provider, events store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, events: events, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		SessionID:   SessionFrom(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	fields := []zap.Field{
		zap.String("purpose", ev.Purpose),
		zap.String("model", ev.Model),
		zap.Duration("latency", elapsed),
	}
	if ev.SessionID != "" {
		fields = append(fields, zap.String("session", ev.SessionID))
	}

	var blocked *ErrContentBlocked
	switch {
	case err == nil:
		l.logger.Debug("llm call", append(fields,
			zap.Int("input_tokens", ev.InputTokens),
			zap.Int("output_tokens", ev.OutputTokens))...)
	case errors.As(err, &blocked):
		ev.ErrorMessage = err.Error()
		l.logger.Info("llm output withheld by safety filter", append(fields, zap.String("reason", blocked.Reason))...)
	default:
		ev.ErrorMessage = err.Error()
		l.logger.Warn("llm call failed", append(fields, zap.Error(err))...)
	}

	metrics.ObserveLLM(ev.Purpose, err == nil, elapsed, ev.InputTokens, ev.OutputTokens)

	if l.events != nil {
		// The caller may have given up on the call; the record is still wanted.
		if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
			l.logger.Warn("record llm event", zap.Error(logErr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// transcript renders req the way `homeworkpal llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
