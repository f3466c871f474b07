package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion. Every vendor adapter and every
// middleware layer (timeout, retry, logging) implements it.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single completion call: the tutor's judging prompt, the
// quest designer's lesson request or the storyteller's intro.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the vendor for structured output and makes
	// Generate reject anything that does not conform.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default for vendors
	// that treat zero as unset.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema plus the name vendors need to label it.
type Schema struct {
	// Name is kebab-case, e.g. "answer-judgement". It also keys the
	// compiled-schema cache, so two different definitions must not share it.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output. Content is the JSON object for schema
// requests and the raw text otherwise.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopBlocked   = "blocked"
)

// finish applies the checks every vendor shares once raw output is in hand.
// A blocked completion never reaches a child, and a truncated one cannot be
// trusted to be a complete JSON object.
func finish(req Request, content json.RawMessage, stop string) error {
	switch stop {
	case StopBlocked:
		return &ErrContentBlocked{}
	case StopMaxTokens:
		if req.Schema != nil {
			return &ErrMaxTokensExceeded{Content: content}
		}
	}
	return validateResponse(req.Schema, content)
}
