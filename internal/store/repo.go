package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // exact purpose match when set
	SessionID string    // exact session match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// DocumentRepo stores whole JSON documents under a key. Every write
// replaces the previous body.
type DocumentRepo interface {
	// LoadDocument returns the body stored under key, or nil if none.
	LoadDocument(ctx context.Context, key string) ([]byte, error)

	// SaveDocument replaces the body stored under key.
	SaveDocument(ctx context.Context, key string, body []byte) error
}

// SessionRecord is the persisted progress of one quest session.
type SessionRecord struct {
	ID           string
	AssignmentID string
	Stage        string
	Presented    int
	Correct      int
	StarsEarned  int
	Total        int
	Completed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TurnRecord is one conversation turn. Body is the JSON encoding of the
// turn as the caller defines it.
type TurnRecord struct {
	Sequence  int64
	Position  int
	Role      string
	Body      []byte
	Timestamp time.Time
}

// SessionRepo persists session progress and the append-only turn log.
type SessionRepo interface {
	// SaveSession upserts rec and appends turns in one transaction.
	SaveSession(ctx context.Context, rec SessionRecord, turns ...TurnRecord) error

	// GetSession returns the session, or nil if it does not exist.
	GetSession(ctx context.Context, id string) (*SessionRecord, error)

	// SessionTurns returns a session's turns in position order.
	SessionTurns(ctx context.Context, id string) ([]TurnRecord, error)

	// SessionsForAssignment returns an assignment's sessions, newest first.
	SessionsForAssignment(ctx context.Context, assignmentID string) ([]SessionRecord, error)
}
