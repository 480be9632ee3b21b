package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	Purpose string    // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// Derivation is one recorded derivation run.
type Derivation struct {
	ID          string
	Sequence    int64
	Timestamp   time.Time
	ProjectName string
	ProjectType string
	Tier        int
	Filename    string
	Skills      []string
	Enhanced    bool
	Document    string
}

// DerivationRepo records derivation runs.
type DerivationRepo interface {
	// Record stores d. ID and Timestamp are filled in when empty; the
	// sequence is always assigned here.
	Record(ctx context.Context, d *Derivation) error

	// Get returns one derivation, or ErrNotFound.
	Get(ctx context.Context, id string) (*Derivation, error)

	// List returns derivations newest first.
	List(ctx context.Context, opts QueryOpts) ([]Derivation, error)
}
