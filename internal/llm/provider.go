package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a reply for a single request. agentbrief uses it to
// rewrite the prose sections of a derived config; every call is one user
// message, optionally constrained by a JSON schema.
type Provider interface {
	// Generate sends req and returns the reply. With a Schema set the
	// returned Content has already been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature is in [0, 1]; zero leaves the provider default.
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

// Schema is a named JSON Schema. Name shows up in provider requests, event
// logs and validation errors ("config-sections").
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

func (s *Schema) name() string {
	if s == nil {
		return ""
	}
	return s.Name
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a provider reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that actually served the call
	StopReason string // StopEnd or StopMaxTokens
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// truncated reports a structured reply that hit the token limit. Partial
// JSON is never worth validating.
func truncated(req Request, stop string, raw json.RawMessage) error {
	if req.Schema == nil || stop != StopMaxTokens {
		return nil
	}
	return &ErrMaxTokensExceeded{Schema: req.Schema.Name, Limit: req.MaxTokens, Content: raw}
}

type purposeKey struct{}

// PurposeEnhance labels section-enhancement requests.
const PurposeEnhance = "enhance"

// WithPurpose labels the calls made with ctx. The label is recorded in the
// event log and in retry log lines.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
