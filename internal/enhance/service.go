// Package enhance optionally rewrites the prose sections of an assembled
// config through an LLM. Failures never surface to the caller as a broken
// document; the deterministic sections are used instead.
package enhance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/abhisek/agentbrief/internal/answers"
	"github.com/abhisek/agentbrief/internal/assemble"
	"github.com/abhisek/agentbrief/internal/decision"
	"github.com/abhisek/agentbrief/internal/llm"
)

// Enhancer produces section overrides for an assembled document.
type Enhancer interface {
	Enhance(ctx context.Context, doc assemble.Document) (*assemble.Overrides, error)
}

// Service implements Enhancer on top of an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	cache    *lru.Cache[string, assemble.Overrides]
	logger   *zap.Logger
}

// NewService creates an enhancement service. logger may be nil.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{provider: provider, cfg: cfg, logger: logger}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, assemble.Overrides](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create enhancement cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

type sectionsOutput struct {
	Role       string `json:"role"`
	Context    string `json:"context"`
	Directives string `json:"directives"`
	BuildSeq   string `json:"buildSeq"`
}

// Enhance sends one schema-constrained request for the four rewritable
// sections. doc must be the deterministic assembly (no overrides applied).
// Fields are returned as the model wrote them; blank ones are ignored by
// the assembler.
func (s *Service) Enhance(ctx context.Context, doc assemble.Document) (*assemble.Overrides, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEnhance)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	userMsg := buildUserMessage(doc)
	key := fingerprint(s.provider.ModelID(), userMsg)
	if s.cache != nil {
		if ov, ok := s.cache.Get(key); ok {
			s.logger.Debug("enhancement cache hit", zap.String("key", key[:12]))
			return &ov, nil
		}
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      SectionsSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("section enhancement: %w", err)
	}

	var out sectionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse enhancement response: %w", err)
	}

	ov := assemble.Overrides{
		Role:       out.Role,
		Context:    out.Context,
		Directives: out.Directives,
		BuildSeq:   out.BuildSeq,
	}
	if s.cache != nil {
		s.cache.Add(key, ov)
	}
	return &ov, nil
}

func fingerprint(model, msg string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + msg))
	return hex.EncodeToString(sum[:])
}

// Apply runs e and swallows any failure: the result is nil when enhancement
// is unavailable, times out, or returns nothing usable. e may be nil.
func Apply(ctx context.Context, e Enhancer, doc assemble.Document, logger *zap.Logger) *assemble.Overrides {
	if e == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ov, err := e.Enhance(ctx, doc)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if name := llm.SchemaName(err); name != "" {
			fields = append(fields, zap.String("schema", name))
		}
		logger.Warn("enhancement unavailable, using deterministic sections", fields...)
		return nil
	}
	if !ov.Any() {
		return nil
	}
	return ov
}

// Render derives and assembles the document for a, applying e when it is
// non-nil. A nil or failing enhancer yields the deterministic document.
func Render(ctx context.Context, e Enhancer, a answers.Set, now time.Time, logger *zap.Logger) (decision.Result, assemble.Document) {
	r := decision.Derive(a)
	doc := assemble.Assemble(a, r, assemble.Options{Now: now})
	if ov := Apply(ctx, e, doc, logger); ov != nil {
		doc = assemble.Assemble(a, r, assemble.Options{Overrides: ov, Now: now})
	}
	return r, doc
}
