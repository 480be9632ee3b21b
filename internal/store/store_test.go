package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent/dialect"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Dialect() != dialect.SQLite {
		t.Fatalf("dialect = %q, want sqlite", s.Dialect())
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"postgres://u:p@localhost/db", true},
		{" postgresql://localhost/db", true},
		{"/tmp/agentbrief.db", false},
		{"file::memory:?cache=shared", false},
	}
	for _, tt := range tests {
		if got := isPostgresDSN(tt.dsn); got != tt.want {
			t.Errorf("isPostgresDSN(%q) = %v, want %v", tt.dsn, got, tt.want)
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"llm_request_events", "derivations", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.DerivationRepo().Record(ctx, &Derivation{ProjectType: "library", Filename: "AGENTS.md"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	list, err := s.DerivationRepo().List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d derivations after reopen, want 1", len(list))
	}

	// The sequence continues rather than restarting.
	next, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next != 2 {
		t.Errorf("next sequence = %d, want 2", next)
	}
}

func TestDerivationRecordAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.DerivationRepo()
	ctx := context.Background()

	when := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	d := &Derivation{
		Timestamp:   when,
		ProjectName: "orders-api",
		ProjectType: "api-backend",
		Tier:        1,
		Filename:    "CLAUDE.md",
		Skills:      []string{"designing-rest-apis", "validating-user-input"},
		Enhanced:    true,
		Document:    "# doc",
	}
	if err := repo.Record(ctx, d); err != nil {
		t.Fatalf("record: %v", err)
	}
	if d.ID == "" {
		t.Fatal("expected an id to be assigned")
	}

	got, err := repo.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Timestamp.Equal(when) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, when)
	}
	if got.ProjectName != "orders-api" || got.Tier != 1 || !got.Enhanced || got.Document != "# doc" {
		t.Errorf("unexpected record: %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[1] != "validating-user-input" {
		t.Errorf("skills = %v", got.Skills)
	}
}

func TestDerivationGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.DerivationRepo().Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDerivationListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.DerivationRepo()
	ctx := context.Background()

	for _, pt := range []string{"web-app", "cli-tool", "library"} {
		if err := repo.Record(ctx, &Derivation{ProjectType: pt, Filename: "AGENTS.md"}); err != nil {
			t.Fatalf("record %s: %v", pt, err)
		}
	}

	list, err := repo.List(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d, want 2", len(list))
	}
	if list[0].ProjectType != "library" || list[1].ProjectType != "cli-tool" {
		t.Errorf("order = %s, %s; want library, cli-tool", list[0].ProjectType, list[1].ProjectType)
	}
	if list[0].Skills == nil {
		t.Error("empty skill list should decode as non-nil")
	}
}

func TestLLMEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "enhance", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "enhance", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", LatencyMs: 90, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "enhance"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d enhance events, want 2", len(got))
	}
	if got[0].InputTokens != 300 {
		t.Errorf("newest first: input tokens = %d, want 300", got[0].InputTokens)
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one.Model != "claude-haiku-4-5" || !one.Success {
		t.Errorf("unexpected event: %+v", one)
	}

	if _, err := repo.GetLLMEvent(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing event err = %v, want ErrNotFound", err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	enh := byPurpose[0]
	if enh.Purpose != "enhance" || enh.Calls != 2 || enh.InputTokens != 400 || enh.OutputTokens != 200 || enh.AvgLatencyMs != 300 {
		t.Errorf("enhance usage = %+v", enh)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "gpt-4o-mini" {
		t.Errorf("usage by model = %+v", byModel)
	}
}
