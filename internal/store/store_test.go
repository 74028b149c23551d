package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
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
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
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
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
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

func TestLLMEventsSchemaFollowsEntSchema(t *testing.T) {
	table, err := llmEventsSchema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if table.Name != "llm_request_events" {
		t.Errorf("table name = %q", table.Name)
	}

	var names []string
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != strings.Join(llmEventColumns, ",") {
		t.Errorf("columns = %v, want %v", names, llmEventColumns)
	}

	ts, ok := table.Column("timestamp")
	if !ok {
		t.Fatal("missing timestamp column")
	}
	if ts.Default != nil {
		t.Errorf("timestamp default = %v, want none", ts.Default)
	}
	if c, _ := table.Column("input_tokens"); c.Default != 0 {
		t.Errorf("input_tokens default = %v, want 0", c.Default)
	}

	idx := map[string]bool{}
	for _, i := range table.Indexes {
		idx[i.Name] = true
	}
	for _, want := range []string{"llmrequestevent_timestamp", "llmrequestevent_session_id", "llmrequestevent_purpose"} {
		if !idx[want] {
			t.Errorf("missing index %s in %v", want, idx)
		}
	}
}

func TestOpenCreatesIndexes(t *testing.T) {
	s := openTestStore(t)
	var n int
	err := s.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = 'llm_request_events' AND name LIKE 'llmrequestevent_%'`).Scan(&n)
	if err != nil {
		t.Fatalf("count indexes: %v", err)
	}
	if n != 5 {
		t.Errorf("got %d indexes, want 5", n)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "albert", Model: "m", Purpose: "explain", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events after reopen, want 1", len(events))
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)

	inputs := []LLMRequestEventData{
		{SessionID: "s1", Provider: "albert", Model: "llama", Purpose: "explain", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true, RequestBody: "[user]\nexplain", ResponseBody: "It matches digits."},
		{SessionID: "s1", Provider: "albert", Model: "llama", Purpose: "generate", InputTokens: 5, OutputTokens: 3, LatencyMs: 300, Success: false, ErrorMessage: "remote API error (status 500): boom"},
		{SessionID: "s2", Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 7, OutputTokens: 9, LatencyMs: 200, Success: true},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].Model != "gpt-4o-mini" {
		t.Errorf("expected newest first, got model %q", all[0].Model)
	}
	if all[2].Timestamp.Before(before) {
		t.Errorf("timestamp %v earlier than test start", all[2].Timestamp)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d events with limit 2", len(limited))
	}

	explains, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "explain"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(explains) != 2 {
		t.Errorf("got %d explain events, want 2", len(explains))
	}

	s1, err := repo.QueryLLMEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("got %d events for session s1, want 2", len(s1))
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("got %d events from the future", len(future))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	want := LLMRequestEventData{
		SessionID:    "abc",
		Provider:     "albert",
		Model:        "meta-llama/Llama-3.1-8B-Instruct",
		Purpose:      "generate",
		InputTokens:  12,
		OutputTokens: 4,
		LatencyMs:    321,
		Success:      true,
		RequestBody:  "[user]\nGenerate a regular expression for: digits",
		ResponseBody: "`\\d+`",
	}
	if err := repo.AppendLLMRequest(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(events))
	}

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event")
	}
	if got.LLMRequestEventData != want {
		t.Errorf("got %+v, want %+v", got.LLMRequestEventData, want)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, in := range []LLMRequestEventData{
		{Provider: "albert", Model: "llama", Purpose: "explain", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "albert", Model: "llama", Purpose: "explain", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "generate", InputTokens: 1, OutputTokens: 2, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	want := PurposeUsage{Purpose: "explain", Calls: 2, InputTokens: 40, OutputTokens: 60, AvgLatencyMs: 200}
	if byPurpose[0] != want {
		t.Errorf("got %+v, want %+v", byPurpose[0], want)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
	if byModel[1] != (ModelUsage{Model: "gpt-4o-mini", Calls: 1, InputTokens: 1, OutputTokens: 2}) {
		t.Errorf("got %+v", byModel[1])
	}
}

func TestLLMUsage_Empty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected no usage, got %v", stats)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("REGEXLAB_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("got %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REGEXLAB_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "regexlab", "regexlab.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
