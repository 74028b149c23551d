package llm

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/regexlab/internal/store"
)

func openEventStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	s := openEventStore(t)
	mock := NewMockProvider(MockResponse{
		Content: "It matches digits.",
		Usage:   Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
	})
	p := WithLogging(mock, "mock", s.EventRepo())

	ctx := WithSession(WithPurpose(context.Background(), PurposeExplain), "sess-1")
	_, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: `Explain \d+`}},
	})
	require.NoError(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "sess-1", ev.SessionID)
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, "explain", ev.Purpose)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 7, ev.OutputTokens)
	assert.True(t, ev.Success)
	assert.Empty(t, ev.ErrorMessage)
	assert.Equal(t, "[system]\nbe brief\n\n[user]\nExplain \\d+\n\n", ev.RequestBody)
	assert.Equal(t, "It matches digits.", ev.ResponseBody)
	assert.WithinDuration(t, time.Now(), ev.Timestamp, time.Minute)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	s := openEventStore(t)
	remote := &ErrRemoteAPI{StatusCode: 401, Body: "nope"}
	p := WithLogging(NewMockProvider(MockResponse{Err: remote}), "albert", s.EventRepo())

	_, err := p.Generate(WithPurpose(context.Background(), PurposeGenerate), UserPrompt("x"))
	require.True(t, errors.Is(err, remote))

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: "generate"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "remote API error (status 401): nope", events[0].ErrorMessage)
	assert.Empty(t, events[0].ResponseBody)
}

func TestLoggingProvider_RecordsAfterCancel(t *testing.T) {
	s := openEventStore(t)
	p := WithLogging(NewMockProvider(MockText("ok")), "mock", s.EventRepo())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The mock ignores ctx, so the call succeeds and must still be recorded.
	_, err := p.Generate(ctx, UserPrompt("x"))
	require.NoError(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("ok")), "mock", nil)
	resp, err := p.Generate(context.Background(), UserPrompt("x"))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, "mock", p.ModelID())
}

func TestSerializeRequest_Schema(t *testing.T) {
	req := UserPrompt("explain")
	req.Schema = testSchema()

	out := serializeRequest(req)
	assert.True(t, strings.HasPrefix(out, "[user]\nexplain\n\n[schema: test-explanation]\n"))
	assert.Contains(t, out, `"sentences"`)
}
