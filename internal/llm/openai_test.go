package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   defaultAlbertModel,
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func newTestAlbertProvider(t *testing.T, handler http.HandlerFunc) *AlbertProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAlbertProvider(AlbertConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func TestAlbertProvider_RequestShape(t *testing.T) {
	var body []byte
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("It matches two digits."))
	}

	p := newTestAlbertProvider(t, handler)
	resp, err := p.Generate(context.Background(), UserPrompt("Explain \\d{2}"))
	require.NoError(t, err)

	assert.Equal(t, defaultAlbertModel, gjson.GetBytes(body, "model").String())
	assert.Equal(t, int64(1), gjson.GetBytes(body, "messages.#").Int())
	assert.Equal(t, "user", gjson.GetBytes(body, "messages.0.role").String())
	assert.Equal(t, "Explain \\d{2}", gjson.GetBytes(body, "messages.0.content").String())
	assert.False(t, gjson.GetBytes(body, "temperature").Exists(), "temperature should be omitted")
	assert.False(t, gjson.GetBytes(body, "max_completion_tokens").Exists(), "max tokens should be omitted")
	assert.False(t, gjson.GetBytes(body, "response_format").Exists())

	assert.Equal(t, "It matches two digits.", resp.Content)
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)
}

func TestAlbertProvider_Defaults(t *testing.T) {
	p, err := NewAlbertProvider(AlbertConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultAlbertModel, p.ModelID())

	_, err = NewAlbertProvider(AlbertConfig{})
	assert.Error(t, err)
}

func TestAlbertProvider_NonJSONErrorBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("x"))
	require.Error(t, err)

	var remote *ErrRemoteAPI
	require.True(t, errors.As(err, &remote), "got %T", err)
	assert.Equal(t, 500, remote.StatusCode)
	assert.Equal(t, "upstream exploded", remote.Body)

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestAlbertProvider_ClientErrorKeepsRawBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid API key"}`))
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("x"))
	require.Error(t, err)

	var remote *ErrRemoteAPI
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, `remote API error (status 401): {"detail":"Invalid API key"}`, err.Error())
}

func TestAlbertProvider_NonOKSuccessStatusIsAnError(t *testing.T) {
	raw := `{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}]}`
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(raw))
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("x"))
	require.Error(t, err)

	var remote *ErrRemoteAPI
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusCreated, remote.StatusCode)
	assert.Equal(t, raw, remote.Body)
}

func TestOpenAIProvider_StructuredErrorKeepsRawBody(t *testing.T) {
	raw := `{"error":{"type":"server_error","message":"Internal server error"}}`
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(raw))
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("x"))

	var remote *ErrRemoteAPI
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadGateway, remote.StatusCode)
	assert.Equal(t, raw, remote.Body)
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("test"))
	require.Error(t, err)

	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "expected ErrRateLimit, got: %T (%v)", err, err)
}

func TestOpenAIProvider_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p, err := NewAlbertProvider(AlbertConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), UserPrompt("x"))
	require.Error(t, err)

	var remote *ErrRemoteAPI
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, 0, remote.StatusCode)
	assert.True(t, strings.HasPrefix(remote.Error(), "remote API request failed:"))
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := chatCompletion("")
		resp["choices"] = []any{}
		json.NewEncoder(w).Encode(resp)
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("x"))

	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestOpenAIProvider_SchemaValidated(t *testing.T) {
	var body []byte
	handler := func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"sentences":["It matches digits."],"valid_examples":["42"]}`))
	}

	p := newTestAlbertProvider(t, handler)
	req := UserPrompt("describe")
	req.Schema = testSchema()

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sentences":["It matches digits."],"valid_examples":["42"]}`, resp.Content)
	assert.Equal(t, "json_schema", gjson.GetBytes(body, "response_format.type").String())
	assert.Equal(t, "test-explanation", gjson.GetBytes(body, "response_format.json_schema.name").String())
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"sentences":["It matches digits."]}`))
	}

	p := newTestAlbertProvider(t, handler)
	req := UserPrompt("describe")
	req.Schema = testSchema()

	_, err := p.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestOpenAIProvider_SystemPrompt(t *testing.T) {
	var body []byte
	handler := func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("ok"))
	}

	p := newTestAlbertProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		System:      "You explain regular expressions.",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   64,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "system", gjson.GetBytes(body, "messages.0.role").String())
	assert.Equal(t, int64(64), gjson.GetBytes(body, "max_completion_tokens").Int())
	assert.InDelta(t, 0.5, gjson.GetBytes(body, "temperature").Float(), 0.001)
}

func TestOpenAIProvider_ModelMapping(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: "https://example.invalid/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
}
