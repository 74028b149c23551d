package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider implements Provider using the OpenAI SDK.
// It also serves Albert and other OpenAI-compatible APIs via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return newOpenAICompatible(cfg.APIKey, resolveModel(cfg.Model, openaiModels), cfg.BaseURL), nil
}

func newOpenAICompatible(apiKey, model, baseURL string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &capturingDoer{inner: config.HTTPClient}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	// Use JSON schema response format when schema is provided.
	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}

		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(schemaBytes),
				Strict: true,
			},
		}
	}

	capture := &responseCapture{}
	resp, err := p.client.CreateChatCompletion(context.WithValue(ctx, captureKey{}, capture), chatReq)
	if err != nil {
		return nil, mapOpenAIError(err, capture)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in response"),
		}
	}

	content := resp.Choices[0].Message.Content

	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonStop:
		return "end"
	case openai.FinishReasonLength:
		return "max_tokens"
	default:
		return "end"
	}
}

func mapOpenAIError(err error, capture *responseCapture) error {
	apiErr := &ErrRemoteAPI{Err: err}

	var oaiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &oaiErr):
		apiErr.StatusCode = oaiErr.HTTPStatusCode
		apiErr.Body = oaiErr.Message
	case errors.As(err, &reqErr):
		apiErr.StatusCode = reqErr.HTTPStatusCode
		apiErr.Body = string(reqErr.Body)
	}

	// The SDK parses error bodies; prefer the raw bytes when we saw them.
	if capture != nil && capture.status != 0 {
		apiErr.StatusCode = capture.status
		apiErr.Body = string(capture.body)
	}

	return classifyStatus(apiErr)
}

type captureKey struct{}

// responseCapture receives the status and raw body of any non-200 response.
type responseCapture struct {
	status int
	body   []byte
}

// capturingDoer records non-200 responses for the request's capture and
// hands the SDK an unread copy of the body. Other 2xx statuses never reach
// the SDK's decoder.
type capturingDoer struct {
	inner openai.HTTPDoer
}

func (d *capturingDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.inner.Do(req)
	if err != nil || resp.StatusCode == http.StatusOK {
		return resp, err
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read error response: %w", readErr)
	}
	if capture, ok := req.Context().Value(captureKey{}).(*responseCapture); ok {
		capture.status = resp.StatusCode
		capture.body = body
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil, &ErrRemoteAPI{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
