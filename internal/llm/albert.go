package llm

import "fmt"

const (
	defaultAlbertBaseURL = "https://albert.api.etalab.gouv.fr/v1"
	defaultAlbertModel   = "meta-llama/Llama-3.1-8B-Instruct"
)

// AlbertProvider wraps OpenAIProvider with Albert API defaults.
// Albert exposes an OpenAI-compatible API, so the underlying SDK is reused.
type AlbertProvider struct {
	*OpenAIProvider
}

// NewAlbertProvider creates a provider targeting the Albert API.
func NewAlbertProvider(cfg AlbertConfig) (*AlbertProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("albert API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAlbertBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultAlbertModel
	}

	return &AlbertProvider{OpenAIProvider: newOpenAICompatible(cfg.APIKey, model, baseURL)}, nil
}
