package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "albert", "openai", "anthropic", "gemini", "mock"
	Provider string

	Albert    AlbertConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single request including retries. Zero means no
	// timeout beyond the HTTP client's own defaults.
	Timeout time.Duration
}

// AlbertConfig holds configuration for the Albert API, an
// OpenAI-compatible chat-completion service.
type AlbertConfig struct {
	APIKey  string
	Model   string // Default: "meta-llama/Llama-3.1-8B-Instruct"
	BaseURL string // Default: "https://albert.api.etalab.gouv.fr/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config targeting Albert with a single attempt
// and no timeout.
func DefaultConfig() Config {
	return Config{
		Provider: "albert",
		Albert: AlbertConfig{
			Model:   defaultAlbertModel,
			BaseURL: defaultAlbertBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from REGEXLAB_* environment variables,
// falling back to defaults for unset values. Keys not set under the
// REGEXLAB_ prefix are picked up from the standard variables
// (ALBERT_API_KEY, OPENAI_API_KEY, ...).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("REGEXLAB_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.Albert.APIKey = firstEnv("REGEXLAB_ALBERT_API_KEY", "ALBERT_API_KEY")
	if m := os.Getenv("REGEXLAB_ALBERT_MODEL"); m != "" {
		cfg.Albert.Model = m
	}
	if u := os.Getenv("REGEXLAB_ALBERT_BASE_URL"); u != "" {
		cfg.Albert.BaseURL = u
	}

	cfg.OpenAI.APIKey = firstEnv("REGEXLAB_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("REGEXLAB_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("REGEXLAB_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Anthropic.APIKey = firstEnv("REGEXLAB_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("REGEXLAB_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.Gemini.APIKey = firstEnv("REGEXLAB_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("REGEXLAB_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if v := os.Getenv("REGEXLAB_LLM_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Retry.MaxAttempts = n + 1
		}
	}
	if v := os.Getenv("REGEXLAB_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig checks the standard API key env vars in priority order
// (Albert → OpenAI → Anthropic → Gemini) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("ALBERT_API_KEY"); k != "" {
		cfg.Provider = "albert"
		cfg.Albert.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "albert":
		if c.Albert.APIKey == "" {
			return fmt.Errorf("ALBERT_API_KEY is required for the albert provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ModelID returns the configured model for the selected provider.
func (c Config) ModelID() string {
	switch c.Provider {
	case "albert":
		return c.Albert.Model
	case "openai":
		return c.OpenAI.Model
	case "anthropic":
		return c.Anthropic.Model
	case "gemini":
		return c.Gemini.Model
	case "mock":
		return "mock"
	}
	return ""
}

// WithModel overrides the model of the selected provider.
func (c Config) WithModel(model string) Config {
	if model == "" {
		return c
	}
	switch c.Provider {
	case "albert":
		c.Albert.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "anthropic":
		c.Anthropic.Model = model
	case "gemini":
		c.Gemini.Model = model
	}
	return c
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
