package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	// An empty mock queue reports the provider as unavailable.
	_, err = p.Generate(context.Background(), UserPrompt("x"))
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestNewProvider_Albert(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Albert.APIKey = "k"

	p, err := NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultAlbertModel, p.ModelID())
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(context.Background(), DefaultConfig(), nil)
	assert.Error(t, err, "albert without a key")

	_, err = NewProvider(context.Background(), Config{Provider: "bogus"}, nil)
	assert.Error(t, err)
}

func TestNewProvider_TimeoutWrapping(t *testing.T) {
	cfg := Config{Provider: "mock", Timeout: time.Second}
	p, err := NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)

	_, ok := p.(*TimeoutProvider)
	assert.True(t, ok, "expected *TimeoutProvider, got %T", p)

	cfg.Timeout = 0
	p, err = NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	_, ok = p.(*TimeoutProvider)
	assert.False(t, ok)
}

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), UserPrompt("x"))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, "blocking", p.ModelID())

	inner := blockingProvider{}
	assert.Equal(t, Provider(inner), WithTimeout(inner, 0))
}
