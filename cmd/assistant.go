package cmd

import (
	"fmt"

	"charm.land/log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/regexlab/internal/assist"
	"github.com/abhisek/regexlab/internal/llm"
	"github.com/abhisek/regexlab/internal/store"
)

// newProvider builds the LLM provider. Tests replace it.
var newProvider = llm.NewProvider

// llmConfig resolves the provider configuration: --provider (or
// REGEXLAB_LLM_PROVIDER), else the first provider with an API key in the
// environment, then --model on top.
func llmConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	if p := viper.GetString("provider"); p != "" {
		cfg.Provider = p
	} else if discovered, ok := llm.DiscoverConfig(); ok {
		cfg.Provider = discovered.Provider
	}
	return cfg.WithModel(viper.GetString("model"))
}

// openEventStore opens the event store for recording LLM calls. Failure
// is logged and yields a nil store; the calls still run unrecorded.
func openEventStore() *store.Store {
	dbPath, err := resolveDBPath()
	if err != nil {
		log.Warn("event store unavailable", "error", err)
		return nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Warn("event store unavailable", "path", dbPath, "error", err)
		return nil
	}
	return st
}

// eventRepo returns st's event repo, or a nil interface for a nil store.
func eventRepo(st *store.Store) store.EventRepo {
	if st == nil {
		return nil
	}
	return st.EventRepo()
}

// buildProvider creates the configured provider, recording its calls in
// st. st may be nil.
func buildProvider(cmd *cobra.Command, st *store.Store) (llm.Provider, error) {
	cfg := llmConfig()
	provider, err := newProvider(cmd.Context(), cfg, eventRepo(st))
	if err != nil {
		return nil, err
	}
	log.Debug("LLM provider ready", "provider", cfg.Provider, "model", provider.ModelID())
	return provider, nil
}

func newAssistant(cmd *cobra.Command, st *store.Store) (*assist.Service, error) {
	provider, err := buildProvider(cmd, st)
	if err != nil {
		return nil, fmt.Errorf("AI features unavailable: %w", err)
	}
	return assist.New(provider), nil
}

// withAssistant runs fn with an assistant backed by the event store and
// closes the store afterwards.
func withAssistant(cmd *cobra.Command, fn func(*assist.Service) error) error {
	st := openEventStore()
	if st != nil {
		defer st.Close()
	}
	svc, err := newAssistant(cmd, st)
	if err != nil {
		return err
	}
	return fn(svc)
}
