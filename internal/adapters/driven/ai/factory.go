// Package ai builds the annotation model client from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/lexview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexview/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
	"github.com/custodia-labs/lexview/internal/postprocessors/chunker"
)

// pingTimeout is the maximum time to wait for model connectivity validation.
const pingTimeout = 5 * time.Second

// ProviderOllama is the only supported model provider.
const ProviderOllama = "ollama"

// ModelSettings holds the model.* configuration.
type ModelSettings struct {
	Provider          string
	BaseURL           string
	Name              string
	Timeout           time.Duration
	RequestsPerSecond float64

	// ChunkSize and ChunkOverlap bound the text sent per entity request,
	// in characters. Zero keeps the chunker defaults.
	ChunkSize    int
	ChunkOverlap int

	// PromptDir holds user-editable prompt templates. Empty keeps the
	// built-in prompts.
	PromptDir string
}

// IsConfigured reports whether a model has been named.
func (s ModelSettings) IsConfigured() bool {
	return s.Name != ""
}

// SettingsFromConfig reads the model.* keys. A missing provider means ollama.
func SettingsFromConfig(store driven.ConfigStore) ModelSettings {
	provider := store.GetString(file.KeyModelProvider)
	if provider == "" {
		provider = ProviderOllama
	}
	return ModelSettings{
		Provider:          provider,
		BaseURL:           store.GetString(file.KeyModelBaseURL),
		Name:              store.GetString(file.KeyModelName),
		Timeout:           time.Duration(store.GetInt(file.KeyModelTimeoutSeconds)) * time.Second,
		RequestsPerSecond: store.GetFloat(file.KeyModelRequestsPerSecond),
		ChunkSize:         store.GetInt(file.KeyModelChunkSize),
		ChunkOverlap:      store.GetInt(file.KeyModelChunkOverlap),
	}
}

// CreateModel builds the client for the configured provider.
// Returns nil if no model is configured.
func CreateModel(settings ModelSettings) (*ollama.Client, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case ProviderOllama, "":
	default:
		return nil, fmt.Errorf("%w: unsupported model provider %q (want %s)",
			domain.ErrInvalidConfig, settings.Provider, ProviderOllama)
	}

	client := ollama.New(ollama.Config{
		BaseURL:           settings.BaseURL,
		Model:             settings.Name,
		Timeout:           settings.Timeout,
		RequestsPerSecond: settings.RequestsPerSecond,
	})

	if settings.PromptDir != "" {
		prompts, err := file.NewPromptStore(settings.PromptDir)
		if err != nil {
			return nil, fmt.Errorf("loading prompts: %w", err)
		}
		client.SetPromptStore(prompts)
	}

	logger.Debug("Model %s configured", client.ModelName())
	return client, nil
}

// NewChunkedExtractor wraps extractor so long judgments are annotated one
// window at a time.
func NewChunkedExtractor(extractor driven.EntityExtractor, settings ModelSettings) driven.EntityExtractor {
	var opts []chunker.Option
	if settings.ChunkSize > 0 {
		opts = append(opts, chunker.WithChunkSize(settings.ChunkSize))
	}
	if settings.ChunkOverlap > 0 {
		opts = append(opts, chunker.WithOverlap(settings.ChunkOverlap))
	}
	return chunker.NewExtractor(extractor, chunker.New(opts...), 1)
}

// ValidateModel builds the configured client and pings it.
func ValidateModel(ctx context.Context, settings ModelSettings) error {
	client, err := CreateModel(settings)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("%w: no model configured", domain.ErrModelUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Ping(ctx)
}
