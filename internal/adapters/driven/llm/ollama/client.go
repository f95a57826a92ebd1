// Package ollama provides entity extraction and summarisation backed by an
// Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
)

// Ensure Client implements the capability interfaces.
var (
	_ driven.EntityExtractor  = (*Client)(nil)
	_ driven.Summariser       = (*Client)(nil)
	_ driven.PromptStoreAware = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL           = "http://localhost:11434"
	DefaultModel             = "llama3.2"
	DefaultTimeout           = 120 * time.Second
	DefaultRequestsPerSecond = 1.0
)

// Config holds configuration for the Ollama client.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to prompt (default: llama3.2).
	Model string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond caps the request rate (default: 1).
	RequestsPerSecond float64
}

// Client calls the Ollama generate API.
type Client struct {
	client      *http.Client
	baseURL     string
	model       string
	limiter     *RateLimiter
	promptStore driven.PromptStore
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Format  string   `json:"format,omitempty"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// New creates a new Ollama client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		limiter: NewRateLimiter(RateLimitConfig{RequestsPerSecond: cfg.RequestsPerSecond, BurstSize: 2}),
	}
}

// ModelName returns the model being prompted.
func (c *Client) ModelName() string {
	return c.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (c *Client) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// generate sends one non-streaming JSON-mode prompt and returns the raw
// model output.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Format:  "json",
		Options: &options{Temperature: 0},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()
	logger.Debug("Ollama %s responded %d in %s", c.model, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimitError(retryAfter(resp))
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrModelResponse, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrModelResponse, err)
	}
	return gen.Response, nil
}

// Ping checks that the server is reachable using the /api/tags endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}
	return nil
}

// prompt fills the named template with text, falling back to the built-in
// template when no store is set or loading fails.
func (c *Client) prompt(name, fallback, text string) string {
	template := fallback
	if c.promptStore != nil {
		if loaded, err := c.promptStore.Load(name); err == nil {
			template = loaded
		} else {
			logger.Debug("Prompt %q unavailable: %v", name, err)
		}
	}
	return strings.Replace(template, "%s", text, 1)
}
