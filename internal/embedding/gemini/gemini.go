// Package gemini provides an embedder backed by the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"google.golang.org/genai"

	"esgrag/internal/domain"
	"esgrag/internal/logging"
)

const (
	DefaultModel   = "gemini-embedding-001"
	DefaultTimeout = 30 * time.Second
)

// Config configures the Gemini embedder.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  *log.Logger
}

// Embedder calls Models.EmbedContent for each text.
type Embedder struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

// NewEmbedder creates a Gemini embedder. No request is made until Embed.
func NewEmbedder(ctx context.Context, cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini embedder: %w", domain.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}
	return &Embedder{client: client, model: cfg.Model, timeout: cfg.Timeout, logger: logging.OrNop(cfg.Logger)}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "gemini:" + e.model }

// Embed returns the embedding of text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("gemini embed: no embedding returned")
	}
	values := result.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	e.logger.Debug().
		Int("text_length", len(text)).
		Int("embedding_dim", len(vec)).
		Dur("duration", time.Since(start)).
		Msg("gemini embedding generated")
	return vec, nil
}
