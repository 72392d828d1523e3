package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"

	"esgrag/internal/chunker"
	"esgrag/internal/config"
	"esgrag/internal/domain"
	gemembed "esgrag/internal/embedding/gemini"
	oaembed "esgrag/internal/embedding/openai"
	"esgrag/internal/embedding/tfidf"
	gemgen "esgrag/internal/generation/gemini"
	oagen "esgrag/internal/generation/openai"
	"esgrag/internal/summarizer"
)

func newChunker(cfg config.ChunkerConfig) (domain.Chunker, error) {
	switch cfg.Type {
	case "window", "":
		return chunker.NewWindowChunker(cfg.Size, *cfg.Overlap, *cfg.MinLength)
	case "sentence":
		return chunker.NewSentenceChunker(cfg.SentencesPerChunk, cfg.OverlapSentences, *cfg.MinLength), nil
	default:
		return nil, fmt.Errorf("unknown chunker: %s", cfg.Type)
	}
}

func newEmbedder(ctx context.Context, cfg config.EmbedderConfig, logger *log.Logger) (domain.Embedder, error) {
	switch cfg.Type {
	case "tfidf":
		return tfidf.NewEmbedder(), nil
	case "gemini", "":
		p := cfg.Gemini
		emb, err := gemembed.NewEmbedder(ctx, gemembed.Config{
			APIKey:  p.APIKey(),
			Model:   p.Model,
			BaseURL: p.BaseURL,
			Timeout: seconds(p.TimeoutSecs),
			Logger:  logger,
		})
		if err != nil {
			return nil, keyHint(err, p)
		}
		return emb, nil
	case "openai":
		p := cfg.OpenAI
		emb, err := oaembed.NewClient(oaembed.Config{
			BaseURL: p.BaseURL,
			APIKey:  p.APIKey(),
			Model:   p.Model,
			Timeout: seconds(p.TimeoutSecs),
		})
		if err != nil {
			return nil, keyHint(err, p)
		}
		return emb, nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Type)
	}
}

// newGenerator returns nil for generator type "none".
func newGenerator(ctx context.Context, cfg config.GeneratorConfig, logger *log.Logger) (domain.Generator, error) {
	switch cfg.Type {
	case "none":
		return nil, nil
	case "gemini", "":
		p := cfg.Gemini
		gen, err := gemgen.NewGenerator(ctx, gemgen.Config{
			APIKey:  p.APIKey(),
			Model:   p.Model,
			BaseURL: p.BaseURL,
			Timeout: seconds(p.TimeoutSecs),
			Logger:  logger,
		})
		if err != nil {
			return nil, keyHint(err, p)
		}
		return gen, nil
	case "openai":
		p := cfg.OpenAI
		gen, err := oagen.NewGenerator(oagen.Config{
			BaseURL: p.BaseURL,
			APIKey:  p.APIKey(),
			Model:   p.Model,
			Timeout: seconds(p.TimeoutSecs),
		})
		if err != nil {
			return nil, keyHint(err, p)
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.Type)
	}
}

// newSummarizer returns nil for summarizer type "none".
func newSummarizer(cfg config.SummarizerConfig) (domain.Summarizer, error) {
	switch cfg.Type {
	case "frequency", "":
		return summarizer.NewFrequencySummarizer(), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Type)
	}
}

func keyHint(err error, p *config.ProviderConfig) error {
	if p == nil || p.APIKeyEnv == "" {
		return err
	}
	return fmt.Errorf("%w (set %s in the environment or .env)", err, p.APIKeyEnv)
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
