package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"esgrag/internal/config"
	"esgrag/internal/domain"
	"esgrag/internal/logging"
	"esgrag/internal/service"
	"esgrag/internal/vectorstore/memory"
)

// app is the assembled, indexed service for one command invocation.
type app struct {
	cfg    *config.AppConfig
	logger *log.Logger
	svc    *service.RAGServiceImpl
	report domain.IndexReport
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// setup loads .env and config, builds every component and indexes the corpus.
// withGenerator is false for commands that never generate, so they run without
// a generation key.
func setup(cmd *cobra.Command, withGenerator bool) (*app, error) {
	// keys may come from the real environment instead
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if docsDir != "" {
		cfg.Corpus.Path = docsDir
	}
	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	ch, err := newChunker(cfg.Chunker)
	if err != nil {
		return nil, err
	}
	emb, err := newEmbedder(ctx, cfg.Embedder, logger)
	if err != nil {
		return nil, err
	}
	sum, err := newSummarizer(cfg.Summarizer)
	if err != nil {
		return nil, err
	}
	opts := []service.Option{
		service.WithTopK(*cfg.Retrieval.TopK),
		service.WithSeparator(cfg.Retrieval.Separator),
		service.WithLogger(logger),
	}
	if sum != nil {
		opts = append(opts, service.WithSummarizer(sum, cfg.Summarizer.MaxSentences))
	}
	if withGenerator {
		gen, err := newGenerator(ctx, cfg.Generator, logger)
		if err != nil {
			return nil, err
		}
		if gen != nil {
			opts = append(opts, service.WithGenerator(gen))
		}
	}
	svc := service.NewRAGService(ch, emb, memory.NewStorage(), opts...)

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Loading ESG documents from %s...\n", cfg.Corpus.Path)
	report, err := svc.Index(ctx, cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("index corpus: %w", err)
	}
	fmt.Fprintf(errOut, "Indexed %d chunks.\n", report.Records)
	if name := svc.GeneratorName(); name != "" {
		fmt.Fprintf(errOut, "Using model: %s\n", name)
	}
	return &app{cfg: cfg, logger: logger, svc: svc, report: report}, nil
}

// header is the one-line description shown above the interactive session.
func (a *app) header() string {
	parts := []string{fmt.Sprintf("%d passages from %d files", a.report.Records, a.report.Files)}
	if name := a.svc.GeneratorName(); name != "" {
		parts = append(parts, "model "+name)
	}
	line := strings.Join(parts, " | ")
	if s := a.svc.Summary(); s != "" {
		line += "\n" + s
	}
	return line
}
