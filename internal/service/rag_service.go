// Package service wires chunking, embedding, ranking and generation into the
// operations the CLI and TUI call.
//
// A RAGService is not safe for concurrent use: Index must not run while
// queries are being served against the same store.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"esgrag/internal/corpus"
	"esgrag/internal/domain"
	"esgrag/internal/logging"
	"esgrag/internal/prompt"
	"esgrag/internal/vectorstore"
)

const (
	DefaultTopK      = 3
	DefaultSeparator = "\n---\n"
)

// Answer is the outcome of one question.
type Answer struct {
	Question string
	Text     string
	Context  string
	Sources  []domain.SearchResult
}

type RAGServiceImpl struct {
	chunker             domain.Chunker
	embedder            domain.Embedder
	store               vectorstore.Storage
	generator           domain.Generator
	summarizer          domain.Summarizer
	summaryMaxSentences int
	topK                int
	separator           string
	logger              *log.Logger
	newID               func() string
	summary             string
}

// Option configures a RAGServiceImpl.
type Option func(*RAGServiceImpl)

// WithGenerator sets the answer generator. Without one, Ask returns the
// retrieved context and an empty answer text.
func WithGenerator(g domain.Generator) Option {
	return func(s *RAGServiceImpl) { s.generator = g }
}

// WithSummarizer enables a corpus summary after each Index.
func WithSummarizer(sum domain.Summarizer, maxSentences int) Option {
	return func(s *RAGServiceImpl) {
		s.summarizer = sum
		s.summaryMaxSentences = maxSentences
	}
}

// WithTopK sets how many passages Ask uses as context.
func WithTopK(k int) Option {
	return func(s *RAGServiceImpl) { s.topK = k }
}

// WithSeparator sets the line placed between passages in the context string.
func WithSeparator(sep string) Option {
	return func(s *RAGServiceImpl) {
		if sep != "" {
			s.separator = sep
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *RAGServiceImpl) { s.logger = logging.OrNop(l) }
}

// WithIDGenerator replaces the record ID source, which defaults to random UUIDs.
func WithIDGenerator(f func() string) Option {
	return func(s *RAGServiceImpl) {
		if f != nil {
			s.newID = f
		}
	}
}

func NewRAGService(chunker domain.Chunker, embedder domain.Embedder, store vectorstore.Storage, opts ...Option) *RAGServiceImpl {
	s := &RAGServiceImpl{
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		topK:      DefaultTopK,
		separator: DefaultSeparator,
		logger:    logging.Nop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index clears the store, then loads every .txt document in dir, chunks and
// embeds it and stores the result. A chunk that fails to embed is logged,
// reported and skipped. A failed run leaves the store empty.
func (s *RAGServiceImpl) Index(ctx context.Context, dir string) (domain.IndexReport, error) {
	var report domain.IndexReport
	if err := s.store.Clear(); err != nil {
		return report, fmt.Errorf("clear store: %w", err)
	}
	s.summary = ""
	docs, err := corpus.Load(dir)
	if err != nil {
		return report, err
	}
	report.Files = len(docs)
	s.logger.Info().Str("corpus", dir).Int("files", len(docs)).Msg("loading documents")

	var chunks []domain.Chunk
	var corpusText strings.Builder
	for _, d := range docs {
		dc, err := s.chunker.Chunk(d)
		if err != nil {
			return report, fmt.Errorf("chunk %s: %w", d.Name, err)
		}
		chunks = append(chunks, dc...)
		corpusText.WriteString(d.Content)
		corpusText.WriteString("\n")
	}
	report.Chunks = len(chunks)

	if p, ok := s.embedder.(domain.Preparer); ok && len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, ch := range chunks {
			texts[i] = ch.Text
		}
		if err := p.Prepare(texts); err != nil {
			return report, fmt.Errorf("prepare embedder: %w", err)
		}
	}

	records := make([]domain.Record, 0, len(chunks))
	for _, ch := range chunks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		vec, err := s.embedder.Embed(ctx, ch.Text)
		if err != nil {
			s.logger.Warn().
				Str("source", ch.Source).
				Int("chunk", ch.Index).
				Err(err).
				Msg("embedding chunk failed, skipping")
			report.Failures = append(report.Failures, domain.ChunkFailure{Source: ch.Source, Index: ch.Index, Err: err})
			continue
		}
		records = append(records, domain.Record{
			ID:        s.newID(),
			Source:    ch.Source,
			Index:     ch.Index,
			Text:      ch.Text,
			Embedding: vec,
		})
	}
	if err := s.store.Replace(records); err != nil {
		return report, fmt.Errorf("store records: %w", err)
	}
	report.Records = len(records)

	if s.summarizer != nil && len(docs) > 0 {
		summary, err := s.summarizer.Summarize(corpusText.String(), s.summaryMaxSentences)
		if err != nil {
			s.logger.Warn().Err(err).Msg("corpus summary failed")
		} else {
			s.summary = summary
		}
	}

	s.logger.Info().
		Int("files", report.Files).
		Int("chunks", report.Chunks).
		Int("records", report.Records).
		Int("skipped", len(report.Failures)).
		Str("embedder", s.embedder.Name()).
		Msg("corpus indexed")
	return report, nil
}

// Search embeds query and returns up to topK records by descending cosine
// similarity. An empty store or topK <= 0 yields no results without calling
// the embedder.
func (s *RAGServiceImpl) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 || s.store.Len() == 0 {
		return nil, nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.store.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("rank records: %w", err)
	}
	s.logger.Debug().Int("top_k", topK).Int("results", len(results)).Msg("retrieved passages")
	return results, nil
}

// Retrieve returns the texts of the topK best passages joined by the separator.
func (s *RAGServiceImpl) Retrieve(ctx context.Context, query string, topK int) (string, error) {
	results, err := s.Search(ctx, query, topK)
	if err != nil {
		return "", err
	}
	return s.join(results), nil
}

// Ask retrieves context for question and, when a generator is configured,
// asks it for an answer. It returns domain.ErrEmptyContext when nothing was
// retrieved, in which case no generation call is made.
func (s *RAGServiceImpl) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	ans := Answer{Question: question}
	if question == "" {
		return ans, domain.ErrEmptyQuery
	}
	results, err := s.Search(ctx, question, s.topK)
	if err != nil {
		return ans, err
	}
	ans.Sources = results
	ans.Context = s.join(results)
	if strings.TrimSpace(ans.Context) == "" {
		return ans, domain.ErrEmptyContext
	}
	if s.generator == nil {
		return ans, nil
	}
	text, err := s.generator.Generate(ctx, prompt.Build(ans.Context, question))
	if err != nil {
		return ans, fmt.Errorf("generate answer: %w", err)
	}
	ans.Text = strings.TrimSpace(text)
	return ans, nil
}

// Summary returns the corpus summary from the last Index, if any.
func (s *RAGServiceImpl) Summary() string { return s.summary }

// Records returns the number of records currently indexed.
func (s *RAGServiceImpl) Records() int { return s.store.Len() }

// GeneratorName returns the configured generator's name, or "" without one.
func (s *RAGServiceImpl) GeneratorName() string {
	if s.generator == nil {
		return ""
	}
	return s.generator.Name()
}

func (s *RAGServiceImpl) join(results []domain.SearchResult) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Record.Text
	}
	return strings.Join(texts, s.separator)
}
