package domain

import "context"

// Document represents a single text file loaded from the corpus directory.
type Document struct {
	Name    string
	Path    string
	Content string
}

// Chunk is a trimmed window of a document used as the unit of retrieval.
type Chunk struct {
	Source string
	Index  int
	Text   string
}

// Record is the embedded form of a chunk held by a vector store.
type Record struct {
	ID        string
	Source    string
	Index     int
	Text      string
	Embedding []float64
}

// SearchResult represents a stored record with its similarity to a query.
type SearchResult struct {
	Record Record
	Score  float64
}

// ChunkFailure describes a chunk that could not be embedded during indexing.
type ChunkFailure struct {
	Source string
	Index  int
	Err    error
}

// IndexReport summarizes one indexing run.
type IndexReport struct {
	Files    int
	Chunks   int
	Records  int
	Failures []ChunkFailure
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Preparer is implemented by embedders that need a pass over the corpus
// before they can embed, such as TF-IDF.
type Preparer interface {
	Prepare(corpus []string) error
}

// Generator produces an answer for a fully rendered prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
