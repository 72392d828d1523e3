package domain

import "errors"

var (
	// ErrInvalidChunkConfig is returned when a chunker would never advance.
	ErrInvalidChunkConfig = errors.New("invalid chunk configuration")
	// ErrDimensionMismatch is returned when a query and a record vector differ in length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrEmptyContext means retrieval produced no passages for a question.
	ErrEmptyContext = errors.New("no relevant context found")
	// ErrEmptyQuery is returned for blank questions.
	ErrEmptyQuery = errors.New("empty query")
	// ErrMissingAPIKey is returned when a remote provider has no credential.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrCorpusNotFound is returned when the corpus directory does not exist.
	ErrCorpusNotFound = errors.New("corpus directory not found")
)
