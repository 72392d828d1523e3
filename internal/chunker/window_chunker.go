package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"esgrag/internal/domain"
)

const (
	// DefaultChunkSize is the default number of characters per window.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the default number of characters shared by consecutive windows.
	DefaultChunkOverlap = 200
	// DefaultMinLength is the trimmed length a chunk must exceed to be kept.
	DefaultMinLength = 20
)

// Window is the half-open character range [Start, End) of one raw window.
type Window struct {
	Start int
	End   int
}

// WindowChunker splits text into fixed-size, overlapping character windows.
type WindowChunker struct {
	size      int
	overlap   int
	minLength int
}

// NewWindowChunker validates the window geometry up front: an overlap that is
// not smaller than the size would never advance.
func NewWindowChunker(size, overlap, minLength int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidChunkConfig, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrInvalidChunkConfig, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", domain.ErrInvalidChunkConfig, overlap, size)
	}
	if minLength < 0 {
		minLength = 0
	}
	return &WindowChunker{size: size, overlap: overlap, minLength: minLength}, nil
}

// Default returns a chunker with 1000-character windows, 200 characters of
// overlap and a 20-character minimum.
func Default() *WindowChunker {
	return &WindowChunker{size: DefaultChunkSize, overlap: DefaultChunkOverlap, minLength: DefaultMinLength}
}

// Windows returns the raw window bounds for text before trimming or filtering.
func (c *WindowChunker) Windows(text string) []Window {
	n := utf8.RuneCountInString(text)
	step := c.size - c.overlap
	var out []Window
	for start := 0; start < n; start += step {
		end := start + c.size
		if end > n {
			end = n
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out
}

// Split returns the trimmed window texts longer than the minimum length.
func (c *WindowChunker) Split(text string) []string {
	runes := []rune(text)
	var out []string
	for _, w := range c.Windows(text) {
		piece := strings.TrimSpace(string(runes[w.Start:w.End]))
		if utf8.RuneCountInString(piece) > c.minLength {
			out = append(out, piece)
		}
	}
	return out
}

// Chunk splits a document into chunks that keep the document name as source.
func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	pieces := c.Split(document.Content)
	if len(pieces) == 0 {
		return nil, nil
	}
	chunks := make([]domain.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = domain.Chunk{Source: document.Name, Index: i, Text: p}
	}
	return chunks, nil
}
