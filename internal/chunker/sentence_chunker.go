package chunker

import (
	"strings"
	"unicode/utf8"

	"esgrag/internal/domain"
	"esgrag/internal/textsplit"
)

// SentenceChunker splits text into sentence-based chunks with overlap.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	minLength         int
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences, minLength int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	// keeps the window moving forward
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	if minLength < 0 {
		minLength = 0
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		minLength:         minLength,
	}
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	sentences := textsplit.Sentences(document.Content)
	if len(sentences) == 0 {
		return nil, nil
	}
	var chunks []domain.Chunk
	i := 0
	for i < len(sentences) {
		end := i + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		text := strings.TrimSpace(strings.Join(sentences[i:end], " "))
		if utf8.RuneCountInString(text) > c.minLength {
			chunks = append(chunks, domain.Chunk{
				Source: document.Name,
				Index:  len(chunks),
				Text:   text,
			})
		}
		if end == len(sentences) {
			break
		}
		i = end - c.overlapSentences
	}
	return chunks, nil
}
