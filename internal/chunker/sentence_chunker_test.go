package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgrag/internal/domain"
)

func TestSentenceChunker_GroupsWithOverlap(t *testing.T) {
	c := NewSentenceChunker(2, 1, 0)
	doc := domain.Document{Name: "a.txt", Content: "One is first. Two is second. Three is third."}

	chunks, err := c.Chunk(doc)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "One is first. Two is second.", chunks[0].Text)
	assert.Equal(t, "Two is second. Three is third.", chunks[1].Text)
	assert.Equal(t, "a.txt", chunks[1].Source)
}

func TestSentenceChunker_AppliesMinLength(t *testing.T) {
	c := NewSentenceChunker(1, 0, 20)
	doc := domain.Document{Name: "b.txt", Content: "Short. This sentence is long enough to keep."}

	chunks, err := c.Chunk(doc)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "This sentence is long enough to keep.", chunks[0].Text)
}

func TestSentenceChunker_EmptyDocument(t *testing.T) {
	chunks, err := NewSentenceChunker(3, 1, 20).Chunk(domain.Document{Content: "  "})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSentenceChunker_KeepsUnterminatedFinalSentence(t *testing.T) {
	doc := domain.Document{
		Name:    "c.txt",
		Content: "Scope one emissions fell sharply. Water use targets were met in every region without exception",
	}

	chunks, err := NewSentenceChunker(5, 1, 20).Chunk(doc)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t,
		"Scope one emissions fell sharply. Water use targets were met in every region without exception",
		chunks[0].Text)
}

func TestSentenceChunker_TailFormsItsOwnChunk(t *testing.T) {
	doc := domain.Document{Name: "d.txt", Content: "First sentence is here. Second one trails off"}

	chunks, err := NewSentenceChunker(1, 0, 0).Chunk(doc)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Second one trails off", chunks[1].Text)
	assert.Equal(t, 1, chunks[1].Index)
}
