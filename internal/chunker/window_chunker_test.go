package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgrag/internal/domain"
)

func TestNewWindowChunker_RejectsOverlapNotSmallerThanSize(t *testing.T) {
	for _, tc := range []struct {
		name          string
		size, overlap int
	}{
		{"equal", 100, 100},
		{"larger", 100, 150},
		{"zero size", 0, 0},
		{"negative overlap", 100, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWindowChunker(tc.size, tc.overlap, DefaultMinLength)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
		})
	}
}

func TestSplit_1500CharsGivesTwoOverlappingChunks(t *testing.T) {
	text := strings.Repeat("A", 1500)

	chunks := Default().Split(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, text[0:1000], chunks[0])
	assert.Equal(t, text[800:1500], chunks[1])
	assert.Len(t, chunks[1], 700)
}

func TestSplit_DropsShortFragments(t *testing.T) {
	c, err := NewWindowChunker(30, 5, 20)
	require.NoError(t, err)

	text := strings.Repeat("x", 30) + "   tail  "
	for _, chunk := range c.Split(text) {
		assert.Greater(t, utf8.RuneCountInString(chunk), 20)
		assert.Equal(t, strings.TrimSpace(chunk), chunk)
	}
}

func TestSplit_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, Default().Split(""))
	assert.Empty(t, Default().Split("   \n\t  "))
}

func TestSplit_ExactlyTwentyCharsIsDiscarded(t *testing.T) {
	assert.Empty(t, Default().Split(strings.Repeat("b", 20)))
	assert.Len(t, Default().Split(strings.Repeat("b", 21)), 1)
}

func TestSplit_Deterministic(t *testing.T) {
	c, err := NewWindowChunker(50, 10, 20)
	require.NoError(t, err)
	text := strings.Repeat("Scope 3 emissions are reported annually. ", 20)

	assert.Equal(t, c.Split(text), c.Split(text))
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	c, err := NewWindowChunker(25, 5, 20)
	require.NoError(t, err)
	text := strings.Repeat("é", 40)

	chunks := c.Split(text)

	require.NotEmpty(t, chunks)
	assert.Equal(t, 25, utf8.RuneCountInString(chunks[0]))
}

func TestWindows_CoverEveryCharacter(t *testing.T) {
	for _, tc := range []struct{ size, overlap, length int }{
		{1000, 200, 1500},
		{10, 3, 97},
		{7, 0, 50},
		{5, 4, 23},
	} {
		c, err := NewWindowChunker(tc.size, tc.overlap, 0)
		require.NoError(t, err)
		covered := make([]bool, tc.length)
		for _, w := range c.Windows(strings.Repeat("z", tc.length)) {
			assert.LessOrEqual(t, w.End-w.Start, tc.size)
			for i := w.Start; i < w.End; i++ {
				covered[i] = true
			}
		}
		for i, ok := range covered {
			assert.Truef(t, ok, "char %d not covered (size=%d overlap=%d)", i, tc.size, tc.overlap)
		}
	}
}

func TestChunk_CarriesSourceAndIndex(t *testing.T) {
	doc := domain.Document{Name: "policy.txt", Content: strings.Repeat("governance ", 200)}

	chunks, err := Default().Chunk(doc)

	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for i, ch := range chunks {
		assert.Equal(t, "policy.txt", ch.Source)
		assert.Equal(t, i, ch.Index)
	}
}
