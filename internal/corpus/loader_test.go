package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgrag/internal/domain"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestLoad_OnlyTopLevelTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", []byte("second"))
	writeFile(t, dir, "A.TXT", []byte("upper"))
	writeFile(t, dir, "notes.md", []byte("markdown"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "deep.txt", []byte("deep"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.txt"), 0o755))

	docs, err := Load(dir)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "A.TXT", docs[0].Name)
	assert.Equal(t, "upper", docs[0].Content)
	assert.Equal(t, "b.txt", docs[1].Name)
	assert.Equal(t, filepath.Join(dir, "b.txt"), docs[1].Path)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	docs, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "esg_docs"))
	assert.ErrorIs(t, err, domain.ErrCorpusNotFound)
}

func TestLoad_ReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.txt", []byte{'o', 'k', 0xff, '!'})

	docs, err := Load(dir)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "ok�!", docs[0].Content)
}

func TestIsText(t *testing.T) {
	assert.True(t, IsText("report.txt"))
	assert.True(t, IsText("REPORT.Txt"))
	assert.False(t, IsText("report.txt.bak"))
	assert.False(t, IsText("txt"))
}
