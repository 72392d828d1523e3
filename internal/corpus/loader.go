// Package corpus reads the plain-text documents an index is built from.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"esgrag/internal/domain"
)

// Extension is matched case-insensitively against file names.
const Extension = ".txt"

// IsText reports whether name looks like a corpus document.
func IsText(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), Extension)
}

// Load reads every .txt file directly inside dir. Subdirectories are not
// descended into. Documents come back in directory listing order.
func Load(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, dir)
		}
		return nil, fmt.Errorf("read corpus %s: %w", dir, err)
	}
	var docs []domain.Document
	for _, e := range entries {
		if e.IsDir() || !IsText(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, domain.Document{
			Name:    e.Name(),
			Path:    path,
			Content: decode(data),
		})
	}
	return docs, nil
}

// decode replaces invalid UTF-8 sequences rather than failing the file.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
