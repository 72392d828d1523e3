package vectorstore

import "esgrag/internal/domain"

// Storage holds the records of the currently loaded corpus and ranks them
// against a query vector.
type Storage interface {
	// Replace drops all existing records and stores records in order.
	Replace(records []domain.Record) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Len() int
	Clear() error
}
