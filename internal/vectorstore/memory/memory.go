package memory

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"esgrag/internal/domain"
)

// Epsilon keeps cosine similarity finite when a vector is all zeros.
const Epsilon = 1e-10

// Storage is an in-memory vector store using brute-force cosine similarity.
// Records keep insertion order, which is also the tie-break order in Search.
type Storage struct {
	mu      sync.RWMutex
	records []domain.Record
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Replace(records []domain.Record) error {
	cp := make([]domain.Record, len(records))
	copy(cp, records)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	return nil
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a copy of the stored records in insertion order.
func (s *Storage) Records() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Search scores every record against vector and returns at most topK results
// by descending score. Equal scores keep store order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 || len(s.records) == 0 {
		return nil, nil
	}
	results := make([]domain.SearchResult, len(s.records))
	for i, r := range s.records {
		if len(r.Embedding) != len(vector) {
			return nil, fmt.Errorf("%w: query has %d dimensions, record %s has %d",
				domain.ErrDimensionMismatch, len(vector), r.ID, len(r.Embedding))
		}
		results[i] = domain.SearchResult{Record: r, Score: Cosine(vector, r.Embedding)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// Cosine returns dot(a,b) / (|a|*|b| + Epsilon). Callers guarantee equal lengths.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + Epsilon)
}
