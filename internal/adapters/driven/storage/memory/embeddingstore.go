package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
)

// Ensure EmbeddingStore implements the interface.
var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore is an in-memory implementation of driven.EmbeddingStore.
type EmbeddingStore struct {
	mu   sync.RWMutex
	rows map[string]domain.EmbeddingRow
	// dim is 0 until the first row is stored, and again once the store empties.
	dim int
}

// NewEmbeddingStore creates a new in-memory embedding store.
func NewEmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{
		rows: make(map[string]domain.EmbeddingRow),
	}
}

// Upsert stores or replaces the vector for row.DocID.
func (s *EmbeddingStore) Upsert(_ context.Context, row domain.EmbeddingRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	row = row.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rows) > 0 && row.Dim != s.dim {
		return &domain.DimensionError{Expected: s.dim, Got: row.Dim}
	}
	s.rows[row.DocID] = row
	s.dim = row.Dim
	return nil
}

// Get retrieves the row for docID.
func (s *EmbeddingStore) Get(_ context.Context, docID string) (*domain.EmbeddingRow, error) {
	s.mu.RLock()
	row, ok := s.rows[docID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	row = row.Clone()
	return &row, nil
}

// Dimension returns the established dimension, or 0 while the store is empty.
func (s *EmbeddingStore) Dimension(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim, nil
}

// All returns a copy of every row, ordered by DocID.
func (s *EmbeddingStore) All(_ context.Context) ([]domain.EmbeddingRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allLocked(), nil
}

// allLocked requires s.mu to be held.
func (s *EmbeddingStore) allLocked() []domain.EmbeddingRow {
	result := make([]domain.EmbeddingRow, 0, len(s.rows))
	for _, row := range s.rows {
		result = append(result, row.Clone())
	}
	slices.SortFunc(result, func(a, b domain.EmbeddingRow) int {
		return strings.Compare(a.DocID, b.DocID)
	})
	return result
}

// Remove deletes the row for docID.
func (s *EmbeddingStore) Remove(_ context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, docID)
	if len(s.rows) == 0 {
		s.dim = 0
	}
	return nil
}

// Len returns the number of stored rows.
func (s *EmbeddingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
