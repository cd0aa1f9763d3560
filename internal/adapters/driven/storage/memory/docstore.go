package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Records are copied on the way in and out, so callers never share state
// with the store.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.StoredDoc
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.StoredDoc),
	}
}

// Upsert stores or replaces a document.
func (s *DocumentStore) Upsert(_ context.Context, doc domain.StoredDoc) error {
	if doc.ID == "" || doc.UserID == "" {
		return domain.ErrInvalidArgument
	}
	doc = doc.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.StoredDoc, error) {
	s.mu.RLock()
	doc, ok := s.documents[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc = doc.Clone()
	return &doc, nil
}

// ListByUser returns the documents owned by userID, ordered by ID.
func (s *DocumentStore) ListByUser(_ context.Context, userID string) ([]domain.StoredDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.StoredDoc, 0)
	for id := range s.documents {
		doc := s.documents[id]
		if doc.OwnedBy(userID) {
			result = append(result, doc.Clone())
		}
	}
	sortDocuments(result)
	return result, nil
}

// Remove deletes a document.
func (s *DocumentStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	return nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// all returns every document, ordered by ID.
// allLocked requires s.mu to be held.
func (s *DocumentStore) allLocked() []domain.StoredDoc {
	result := make([]domain.StoredDoc, 0, len(s.documents))
	for id := range s.documents {
		result = append(result, s.documents[id].Clone())
	}
	sortDocuments(result)
	return result
}

func sortDocuments(docs []domain.StoredDoc) {
	slices.SortFunc(docs, func(a, b domain.StoredDoc) int {
		return strings.Compare(a.ID, b.ID)
	})
}
