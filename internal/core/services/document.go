package services

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService reads and removes stored documents.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.StoredDoc, error) {
	if documentID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.docStore.Get(ctx, documentID)
}

// ListByUser returns the documents owned by userID, ordered by ID.
func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]domain.StoredDoc, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.docStore.ListByUser(ctx, userID)
}

// Remove deletes a document. The embedding is left dangling until the next
// compaction; queries skip it meanwhile.
func (s *DocumentService) Remove(ctx context.Context, documentID string) error {
	if documentID == "" {
		return domain.ErrInvalidArgument
	}
	return s.docStore.Remove(ctx, documentID)
}
