package driving

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// DocumentService manages stored documents.
type DocumentService interface {
	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.StoredDoc, error)

	// ListByUser returns all documents owned by userID.
	ListByUser(ctx context.Context, userID string) ([]domain.StoredDoc, error)

	// Remove deletes a document. Its embedding stays until compaction.
	Remove(ctx context.Context, documentID string) error
}
