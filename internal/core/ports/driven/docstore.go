package driven

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// DocumentStore persists StoredDocs keyed by identity.
//
// Implementations must be safe for concurrent use: Upsert calls are applied
// one at a time, and readers never observe a partially written record.
type DocumentStore interface {
	// Upsert stores doc, replacing any record with the same ID.
	// Returns domain.ErrInvalidArgument if ID or UserID is empty.
	Upsert(ctx context.Context, doc domain.StoredDoc) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if no document has that ID.
	Get(ctx context.Context, id string) (*domain.StoredDoc, error)

	// ListByUser returns the documents owned by userID, ordered by ID.
	// It never returns another user's documents.
	ListByUser(ctx context.Context, userID string) ([]domain.StoredDoc, error)

	// Remove deletes a document. Removing an absent ID is not an error.
	// The document's embedding, if any, is left in place.
	Remove(ctx context.Context, id string) error
}
