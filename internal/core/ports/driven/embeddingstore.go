package driven

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// EmbeddingStore persists one vector per document identity.
//
// All rows in a store share one dimension. The first insert into an empty
// store establishes it; later inserts of another length fail with
// domain.ErrDimensionMismatch and leave the store unchanged.
//
// Rows may reference documents that no longer exist. Filtering such dangling
// rows is the reader's responsibility.
type EmbeddingStore interface {
	// Upsert stores row, replacing the vector previously held for row.DocID.
	Upsert(ctx context.Context, row domain.EmbeddingRow) error

	// Get retrieves the row for docID.
	// Returns domain.ErrNotFound if the document has no embedding.
	Get(ctx context.Context, docID string) (*domain.EmbeddingRow, error)

	// Dimension returns the established dimension, or 0 while the store is empty.
	Dimension(ctx context.Context) (int, error)

	// All returns a snapshot of every row, ordered by DocID.
	All(ctx context.Context) ([]domain.EmbeddingRow, error)

	// Remove deletes the row for docID. Removing an absent row is not an error.
	Remove(ctx context.Context, docID string) error
}
