package driving

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// IngestService accepts raw items and vectors from upstream producers.
type IngestService interface {
	// Ingest normalises item for owner and upserts the resulting document.
	// Re-ingesting the same provider item replaces the stored record.
	Ingest(ctx context.Context, item domain.RawItem, owner string) (*domain.StoredDoc, error)

	// IngestBatch ingests items independently. One outcome is returned per item,
	// in input order; a failing item does not stop the others.
	IngestBatch(ctx context.Context, items []domain.RawItem, owner string) []IngestOutcome

	// AttachEmbedding stores the vector for an existing document.
	AttachEmbedding(ctx context.Context, docID string, vector []float32) error
}

// IngestOutcome is the result of ingesting one item of a batch.
type IngestOutcome struct {
	// Index is the item's position in the batch.
	Index int

	// Doc is the stored document, nil when Err is set.
	Doc *domain.StoredDoc

	// Err is the ingestion failure, if any.
	Err error
}
