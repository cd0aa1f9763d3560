package driving

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// RetrievalService answers nearest-neighbour queries over stored embeddings.
type RetrievalService interface {
	// Query ranks documents by cosine similarity to vector.
	// Results are ordered by descending score, ties by ascending document ID,
	// and hold at most opts.K entries.
	Query(ctx context.Context, vector []float32, opts domain.QueryOptions) ([]domain.QueryResult, error)
}
