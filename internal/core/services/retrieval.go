package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService ranks documents by cosine similarity with an exhaustive
// scan of the embedding store.
type RetrievalService struct {
	embStore driven.EmbeddingStore
	docStore driven.DocumentStore
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embStore driven.EmbeddingStore, docStore driven.DocumentStore) *RetrievalService {
	return &RetrievalService{
		embStore: embStore,
		docStore: docStore,
	}
}

// Query returns at most opts.K documents ordered by descending score, ties
// broken by ascending document ID. Embeddings whose document no longer exists
// are skipped, as are documents outside opts.UserID when the query is scoped.
func (s *RetrievalService) Query(
	ctx context.Context, vector []float32, opts domain.QueryOptions,
) ([]domain.QueryResult, error) {
	logger.Section("Query Execution")
	logger.Debug("K: %d, dims: %d, user: %q", opts.K, len(vector), opts.UserID)

	if opts.K <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidArgument)
	}
	if len(vector) == 0 || !domain.Finite(vector) {
		return nil, fmt.Errorf("%w: query vector must be non-empty and finite", domain.ErrInvalidArgument)
	}

	dim, err := s.embStore.Dimension(ctx)
	if err != nil {
		return nil, fmt.Errorf("read dimension: %w", err)
	}
	if dim == 0 {
		logger.Debug("No embeddings stored, returning no results")
		return []domain.QueryResult{}, nil
	}
	if len(vector) != dim {
		return nil, &domain.DimensionError{Expected: dim, Got: len(vector)}
	}

	rows, err := s.embStore.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read embeddings: %w", err)
	}

	lookup, err := s.documentLookup(ctx, opts)
	if err != nil {
		return nil, err
	}

	queryNorm := norm(vector)
	results := make([]domain.QueryResult, 0, min(opts.K, len(rows)))
	skipped := 0
	for i := range rows {
		if len(rows[i].Vector) != dim {
			skipped++
			continue
		}
		doc, ok, err := lookup(rows[i].DocID)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		results = append(results, domain.QueryResult{
			Doc:   *doc,
			Score: cosine(vector, rows[i].Vector, queryNorm),
		})
	}

	slices.SortFunc(results, func(a, b domain.QueryResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Doc.ID, b.Doc.ID)
	})
	if len(results) > opts.K {
		results = results[:opts.K]
	}

	logger.Debug("Scanned %d rows, skipped %d, returning %d", len(rows), skipped, len(results))
	return results, nil
}

// documentLookup resolves a document ID to its document. A scoped query loads
// the user's documents once; an unscoped one fetches each document by ID.
func (s *RetrievalService) documentLookup(
	ctx context.Context, opts domain.QueryOptions,
) (func(id string) (*domain.StoredDoc, bool, error), error) {
	if opts.Scoped() {
		docs, err := s.docStore.ListByUser(ctx, opts.UserID)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		byID := make(map[string]*domain.StoredDoc, len(docs))
		for i := range docs {
			byID[docs[i].ID] = &docs[i]
		}
		return func(id string) (*domain.StoredDoc, bool, error) {
			doc, ok := byID[id]
			return doc, ok, nil
		}, nil
	}

	return func(id string) (*domain.StoredDoc, bool, error) {
		doc, err := s.docStore.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("get document %s: %w", id, err)
		}
		return doc, true, nil
	}, nil
}

// cosine returns the cosine similarity of a and b, given a's norm.
// A zero-norm operand scores 0.
func cosine(a, b []float32, normA float64) float64 {
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	score := dot(a, b) / (normA * normB)
	if math.IsNaN(score) {
		return 0
	}
	// Rounding can push parallel vectors just past ±1.
	return math.Max(-1, math.Min(1, score))
}

// dot accumulates in float64 so products of extreme float32 components
// neither overflow nor underflow.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
