package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultIngestConcurrency bounds batch ingestion when no limit is configured.
const DefaultIngestConcurrency = 4

// IngestService normalises raw items into documents and attaches vectors.
type IngestService struct {
	normaliser  driven.Normaliser
	docStore    driven.DocumentStore
	embStore    driven.EmbeddingStore
	concurrency int
	locks       *identityLocks
}

// NewIngestService creates a new ingest service.
// A non-positive concurrency falls back to DefaultIngestConcurrency.
func NewIngestService(
	normaliser driven.Normaliser,
	docStore driven.DocumentStore,
	embStore driven.EmbeddingStore,
	concurrency int,
) *IngestService {
	if concurrency <= 0 {
		concurrency = DefaultIngestConcurrency
	}
	return &IngestService{
		normaliser:  normaliser,
		docStore:    docStore,
		embStore:    embStore,
		concurrency: concurrency,
		locks:       newIdentityLocks(),
	}
}

// Ingest normalises item for owner and upserts the result.
//
// An identity already owned by another user is rejected. When the item
// carries no creation time, a re-ingested document keeps the CreatedAt it
// was first stored with. The ownership check and the upsert run under the
// identity's lock, so concurrent ingests of one identity cannot both claim it.
func (s *IngestService) Ingest(ctx context.Context, item domain.RawItem, owner string) (*domain.StoredDoc, error) {
	doc, err := s.normaliser.Normalise(ctx, item, owner)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(doc.ID)
	defer unlock()

	existing, err := s.docStore.Get(ctx, doc.ID)
	switch {
	case err == nil:
		if !existing.OwnedBy(owner) {
			return nil, fmt.Errorf("%w: document %s belongs to another user", domain.ErrInvalidArgument, doc.ID)
		}
		if item.CreatedAt == nil || item.CreatedAt.IsZero() {
			doc.CreatedAt = existing.CreatedAt
		}
		logger.Debug("Replacing document %s (%s)", doc.ID, doc.Provider)
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("Storing new document %s (%s)", doc.ID, doc.Provider)
	default:
		return nil, fmt.Errorf("lookup document: %w", err)
	}

	if err := s.docStore.Upsert(ctx, *doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return doc, nil
}

// IngestBatch ingests items on a bounded worker group. Items are independent:
// one failure is recorded in its outcome and the rest proceed.
func (s *IngestService) IngestBatch(
	ctx context.Context, items []domain.RawItem, owner string,
) []driving.IngestOutcome {
	logger.Section("Batch Ingest")
	logger.Debug("Items: %d, concurrency: %d", len(items), s.concurrency)

	outcomes := make([]driving.IngestOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range items {
		g.Go(func() error {
			doc, err := s.Ingest(ctx, items[i], owner)
			outcomes[i] = driving.IngestOutcome{Index: i, Doc: doc, Err: err}
			if err != nil {
				logger.Debug("Item %d failed: %v", i, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// AttachEmbedding stores vector for an existing document, replacing any
// previous vector.
func (s *IngestService) AttachEmbedding(ctx context.Context, docID string, vector []float32) error {
	if docID == "" {
		return domain.ErrInvalidArgument
	}
	if _, err := s.docStore.Get(ctx, docID); err != nil {
		return err
	}
	return s.embStore.Upsert(ctx, domain.EmbeddingRow{DocID: docID, Vector: vector})
}
