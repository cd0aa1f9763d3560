package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

// Ensure MaintenanceService implements the interface.
var _ driving.MaintenanceService = (*MaintenanceService)(nil)

// SnapshotFunc persists store state.
type SnapshotFunc func(ctx context.Context) error

// MaintenanceService reconciles embeddings with documents and triggers snapshots.
type MaintenanceService struct {
	docStore driven.DocumentStore
	embStore driven.EmbeddingStore
	snapshot SnapshotFunc
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(docStore driven.DocumentStore, embStore driven.EmbeddingStore) *MaintenanceService {
	return &MaintenanceService{
		docStore: docStore,
		embStore: embStore,
	}
}

// SetSnapshotter sets the function Snapshot delegates to.
// Backends that persist on every write leave it unset.
func (s *MaintenanceService) SetSnapshotter(fn SnapshotFunc) {
	s.snapshot = fn
}

// Compact removes every embedding whose document no longer exists and
// returns how many were removed.
func (s *MaintenanceService) Compact(ctx context.Context) (int, error) {
	logger.Section("Embedding Compaction")

	rows, err := s.embStore.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("read embeddings: %w", err)
	}

	removed := 0
	for i := range rows {
		_, err := s.docStore.Get(ctx, rows[i].DocID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return removed, fmt.Errorf("get document %s: %w", rows[i].DocID, err)
		}
		if err := s.embStore.Remove(ctx, rows[i].DocID); err != nil {
			return removed, fmt.Errorf("remove embedding %s: %w", rows[i].DocID, err)
		}
		removed++
	}

	logger.Debug("Scanned %d embeddings, removed %d", len(rows), removed)
	return removed, nil
}

// Snapshot persists store state when a snapshotter is configured.
func (s *MaintenanceService) Snapshot(ctx context.Context) error {
	if s.snapshot == nil {
		logger.Debug("Snapshot skipped: backend persists on write")
		return nil
	}
	if err := s.snapshot(ctx); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	logger.Debug("Snapshot written")
	return nil
}
