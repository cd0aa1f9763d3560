package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
)

var errStoreDown = errors.New("store unavailable")

// failingDocStore wraps a document store and fails selected operations.
type failingDocStore struct {
	driven.DocumentStore
	failGet    bool
	failList   bool
	failUpsert bool
}

func (s *failingDocStore) Get(ctx context.Context, id string) (*domain.StoredDoc, error) {
	if s.failGet {
		return nil, errStoreDown
	}
	return s.DocumentStore.Get(ctx, id)
}

func (s *failingDocStore) ListByUser(ctx context.Context, userID string) ([]domain.StoredDoc, error) {
	if s.failList {
		return nil, errStoreDown
	}
	return s.DocumentStore.ListByUser(ctx, userID)
}

func (s *failingDocStore) Upsert(ctx context.Context, doc domain.StoredDoc) error {
	if s.failUpsert {
		return errStoreDown
	}
	return s.DocumentStore.Upsert(ctx, doc)
}

// slowDocStore delays lookups to widen the window between an ownership
// check and the write that follows it.
type slowDocStore struct {
	driven.DocumentStore
	delay time.Duration
}

func (s *slowDocStore) Get(ctx context.Context, id string) (*domain.StoredDoc, error) {
	time.Sleep(s.delay)
	return s.DocumentStore.Get(ctx, id)
}

// failingEmbStore wraps an embedding store and fails selected operations.
type failingEmbStore struct {
	driven.EmbeddingStore
	failAll       bool
	failDimension bool
}

func (s *failingEmbStore) All(ctx context.Context) ([]domain.EmbeddingRow, error) {
	if s.failAll {
		return nil, errStoreDown
	}
	return s.EmbeddingStore.All(ctx)
}

func (s *failingEmbStore) Dimension(ctx context.Context) (int, error) {
	if s.failDimension {
		return 0, errStoreDown
	}
	return s.EmbeddingStore.Dimension(ctx)
}

// mockMaintenance counts calls and returns configured results.
type mockMaintenance struct {
	mu           sync.Mutex
	compactCalls int
	snapCalls    int
	compacted    int
	compactErr   error
	snapErr      error
}

func (m *mockMaintenance) Compact(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compactCalls++
	return m.compacted, m.compactErr
}

func (m *mockMaintenance) Snapshot(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapCalls++
	return m.snapErr
}

func (m *mockMaintenance) calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compactCalls, m.snapCalls
}
