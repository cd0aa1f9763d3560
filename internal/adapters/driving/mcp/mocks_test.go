package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results  []domain.QueryResult
	err      error
	lastOpts domain.QueryOptions
}

func (m *mockRetrievalService) Query(
	_ context.Context,
	_ []float32,
	opts domain.QueryOptions,
) ([]domain.QueryResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	doc       *domain.StoredDoc
	err       error
	lastItem  domain.RawItem
	lastOwner string
	attached  map[string][]float32
}

func (m *mockIngestService) Ingest(_ context.Context, item domain.RawItem, owner string) (*domain.StoredDoc, error) {
	m.lastItem = item
	m.lastOwner = owner
	return m.doc, m.err
}

func (m *mockIngestService) IngestBatch(
	ctx context.Context,
	items []domain.RawItem,
	owner string,
) []driving.IngestOutcome {
	out := make([]driving.IngestOutcome, len(items))
	for i := range items {
		doc, err := m.Ingest(ctx, items[i], owner)
		out[i] = driving.IngestOutcome{Index: i, Doc: doc, Err: err}
	}
	return out
}

func (m *mockIngestService) AttachEmbedding(_ context.Context, docID string, vector []float32) error {
	if m.err != nil {
		return m.err
	}
	if m.attached == nil {
		m.attached = make(map[string][]float32)
	}
	m.attached[docID] = vector
	return nil
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.StoredDoc
	document  *domain.StoredDoc
	err       error
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.StoredDoc, error) {
	return m.document, m.err
}

func (m *mockDocumentService) ListByUser(_ context.Context, _ string) ([]domain.StoredDoc, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Remove(_ context.Context, _ string) error {
	return m.err
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
