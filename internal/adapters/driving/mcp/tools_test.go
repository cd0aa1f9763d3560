package mcp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/services"
)

func TestServer_handleQuery(t *testing.T) {
	ctx := t.Context()

	t.Run("returns ranked results", func(t *testing.T) {
		retrieval := &mockRetrievalService{
			results: []domain.QueryResult{
				{
					Doc: domain.StoredDoc{
						ID:      "doc-1",
						Title:   strPtr("Test Doc"),
						URL:     strPtr("https://example.com/doc"),
						Content: "This is the content",
					},
					Score: 0.95,
				},
				{
					Doc:   domain.StoredDoc{ID: "doc-2", Content: "untitled"},
					Score: 0.5,
				},
			},
		}

		server, err := NewServer(&Ports{Retrieval: retrieval, Ingest: &mockIngestService{}})
		require.NoError(t, err)

		input := QueryInput{Vector: []float32{1, 0}, K: intPtr(5), UserID: "alice"}
		_, output, err := server.handleQuery(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Results, 2)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "Test Doc", output.Results[0].Title)
		assert.Equal(t, "https://example.com/doc", output.Results[0].URL)
		assert.Equal(t, 0.95, output.Results[0].Score)
		assert.Equal(t, "This is the content", output.Results[0].Content)
		assert.Equal(t, "doc-2", output.Results[1].Title)
		assert.Empty(t, output.Results[1].URL)
		assert.Equal(t, domain.QueryOptions{K: intPtr(5), UserID: "alice"}, retrieval.lastOpts)
	})

	t.Run("default k", func(t *testing.T) {
		retrieval := &mockRetrievalService{}
		server, err := NewServer(&Ports{Retrieval: retrieval, Ingest: &mockIngestService{}})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Vector: []float32{1}})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, DefaultK, retrieval.lastOpts.K)
		assert.Empty(t, retrieval.lastOpts.UserID)
	})

	t.Run("non-positive k is rejected", func(t *testing.T) {
		docs := memory.NewDocumentStore()
		embs := memory.NewEmbeddingStore()
		server, err := NewServer(&Ports{
			Retrieval: services.NewRetrievalService(embs, docs),
			Ingest:    &mockIngestService{},
		})
		require.NoError(t, err)

		for _, k := range []int{0, -1} {
			_, _, err = server.handleQuery(ctx, nil, QueryInput{Vector: []float32{1}, K: intPtr(k)})
			assert.ErrorIs(t, err, domain.ErrInvalidArgument, "k=%d", k)
		}
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		retrieval := &mockRetrievalService{
			err: &domain.DimensionError{Expected: 3, Got: 2},
		}
		server, err := NewServer(&Ports{Retrieval: retrieval, Ingest: &mockIngestService{}})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{Vector: []float32{1, 2}})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := t.Context()
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("ingests and describes document", func(t *testing.T) {
		ingest := &mockIngestService{
			doc: &domain.StoredDoc{
				ID:        "doc-1",
				UserID:    "alice",
				Title:     strPtr("Notes"),
				Content:   "hello",
				Provider:  domain.ProviderManual,
				CreatedAt: created,
			},
		}
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Ingest: ingest})
		require.NoError(t, err)

		input := IngestInput{
			Owner:     "alice",
			Provider:  "manual",
			Title:     "Notes",
			Content:   "hello",
			CreatedAt: "2024-05-01T08:00:00Z",
		}
		_, output, err := server.handleIngest(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.ID)
		assert.Equal(t, "alice", output.UserID)
		assert.Equal(t, "Notes", output.Title)
		assert.Equal(t, "manual", output.Provider)
		assert.Equal(t, "2024-05-01T08:00:00Z", output.CreatedAt)
		assert.Empty(t, output.Content)

		assert.Equal(t, "alice", ingest.lastOwner)
		assert.Equal(t, domain.MIMEPlainText, ingest.lastItem.MIME)
		require.NotNil(t, ingest.lastItem.CreatedAt)
		assert.True(t, created.Equal(*ingest.lastItem.CreatedAt))
	})

	t.Run("bad created_at is invalid input", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Provider: "manual", Content: "x", CreatedAt: "soon"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("service error is returned", func(t *testing.T) {
		ingest := &mockIngestService{err: domain.ErrInvalidArgument}
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Ingest: ingest})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Provider: "manual", Content: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestServer_handleAttachEmbedding(t *testing.T) {
	ctx := t.Context()

	t.Run("attaches vector", func(t *testing.T) {
		ingest := &mockIngestService{}
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Ingest: ingest})
		require.NoError(t, err)

		_, output, err := server.handleAttachEmbedding(ctx, nil, AttachEmbeddingInput{
			DocumentID: "doc-1",
			Vector:     []float32{0.1, 0.2, 0.3},
		})

		require.NoError(t, err)
		assert.Equal(t, AttachEmbeddingOutput{DocumentID: "doc-1", Dim: 3}, output)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, ingest.attached["doc-1"])
	})

	t.Run("missing document", func(t *testing.T) {
		ingest := &mockIngestService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Ingest: ingest})
		require.NoError(t, err)

		_, _, err = server.handleAttachEmbedding(ctx, nil, AttachEmbeddingInput{DocumentID: "nope", Vector: []float32{1}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := t.Context()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		_, _, err = server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "doc-1"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns document with content", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{
			document: &domain.StoredDoc{ID: "doc-1", UserID: "bob", Content: "body", Provider: domain.ProviderNotion},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "doc-1"})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.ID)
		assert.Equal(t, "bob", output.UserID)
		assert.Equal(t, "body", output.Content)
		assert.Equal(t, "notion", output.Provider)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: errors.New("database error")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "doc-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}
