package mcp

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

func TestExtractUserID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid user documents URI",
			uri:      "recall://users/alice/documents",
			expected: "alice",
		},
		{
			name:     "invalid prefix",
			uri:      "file://users/alice/documents",
			expected: "",
		},
		{
			name:     "missing documents suffix",
			uri:      "recall://users/alice",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractUserID(tt.uri))
		})
	}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "recall://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleUserDocumentsResource(t *testing.T) {
	ctx := t.Context()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		_, err = server.handleUserDocumentsResource(ctx, makeReadResourceRequest("recall://users/alice/documents"))
		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleUserDocumentsResource(ctx, makeReadResourceRequest("recall://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("lists documents", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{
			documents: []domain.StoredDoc{
				{ID: "doc-1", UserID: "alice", Title: strPtr("First"), Provider: domain.ProviderGitHub},
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleUserDocumentsResource(ctx, makeReadResourceRequest("recall://users/alice/documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "First")
		assert.Contains(t, result.Contents[0].Text, `"provider": "github"`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: errors.New("database error")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleUserDocumentsResource(ctx, makeReadResourceRequest("recall://users/alice/documents"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := t.Context()

	t.Run("returns content", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{
			document: &domain.StoredDoc{ID: "doc-1", Content: "the body"},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("recall://documents/doc-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "the body", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("missing id returns not found", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("recall://documents/"))
		require.Error(t, err)
	})

	t.Run("returns error on get failure", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: domain.ErrNotFound}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("recall://documents/doc-1"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
