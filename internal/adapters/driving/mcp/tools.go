package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Vector []float32 `json:"vector" jsonschema:"the query embedding; its length must match the stored dimension"`
	K      *int      `json:"k,omitempty" jsonschema:"maximum number of results to return, must be positive (default 10)"`
	UserID string    `json:"user_id,omitempty" jsonschema:"restrict results to documents owned by this user"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single ranked hit.
type QueryResultOutput struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	URL        string  `json:"url,omitempty"`
	Score      float64 `json:"score"`
	Content    string  `json:"content,omitempty"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Owner      string `json:"owner" jsonschema:"the user that owns the document"`
	Provider   string `json:"provider" jsonschema:"origin system: manual, github, google or notion"`
	ExternalID string `json:"external_id,omitempty" jsonschema:"the provider's identifier for the item"`
	MIME       string `json:"mime,omitempty" jsonschema:"content type (default text/plain)"`
	Title      string `json:"title,omitempty" jsonschema:"human-readable title"`
	Content    string `json:"content" jsonschema:"the text content"`
	URL        string `json:"url,omitempty" jsonschema:"source location"`
	CreatedAt  string `json:"created_at,omitempty" jsonschema:"RFC 3339 creation time at the provider"`
}

// DocumentOutput describes a stored document.
type DocumentOutput struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title,omitempty"`
	URL       string `json:"url,omitempty"`
	Provider  string `json:"provider"`
	CreatedAt string `json:"created_at"`
	Content   string `json:"content,omitempty"`
}

// AttachEmbeddingInput is the input schema for the attach_embedding tool.
type AttachEmbeddingInput struct {
	DocumentID string    `json:"document_id" jsonschema:"the document the vector describes"`
	Vector     []float32 `json:"vector" jsonschema:"the embedding"`
}

// AttachEmbeddingOutput is the output schema for the attach_embedding tool.
type AttachEmbeddingOutput struct {
	DocumentID string `json:"document_id"`
	Dim        int    `json:"dim"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document identity"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Rank stored documents by cosine similarity to an embedding",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Normalise and store a document",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "attach_embedding",
		Description: "Store the embedding vector for an existing document",
	}, s.handleAttachEmbedding)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch a stored document with its content",
	}, s.handleGetDocument)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	k := s.defaultK
	if input.K != nil {
		k = *input.K
	}

	opts := domain.QueryOptions{K: k, UserID: input.UserID}
	results, err := s.ports.Retrieval.Query(ctx, input.Vector, opts)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		doc := &results[i].Doc
		output.Results[i] = QueryResultOutput{
			DocumentID: doc.ID,
			Title:      doc.DisplayTitle(),
			URL:        deref(doc.URL),
			Score:      results[i].Score,
			Content:    doc.Content,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	item, err := input.rawItem()
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	doc, err := s.ports.Ingest.Ingest(ctx, item, input.Owner)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	return nil, toDocumentOutput(doc, false), nil
}

// handleAttachEmbedding handles the attach_embedding tool invocation.
func (s *Server) handleAttachEmbedding(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AttachEmbeddingInput,
) (*mcp.CallToolResult, AttachEmbeddingOutput, error) {
	if err := s.ports.Ingest.AttachEmbedding(ctx, input.DocumentID, input.Vector); err != nil {
		return nil, AttachEmbeddingOutput{}, err
	}
	return nil, AttachEmbeddingOutput{DocumentID: input.DocumentID, Dim: len(input.Vector)}, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if s.ports.Document == nil {
		return nil, DocumentOutput{}, fmt.Errorf("document %s: %w", input.DocumentID, domain.ErrNotFound)
	}

	doc, err := s.ports.Document.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	return nil, toDocumentOutput(doc, true), nil
}

// rawItem converts the tool input into a RawItem.
func (in IngestInput) rawItem() (domain.RawItem, error) {
	mime := domain.ContentKind(in.MIME)
	if mime == "" {
		mime = domain.MIMEPlainText
	}

	item := domain.RawItem{
		Provider:   domain.ProviderName(in.Provider),
		ExternalID: in.ExternalID,
		MIME:       mime,
		Title:      in.Title,
		Content:    in.Content,
		URL:        in.URL,
	}

	if in.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339, in.CreatedAt)
		if err != nil {
			return domain.RawItem{}, fmt.Errorf("%w: created_at: %v", domain.ErrInvalidInput, err)
		}
		item.CreatedAt = &created
	}

	return item, nil
}

func toDocumentOutput(doc *domain.StoredDoc, withContent bool) DocumentOutput {
	out := DocumentOutput{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Title:     deref(doc.Title),
		URL:       deref(doc.URL),
		Provider:  doc.Provider.String(),
		CreatedAt: doc.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withContent {
		out.Content = doc.Content
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
