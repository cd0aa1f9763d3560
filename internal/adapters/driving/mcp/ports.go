package mcp

import (
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers similarity queries.
	Retrieval driving.RetrievalService

	// Ingest accepts raw items and embeddings.
	Ingest driving.IngestService

	// Document reads stored documents. Optional: without it the
	// get_document tool and document resources report not found.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
