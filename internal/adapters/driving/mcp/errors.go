// Package mcp provides an MCP (Model Context Protocol) server adapter for recall.
// It lets AI assistants ingest documents, attach embeddings and run
// nearest-neighbour queries against the local store.
package mcp

import "errors"

var (
	// ErrMissingRetrievalService is returned when the retrieval service is not provided.
	ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

	// ErrMissingIngestService is returned when the ingest service is not provided.
	ErrMissingIngestService = errors.New("mcp: ingest service is required")
)
