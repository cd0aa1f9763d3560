// Package domain defines the core business entities for sercha-recall.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawItem: Provider-tagged content from an upstream producer
//   - StoredDoc: The canonical document keyed by a stable identity
//   - EmbeddingRow: One fixed-dimension vector per document
//   - QueryResult: A document joined with its cosine score
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
