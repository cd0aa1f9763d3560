// Package sqlite provides a SQLite-based implementation of the document and
// embedding store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Both stores share a single database:
//
//   - DocumentStore: canonical document persistence
//   - EmbeddingStore: one vector per document, with a store-wide dimension
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-recall/data/recall.db
//
// # Thread Safety
//
// Readers run in parallel under WAL mode. Embedding writes are serialised so the
// dimension check and the insert happen as one step.
package sqlite
