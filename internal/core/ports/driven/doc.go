// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentStore: StoredDoc persistence keyed by identity
//   - EmbeddingStore: Fixed-dimension vector persistence keyed by document identity
//   - Normaliser: Converts RawItems into StoredDocs
//   - ConfigStore: Application configuration
//
// Store implementations live under internal/adapters/driven/storage (memory,
// sqlite, badger) and must honour the same contracts.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
