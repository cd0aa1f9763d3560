// Package normaliser turns provider-tagged raw items into canonical stored
// documents.
//
// Normalisation validates the item (known provider and content kind,
// well-formed URL), trims the content, and derives the document identity.
// The identity is deterministic: the same external resource always maps to
// the same ID, and distinct manual pastes map to distinct IDs.
//
// The package does no persistence. Callers upsert the result into a
// DocumentStore.
package normaliser
