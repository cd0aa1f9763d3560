package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// snapshotVersion is bumped whenever the snapshot layout changes.
const snapshotVersion = 1

// SnapshotFile is the default snapshot file name inside the data directory.
const SnapshotFile = "recall.snapshot.zst"

// snapshot is the on-disk layout: zstd-compressed JSON.
type snapshot struct {
	Version    int                   `json:"version"`
	CreatedAt  time.Time             `json:"created_at"`
	Documents  []domain.StoredDoc    `json:"documents"`
	Embeddings []domain.EmbeddingRow `json:"embeddings"`
}

// SaveSnapshot writes the contents of both stores to path.
//
// Both stores are copied while their read locks are held together, so no
// single write lands between the two copies. An operation that spans both
// stores, such as a removal, can still be captured half done; LoadSnapshot
// accepts the resulting dangling rows. The file is replaced atomically, so a
// crash mid-write leaves the previous snapshot intact.
func SaveSnapshot(ctx context.Context, path string, docs *DocumentStore, embeddings *EmbeddingStore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := capture(docs, embeddings)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if err := writeSnapshot(tmp, &snap); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// capture locks documents before embeddings; nothing else holds both.
func capture(docs *DocumentStore, embeddings *EmbeddingStore) snapshot {
	docs.mu.RLock()
	defer docs.mu.RUnlock()
	embeddings.mu.RLock()
	defer embeddings.mu.RUnlock()

	return snapshot{
		Version:    snapshotVersion,
		CreatedAt:  time.Now().UTC(),
		Documents:  docs.allLocked(),
		Embeddings: embeddings.allLocked(),
	}
}

func writeSnapshot(f *os.File, snap *snapshot) error {
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		enc.Close() //nolint:errcheck // already failing
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot restores a document store and an embedding store from path.
// A missing file yields two empty stores. Every row passes through the
// regular Upsert paths, so a snapshot violating the store contracts is
// rejected rather than loaded.
func LoadSnapshot(ctx context.Context, path string) (*DocumentStore, *EmbeddingStore, error) {
	docs := NewDocumentStore()
	embeddings := NewEmbeddingStore()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return docs, embeddings, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	var snap snapshot
	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, nil, fmt.Errorf("%w: snapshot version %d", domain.ErrUnsupportedType, snap.Version)
	}

	for i := range snap.Documents {
		if err := docs.Upsert(ctx, snap.Documents[i]); err != nil {
			return nil, nil, fmt.Errorf("restore document %q: %w", snap.Documents[i].ID, err)
		}
	}
	for i := range snap.Embeddings {
		if err := embeddings.Upsert(ctx, snap.Embeddings[i]); err != nil {
			return nil, nil, fmt.Errorf("restore embedding %q: %w", snap.Embeddings[i].DocID, err)
		}
	}
	return docs, embeddings, nil
}
