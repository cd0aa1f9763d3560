package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

// DatabaseDir is the Badger directory name inside the data directory.
const DatabaseDir = "badger"

// Store manages the Badger database and exposes the store ports over it.
type Store struct {
	db   *badgerhold.Store
	path string

	// embeddingMu serialises embedding writes.
	embeddingMu sync.Mutex
}

// documentRecord is the persisted form of domain.StoredDoc.
type documentRecord struct {
	ID        string
	UserID    string `badgerhold:"index"`
	Title     *string
	Content   string
	URL       *string
	Provider  string
	CreatedAt time.Time
}

// embeddingRecord is the persisted form of domain.EmbeddingRow.
type embeddingRecord struct {
	DocID  string
	Dim    int
	Vector []float32
}

// NewStore opens (or creates) a Badger database under dataDir.
// If dataDir is empty, defaults to ~/.sercha-recall/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sercha-recall", "data")
	}

	path := filepath.Join(dataDir, DatabaseDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	logger.Debug("opening badger database at %s", path)

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database directory.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// EmbeddingStore returns an EmbeddingStore interface backed by this store.
func (s *Store) EmbeddingStore() driven.EmbeddingStore {
	return &embeddingStore{store: s}
}

// ==================== Document Store ====================

type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Upsert stores or replaces a document.
func (s *documentStore) Upsert(_ context.Context, doc domain.StoredDoc) error {
	if doc.ID == "" || doc.UserID == "" {
		return domain.ErrInvalidArgument
	}
	rec := toDocumentRecord(doc)
	if err := s.store.db.Upsert(doc.ID, &rec); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(_ context.Context, id string) (*domain.StoredDoc, error) {
	var rec documentRecord
	if err := s.store.db.Get(id, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	doc := rec.toDomain()
	return &doc, nil
}

// ListByUser returns the documents owned by userID, ordered by ID.
func (s *documentStore) ListByUser(_ context.Context, userID string) ([]domain.StoredDoc, error) {
	var recs []documentRecord
	query := badgerhold.Where("UserID").Eq(userID).Index("UserID").SortBy("ID")
	if err := s.store.db.Find(&recs, query); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	docs := make([]domain.StoredDoc, 0, len(recs))
	for i := range recs {
		docs = append(docs, recs[i].toDomain())
	}
	return docs, nil
}

// Remove deletes a document. Its embedding, if any, is left in place.
func (s *documentStore) Remove(_ context.Context, id string) error {
	if err := s.store.db.Delete(id, &documentRecord{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ==================== Embedding Store ====================

type embeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*embeddingStore)(nil)

// Upsert stores or replaces the vector for row.DocID.
func (s *embeddingStore) Upsert(_ context.Context, row domain.EmbeddingRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	rec := embeddingRecord{DocID: row.DocID, Dim: row.Dim, Vector: slices.Clone(row.Vector)}

	s.store.embeddingMu.Lock()
	defer s.store.embeddingMu.Unlock()

	err := s.store.db.Badger().Update(func(tx *badgerdb.Txn) error {
		dim, err := s.dimension(tx)
		if err != nil {
			return err
		}
		if dim != 0 && dim != rec.Dim {
			return &domain.DimensionError{Expected: dim, Got: rec.Dim}
		}
		return s.store.db.TxUpsert(tx, rec.DocID, &rec)
	})
	if err != nil {
		var dimErr *domain.DimensionError
		if errors.As(err, &dimErr) {
			return err
		}
		return fmt.Errorf("saving embedding: %w", err)
	}
	return nil
}

// Get retrieves the row for docID.
func (s *embeddingStore) Get(_ context.Context, docID string) (*domain.EmbeddingRow, error) {
	var rec embeddingRecord
	if err := s.store.db.Get(docID, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting embedding: %w", err)
	}
	row := rec.toDomain()
	return &row, nil
}

// Dimension returns the established dimension, or 0 while the store is empty.
func (s *embeddingStore) Dimension(_ context.Context) (int, error) {
	var dim int
	err := s.store.db.Badger().View(func(tx *badgerdb.Txn) error {
		var err error
		dim, err = s.dimension(tx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return dim, nil
}

// All returns every row, ordered by DocID.
func (s *embeddingStore) All(_ context.Context) ([]domain.EmbeddingRow, error) {
	var recs []embeddingRecord
	if err := s.store.db.Find(&recs, nil); err != nil {
		return nil, fmt.Errorf("listing embeddings: %w", err)
	}
	rows := make([]domain.EmbeddingRow, 0, len(recs))
	for i := range recs {
		rows = append(rows, recs[i].toDomain())
	}
	slices.SortFunc(rows, func(a, b domain.EmbeddingRow) int {
		return strings.Compare(a.DocID, b.DocID)
	})
	return rows, nil
}

// Remove deletes the row for docID. Removing the last row resets the dimension.
func (s *embeddingStore) Remove(_ context.Context, docID string) error {
	s.store.embeddingMu.Lock()
	defer s.store.embeddingMu.Unlock()

	if err := s.store.db.Delete(docID, &embeddingRecord{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("deleting embedding: %w", err)
	}
	return nil
}

// dimension derives the store dimension from any stored row.
func (s *embeddingStore) dimension(tx *badgerdb.Txn) (int, error) {
	var recs []embeddingRecord
	if err := s.store.db.TxFind(tx, &recs, badgerhold.Where("Dim").Gt(0).Limit(1)); err != nil {
		return 0, fmt.Errorf("reading dimension: %w", err)
	}
	if len(recs) == 0 {
		return 0, nil
	}
	return recs[0].Dim, nil
}

// ==================== Conversions ====================

func toDocumentRecord(doc domain.StoredDoc) documentRecord {
	doc = doc.Clone()
	return documentRecord{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Title:     doc.Title,
		Content:   doc.Content,
		URL:       doc.URL,
		Provider:  string(doc.Provider),
		CreatedAt: doc.CreatedAt.UTC(),
	}
}

func (r *documentRecord) toDomain() domain.StoredDoc {
	return domain.StoredDoc{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		URL:       r.URL,
		Provider:  domain.ProviderName(r.Provider),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (r *embeddingRecord) toDomain() domain.EmbeddingRow {
	return domain.EmbeddingRow{DocID: r.DocID, Dim: r.Dim, Vector: r.Vector}
}
