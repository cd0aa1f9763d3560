package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "recall.db"

// Store is a SQLite-based storage that provides access to the document and
// embedding store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string

	// embeddingMu serialises embedding writes within this process.
	embeddingMu sync.Mutex
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sercha-recall/data/recall.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sercha-recall", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets readers proceed while a writer holds the lock. Immediate
	// transactions take the write lock up front, which serialises embedding
	// writers across processes too.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Upsert stores or replaces a document.
func (s *documentStore) Upsert(ctx context.Context, doc domain.StoredDoc) error {
	if doc.ID == "" || doc.UserID == "" {
		return domain.ErrInvalidArgument
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, user_id, title, content, url, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			content = excluded.content,
			url = excluded.url,
			provider = excluded.provider,
			created_at = excluded.created_at
	`, doc.ID, doc.UserID, nullString(doc.Title), doc.Content, nullString(doc.URL),
		string(doc.Provider), doc.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.StoredDoc, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, url, provider, created_at
		FROM documents WHERE id = ?
	`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// ListByUser returns the documents owned by userID, ordered by ID.
func (s *documentStore) ListByUser(ctx context.Context, userID string) ([]domain.StoredDoc, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, title, content, url, provider, created_at
		FROM documents WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.StoredDoc, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Remove deletes a document. Its embedding, if any, is left in place.
func (s *documentStore) Remove(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ==================== Embedding Store ====================

// embeddingStore implements driven.EmbeddingStore.
type embeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*embeddingStore)(nil)

// Upsert stores or replaces the vector for row.DocID. The dimension check and
// the write share one transaction.
func (s *embeddingStore) Upsert(ctx context.Context, row domain.EmbeddingRow) error {
	if err := row.Validate(); err != nil {
		return err
	}

	s.store.embeddingMu.Lock()
	defer s.store.embeddingMu.Unlock()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	dim, err := dimension(ctx, tx)
	if err != nil {
		return err
	}
	if dim != 0 && dim != row.Dim {
		return &domain.DimensionError{Expected: dim, Got: row.Dim}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO embeddings (doc_id, dim, vector)
		VALUES (?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			dim = excluded.dim,
			vector = excluded.vector
	`, row.DocID, row.Dim, float32SliceToBytes(row.Vector)); err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves the row for docID.
func (s *embeddingStore) Get(ctx context.Context, docID string) (*domain.EmbeddingRow, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT doc_id, dim, vector FROM embeddings WHERE doc_id = ?", docID)
	emb, err := scanEmbedding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning embedding: %w", err)
	}
	return emb, nil
}

// Dimension returns the established dimension, or 0 while the store is empty.
func (s *embeddingStore) Dimension(ctx context.Context) (int, error) {
	return dimension(ctx, s.store.db)
}

// All returns every row, ordered by DocID.
func (s *embeddingStore) All(ctx context.Context) ([]domain.EmbeddingRow, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT doc_id, dim, vector FROM embeddings ORDER BY doc_id")
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	result := make([]domain.EmbeddingRow, 0)
	for rows.Next() {
		emb, err := scanEmbedding(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		result = append(result, *emb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}
	return result, nil
}

// Remove deletes the row for docID. Removing the last row resets the dimension.
func (s *embeddingStore) Remove(ctx context.Context, docID string) error {
	s.store.embeddingMu.Lock()
	defer s.store.embeddingMu.Unlock()

	_, err := s.store.db.ExecContext(ctx, "DELETE FROM embeddings WHERE doc_id = ?", docID)
	if err != nil {
		return fmt.Errorf("deleting embedding: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// dimension derives the store dimension from any stored row.
func dimension(ctx context.Context, q querier) (int, error) {
	var dim int
	err := q.QueryRowContext(ctx, "SELECT dim FROM embeddings LIMIT 1").Scan(&dim)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading dimension: %w", err)
	}
	return dim, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row scanner) (*domain.StoredDoc, error) {
	var doc domain.StoredDoc
	var title, url sql.NullString
	var provider string

	if err := row.Scan(&doc.ID, &doc.UserID, &title, &doc.Content, &url,
		&provider, &doc.CreatedAt); err != nil {
		return nil, err
	}

	doc.Title = stringPtr(title)
	doc.URL = stringPtr(url)
	doc.Provider = domain.ProviderName(provider)
	doc.CreatedAt = doc.CreatedAt.UTC()
	return &doc, nil
}

// scanEmbedding scans a single embedding row.
func scanEmbedding(row scanner) (*domain.EmbeddingRow, error) {
	var emb domain.EmbeddingRow
	var blob []byte
	if err := row.Scan(&emb.DocID, &emb.Dim, &blob); err != nil {
		return nil, err
	}
	emb.Vector = bytesToFloat32Slice(blob)
	return &emb, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
