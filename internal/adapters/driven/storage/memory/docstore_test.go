package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func testDoc(id, user string) domain.StoredDoc {
	return domain.StoredDoc{
		ID:        id,
		UserID:    user,
		Title:     strPtr("Title " + id),
		Content:   "content of " + id,
		URL:       strPtr("https://example.com/" + id),
		Provider:  domain.ProviderManual,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.Equal(t, 0, store.Len())
}

func TestDocumentStore_Upsert_Success(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("doc-1", "alice")))

	saved, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, testDoc("doc-1", "alice"), *saved)
}

func TestDocumentStore_Upsert_Replaces(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	first := testDoc("doc-1", "alice")
	second := testDoc("doc-1", "alice")
	second.Content = "updated"
	second.Title = nil

	require.NoError(t, store.Upsert(ctx, first))
	require.NoError(t, store.Upsert(ctx, second))

	saved, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "updated", saved.Content)
	assert.Nil(t, saved.Title)
	assert.Equal(t, 1, store.Len())
}

func TestDocumentStore_Upsert_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  domain.StoredDoc
	}{
		{name: "empty id", doc: testDoc("", "alice")},
		{name: "empty user", doc: testDoc("doc-1", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewDocumentStore()
			err := store.Upsert(context.Background(), tt.doc)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	store := NewDocumentStore()

	doc, err := store.Get(context.Background(), "missing")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Get_ReturnsCopy(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testDoc("doc-1", "alice")))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	got.Content = "mutated"
	*got.Title = "mutated"

	again, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "content of doc-1", again.Content)
	assert.Equal(t, "Title doc-1", *again.Title)
}

func TestDocumentStore_Upsert_CopiesInput(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := testDoc("doc-1", "alice")
	require.NoError(t, store.Upsert(ctx, doc))
	*doc.URL = "https://changed.example.com"

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/doc-1", *got.URL)
}

func TestDocumentStore_ListByUser(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testDoc("c", "alice")))
	require.NoError(t, store.Upsert(ctx, testDoc("a", "alice")))
	require.NoError(t, store.Upsert(ctx, testDoc("b", "bob")))

	docs, err := store.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)

	docs, err = store.ListByUser(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}

func TestDocumentStore_Remove(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testDoc("doc-1", "alice")))

	require.NoError(t, store.Remove(ctx, "doc-1"))
	_, err := store.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removing again is a no-op.
	assert.NoError(t, store.Remove(ctx, "doc-1"))
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Upsert(ctx, testDoc(fmt.Sprintf("doc-%02d", n), "alice"))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.ListByUser(ctx, "alice")
		}()
	}
	wg.Wait()

	docs, err := store.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
