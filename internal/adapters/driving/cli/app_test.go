package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))
}

func TestNewApp_BackendsPersistAcrossReopen(t *testing.T) {
	for _, backend := range []domain.StorageBackend{domain.StorageMemory, domain.StorageSQLite, domain.StorageBadger} {
		t.Run(backend.String(), func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			writeConfig(t, dir, "[storage]\nbackend = \""+backend.String()+"\"\n")

			a, err := NewApp(dir)
			require.NoError(t, err)
			assert.Equal(t, backend, a.Settings.Storage.Backend)
			assert.Equal(t, filepath.Join(dir, "data"), a.DataDir)

			doc, err := a.Ingest.Ingest(ctx, domain.RawItem{
				Provider: domain.ProviderManual,
				MIME:     domain.MIMEPlainText,
				Content:  "persist me",
			}, "alice")
			require.NoError(t, err)
			require.NoError(t, a.Ingest.AttachEmbedding(ctx, doc.ID, []float32{1, 0}))
			require.NoError(t, a.Close(ctx))

			reopened, err := NewApp(dir)
			require.NoError(t, err)
			defer reopened.Close(ctx) //nolint:errcheck

			got, err := reopened.Document.Get(ctx, doc.ID)
			require.NoError(t, err)
			assert.Equal(t, "persist me", got.Content)

			results, err := reopened.Retrieval.Query(ctx, []float32{1, 0}, domain.QueryOptions{K: 5, UserID: "alice"})
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, doc.ID, results[0].Doc.ID)
		})
	}
}

func TestNewApp_MemorySnapshotLocation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "elsewhere")
	writeConfig(t, dir, "[storage]\nbackend = \"memory\"\ndata_dir = \""+filepath.ToSlash(dataDir)+"\"\n")

	a, err := NewApp(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(dataDir), filepath.ToSlash(a.DataDir))

	require.NoError(t, a.Maintenance.Snapshot(ctx))
	require.NoError(t, a.Close(ctx))

	_, err = os.Stat(filepath.Join(dataDir, memory.SnapshotFile))
	assert.NoError(t, err)
}

func TestNewApp_SettingsApplied(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[query]
default_k = 3

[mcp]
http_addr = "127.0.0.1:9000"
`)

	a, err := NewApp(dir)
	require.NoError(t, err)
	defer a.Close(context.Background()) //nolint:errcheck

	a.install()
	defer a.uninstall()

	assert.Equal(t, 3, defaultK)
	assert.Equal(t, "127.0.0.1:9000", defaultHTTPAddr)
	assert.NotNil(t, scheduler)
	assert.True(t, servicesConfigured())
}

func TestNewApp_CorruptConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "this is = = not toml")

	_, err := NewApp(dir)
	assert.Error(t, err)
}

func TestApp_CloseUninstalls(t *testing.T) {
	a, err := NewApp(t.TempDir())
	require.NoError(t, err)

	a.install()
	require.True(t, servicesConfigured())

	require.NoError(t, a.Close(context.Background()))
	assert.False(t, servicesConfigured())
	assert.Equal(t, fallbackK, defaultK)
}

func TestRootCmd_WiresFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	oldDir := configDir
	configDir = dir
	defer func() { configDir = oldDir }()

	out, err := execute(t, "settings", "backend", "badger")
	require.NoError(t, err)
	assert.Contains(t, out, "Storage backend set to badger")
	assert.False(t, servicesConfigured())

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "badger")
}
