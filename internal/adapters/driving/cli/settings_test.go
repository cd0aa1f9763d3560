package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "Backend: memory")
	assert.Contains(t, out, "Data dir: (default)")
	assert.Contains(t, out, "Default k: 10")
	assert.Contains(t, out, "Concurrency: 4")
	assert.Contains(t, out, "HTTP address: (stdio)")
	assert.Contains(t, out, "Enabled: yes")
	assert.Contains(t, out, "Compaction: @every 30m")
}

func TestSettingsBackend(t *testing.T) {
	stores, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "Storage backend set to sqlite")
	assert.Equal(t, "sqlite", stores.config.GetString("storage.backend"))

	_, err = execute(t, "settings", "backend", "postgres")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSettingsValidate(t *testing.T) {
	stores, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings are valid")

	require.NoError(t, stores.config.Set("scheduler.compaction", "every so often"))
	_, err = execute(t, "settings", "validate")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrValue(t *testing.T) {
	assert.Equal(t, "x", orValue("x", "fallback"))
	assert.Equal(t, "fallback", orValue("", "fallback"))
	assert.Equal(t, "(default)", orDefault(""))
}
