package services

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend    = "storage.backend"
	keyStorageDataDir    = "storage.data_dir"
	keyQueryDefaultK     = "query.default_k"
	keyIngestConcurrency = "ingest.concurrency"
	keyMCPHTTPAddr       = "mcp.http_addr"
	keySchedulerEnabled  = "scheduler.enabled"
	keySchedulerCompact  = "scheduler.compaction"
	keySchedulerSnapshot = "scheduler.snapshot"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Query: domain.QuerySettings{
			DefaultK: s.getPositiveInt(keyQueryDefaultK, defaults.Query.DefaultK),
		},
		Ingest: domain.IngestSettings{
			Concurrency: s.getPositiveInt(keyIngestConcurrency, defaults.Ingest.Concurrency),
		},
		MCP: domain.MCPSettings{
			HTTPAddr: s.configStore.GetString(keyMCPHTTPAddr),
		},
		Scheduler: domain.SchedulerSettings{
			Enabled:    s.getBool(keySchedulerEnabled, defaults.Scheduler.Enabled),
			Compaction: s.getSpec(keySchedulerCompact, defaults.Scheduler.Compaction),
			Snapshot:   s.getSpec(keySchedulerSnapshot, defaults.Scheduler.Snapshot),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyQueryDefaultK, settings.Query.DefaultK},
		{keyIngestConcurrency, settings.Ingest.Concurrency},
		{keyMCPHTTPAddr, settings.MCP.HTTPAddr},
		{keySchedulerEnabled, settings.Scheduler.Enabled},
		{keySchedulerCompact, settings.Scheduler.Compaction},
		{keySchedulerSnapshot, settings.Scheduler.Snapshot},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetBackend selects the storage backend.
func (s *SettingsService) SetBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidArgument, backend)
	}
	return s.configStore.Set(keyStorageBackend, backend.String())
}

// Validate checks the raw configuration rather than the defaulted view, so
// typos surface instead of silently falling back.
func (s *SettingsService) Validate() error {
	if raw := s.configStore.GetString(keyStorageBackend); raw != "" {
		if !domain.StorageBackend(raw).IsValid() {
			return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, raw)
		}
	}
	for _, key := range []string{keyQueryDefaultK, keyIngestConcurrency} {
		if _, ok := s.configStore.Get(key); ok && s.configStore.GetInt(key) <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
	}
	for _, key := range []string{keySchedulerCompact, keySchedulerSnapshot} {
		spec := s.configStore.GetString(key)
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getSpec returns the configured schedule. An explicit empty string disables
// the task, so only a missing key falls back to the default.
func (s *SettingsService) getSpec(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
