package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-recall/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-recall/internal/core/services"
	"github.com/custodia-labs/sercha-recall/internal/logger"
	"github.com/custodia-labs/sercha-recall/internal/normaliser"
)

// App is the set of services wired from a configuration directory.
type App struct {
	Settings    *domain.AppSettings
	DataDir     string
	Ingest      *services.IngestService
	Retrieval   *services.RetrievalService
	Document    *services.DocumentService
	Maintenance *services.MaintenanceService
	SettingsSvc *services.SettingsService
	Scheduler   *services.Scheduler

	// persist runs on Close for backends that only live in memory.
	persist func(ctx context.Context) error
	closers []func() error
}

// NewApp loads settings from configDir and opens the configured backend.
// An empty configDir means ~/.sercha-recall.
func NewApp(configDir string) (*App, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore)
	if err := settingsSvc.Validate(); err != nil {
		logger.Warn("config: %v; using defaults for invalid values", err)
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	a := &App{
		Settings:    settings,
		DataDir:     dataDir,
		SettingsSvc: settingsSvc,
	}

	docStore, embStore, err := a.openBackend(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, err
	}

	a.Ingest = services.NewIngestService(normaliser.New(), docStore, embStore, settings.Ingest.Concurrency)
	a.Retrieval = services.NewRetrievalService(embStore, docStore)
	a.Document = services.NewDocumentService(docStore)
	a.Maintenance = services.NewMaintenanceService(docStore, embStore)
	if a.persist != nil {
		a.Maintenance.SetSnapshotter(a.persist)
	}
	a.Scheduler = services.NewScheduler(settings.Scheduler.SchedulerConfig(), a.Maintenance)

	logger.Debug("app: backend=%s data=%s", settings.Storage.Backend, dataDir)
	return a, nil
}

// openBackend opens the stores for backend under dataDir.
func (a *App) openBackend(
	backend domain.StorageBackend,
	dataDir string,
) (driven.DocumentStore, driven.EmbeddingStore, error) {
	switch backend {
	case domain.StorageMemory:
		path := filepath.Join(dataDir, memory.SnapshotFile)
		docs, embeddings, err := memory.LoadSnapshot(context.Background(), path)
		if err != nil {
			return nil, nil, fmt.Errorf("loading snapshot: %w", err)
		}
		a.persist = func(ctx context.Context) error {
			return memory.SaveSnapshot(ctx, path, docs, embeddings)
		}
		return docs, embeddings, nil

	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store.DocumentStore(), store.EmbeddingStore(), nil

	case domain.StorageBadger:
		store, err := badger.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store.DocumentStore(), store.EmbeddingStore(), nil

	default:
		return nil, nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, backend)
	}
}

// install points the command services at this app.
func (a *App) install() {
	ingestService = a.Ingest
	retrievalService = a.Retrieval
	documentService = a.Document
	maintenanceService = a.Maintenance
	settingsService = a.SettingsSvc
	scheduler = a.Scheduler
	defaultK = a.Settings.Query.DefaultK
	defaultHTTPAddr = a.Settings.MCP.HTTPAddr
}

// uninstall clears the command services.
func (a *App) uninstall() {
	ingestService = nil
	retrievalService = nil
	documentService = nil
	maintenanceService = nil
	settingsService = nil
	scheduler = nil
	defaultK = fallbackK
	defaultHTTPAddr = ""
}

// Close persists in-memory state and releases the backend.
func (a *App) Close(ctx context.Context) error {
	a.uninstall()

	var errs []error
	if a.persist != nil {
		if err := a.persist(ctx); err != nil {
			errs = append(errs, fmt.Errorf("saving snapshot: %w", err))
		}
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
