package domain

// StorageBackend selects the document and embedding store implementation.
type StorageBackend string

// Supported storage backends.
const (
	StorageMemory StorageBackend = "memory"
	StorageSQLite StorageBackend = "sqlite"
	StorageBadger StorageBackend = "badger"
)

// IsValid reports whether b is a supported backend.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageSQLite, StorageBadger:
		return true
	}
	return false
}

// String returns the backend name.
func (b StorageBackend) String() string {
	return string(b)
}

// AppSettings is the typed view of the configuration file.
type AppSettings struct {
	Storage   StorageSettings
	Query     QuerySettings
	Ingest    IngestSettings
	MCP       MCPSettings
	Scheduler SchedulerSettings
}

// StorageSettings configures persistence.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// DataDir holds databases and snapshots. Empty means the default location.
	DataDir string
}

// QuerySettings configures retrieval defaults.
type QuerySettings struct {
	// DefaultK is the result count when a caller does not pass one.
	DefaultK int
}

// IngestSettings configures batch ingestion.
type IngestSettings struct {
	// Concurrency bounds the number of items ingested in parallel.
	Concurrency int
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	// HTTPAddr serves streamable HTTP when set; stdio otherwise.
	HTTPAddr string
}

// SchedulerSettings configures background maintenance.
type SchedulerSettings struct {
	Enabled    bool
	Compaction string
	Snapshot   string
}

// SchedulerConfig converts the settings into a scheduler configuration.
// An empty spec disables the task.
func (s SchedulerSettings) SchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: s.Enabled,
		TaskConfigs: map[string]TaskConfig{
			TaskIDEmbeddingCompaction: {Enabled: s.Compaction != "", Spec: s.Compaction},
			TaskIDSnapshot:            {Enabled: s.Snapshot != "", Spec: s.Snapshot},
		},
	}
}

// DefaultAppSettings returns the settings used when the config file is silent.
func DefaultAppSettings() AppSettings {
	scheduler := DefaultSchedulerConfig()
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageMemory,
		},
		Query: QuerySettings{
			DefaultK: 10,
		},
		Ingest: IngestSettings{
			Concurrency: 4,
		},
		Scheduler: SchedulerSettings{
			Enabled:    scheduler.Enabled,
			Compaction: scheduler.GetTaskConfig(TaskIDEmbeddingCompaction).Spec,
			Snapshot:   scheduler.GetTaskConfig(TaskIDSnapshot).Spec,
		},
	}
}
