package driving

import "github.com/custodia-labs/sercha-recall/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, filling defaults for
	// anything the configuration leaves unset or invalid.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBackend selects the storage backend.
	SetBackend(backend domain.StorageBackend) error

	// Validate checks the stored settings, including scheduler specs.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
