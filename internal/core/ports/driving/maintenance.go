package driving

import "context"

// MaintenanceService reconciles and persists store state.
type MaintenanceService interface {
	// Compact removes embeddings whose document no longer exists.
	// Returns the number of rows removed.
	Compact(ctx context.Context) (int, error)

	// Snapshot persists in-memory store state, when the backend supports it.
	Snapshot(ctx context.Context) error
}
