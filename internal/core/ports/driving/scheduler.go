package driving

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// Scheduler runs maintenance tasks such as embedding compaction and snapshots.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error

	// Tasks returns the current state of every registered task.
	Tasks() []domain.ScheduledTask
}
